// Package amount converts token amounts between human-readable decimal
// strings and base-unit integer strings (lamports for SOL, smallest unit for
// SPL tokens). Conversions are lossless for fractional parts within the
// token's decimal count; excess precision is truncated, never rounded.
// Amounts are never represented as floating point.
package amount

import (
	"math/big"
	"strings"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
)

// ToBase converts a display amount ("1.5") into a base-unit integer string
// ("1500000000" at 9 decimals). Fractional digits beyond decimals are
// truncated. Returns a validation error for negative, empty or non-numeric
// input.
func ToBase(display string, decimals uint8) (string, error) {
	s := strings.TrimSpace(display)
	if s == "" {
		return "", nlerr.Validation("amount is required", "amount")
	}
	if strings.HasPrefix(s, "-") {
		return "", nlerr.Validation("amount must not be negative", "amount")
	}

	whole, fraction, err := splitDecimal(s)
	if err != nil {
		return "", err
	}

	if len(fraction) > int(decimals) {
		fraction = fraction[:decimals]
	}
	for len(fraction) < int(decimals) {
		fraction += "0"
	}

	n, ok := new(big.Int).SetString(whole+fraction, 10)
	if !ok {
		return "", nlerr.Validation("amount is not a valid decimal number", "amount")
	}
	return n.String(), nil
}

// FromBase converts a base-unit integer string back into display form,
// trimming trailing zeros and dropping a fraction that becomes empty.
// FromBase(ToBase(x)) == x up to trailing-zero normalization.
func FromBase(base string, decimals uint8) (string, error) {
	s := strings.TrimSpace(base)
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return "", nlerr.Validation("base amount must be a non-negative integer", "amount")
	}

	digits := n.String()
	for len(digits) < int(decimals)+1 {
		digits = "0" + digits
	}

	cut := len(digits) - int(decimals)
	whole, fraction := digits[:cut], digits[cut:]
	fraction = strings.TrimRight(fraction, "0")
	if fraction == "" {
		return whole, nil
	}
	return whole + "." + fraction, nil
}

// splitDecimal breaks "12.34" into whole and fraction parts, validating that
// both consist solely of ASCII digits. A missing whole part ("." or ".5")
// defaults to "0"; more than one decimal point is rejected.
func splitDecimal(s string) (whole, fraction string, err error) {
	parts := strings.Split(s, ".")
	switch len(parts) {
	case 1:
		whole = parts[0]
	case 2:
		whole, fraction = parts[0], parts[1]
	default:
		return "", "", nlerr.Validation("amount has more than one decimal point", "amount")
	}

	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (fraction != "" && !isDigits(fraction)) {
		return "", "", nlerr.Validation("amount is not a valid decimal number", "amount")
	}
	return whole, fraction, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
