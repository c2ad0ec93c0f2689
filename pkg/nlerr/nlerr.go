// Package nlerr defines the error taxonomy shared by every SDK component: a
// single tagged error value with a Kind discriminant and kind-specific
// context fields. Lower layers never swallow errors; they annotate and
// re-raise, and callers branch on the kind programmatically.
package nlerr

import (
	"errors"
	"fmt"
	"net"
)

// Kind discriminates the closed set of SDK failure categories. Every error
// produced by the SDK is a *Error carrying one of these kinds; callers branch
// on the kind rather than on concrete types.
type Kind string

const (
	// KindPayment signals an unmet, stale or invalid payment requirement.
	// Never retried beyond the single negotiated round-trip.
	KindPayment Kind = "PAYMENT_REQUIRED"
	// KindNetwork signals a transient transport failure. The retry layer
	// treats this kind (and only this kind) as retryable.
	KindNetwork Kind = "NETWORK_ERROR"
	// KindValidation signals malformed caller input, detected before any
	// network call is made.
	KindValidation Kind = "VALIDATION_ERROR"
	// KindWallet signals that signing was refused or no signer is available.
	KindWallet Kind = "WALLET_ERROR"
	// KindTransaction signals an on-chain submission or confirmation failure.
	// Not retried automatically: resubmitting could double-pay.
	KindTransaction Kind = "TRANSACTION_ERROR"
	// KindMixer signals a mix-specific domain failure.
	KindMixer Kind = "MIXER_ERROR"
	// KindGeneric covers failures outside the other categories.
	KindGeneric Kind = "GENERIC_ERROR"
)

// Error is the single error value used across the SDK. Kind selects which of
// the optional fields are meaningful: Required/PayTo for payment errors,
// StatusCode/Endpoint for network errors, Field for validation errors,
// Signature for transaction errors and MixID for mixer errors.
type Error struct {
	Kind    Kind
	Message string

	Required   string
	PayTo      string
	StatusCode int
	Endpoint   string
	Field      string
	Signature  string
	MixID      string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause attaches the underlying error and returns the receiver, so
// constructors compose in a single expression.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// Payment builds a payment-kind error. required and payTo carry the unmet
// requirement so callers can prompt for funds.
func Payment(message, required, payTo string) *Error {
	return &Error{Kind: KindPayment, Message: message, Required: required, PayTo: payTo}
}

// Network builds a network-kind error. statusCode is zero for transport-level
// failures that never produced an HTTP status.
func Network(message string, statusCode int, endpoint string) *Error {
	return &Error{Kind: KindNetwork, Message: message, StatusCode: statusCode, Endpoint: endpoint}
}

// Validation builds a validation-kind error naming the offending input field.
func Validation(message, field string) *Error {
	return &Error{Kind: KindValidation, Message: message, Field: field}
}

// Wallet builds a wallet-kind error (signing refused or unavailable).
func Wallet(message string) *Error {
	return &Error{Kind: KindWallet, Message: message}
}

// Transaction builds a transaction-kind error. signature is empty when the
// failure happened before a signature existed.
func Transaction(message, signature string) *Error {
	return &Error{Kind: KindTransaction, Message: message, Signature: signature}
}

// Mixer builds a mixer-kind error bound to a mix job.
func Mixer(message, mixID string) *Error {
	return &Error{Kind: KindMixer, Message: message, MixID: mixID}
}

// Generic builds an uncategorized error.
func Generic(message string) *Error {
	return &Error{Kind: KindGeneric, Message: message}
}

// KindOf extracts the Kind from any error. Errors that are not *Error (or do
// not wrap one) report KindGeneric.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}

// IsTransient reports whether err may be retried: network-kind errors and raw
// transport timeouts. Payment, validation, wallet and transaction failures
// are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindNetwork
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
