package x402

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
)

// Asset identifies the token a requirement must be paid in.
type Asset struct {
	Address  string `json:"address"`
	Decimals uint8  `json:"decimals,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
}

// Requirement is the server-issued payment challenge. It is single-use:
// invalid once expired or once a response carrying its nonce has been
// accepted.
type Requirement struct {
	Scheme            string `json:"scheme,omitempty"`
	Network           string `json:"network,omitempty"`
	MaxAmountRequired string `json:"maxAmountRequired"`
	Asset             Asset  `json:"asset"`
	PayTo             string `json:"payTo"`
	Resource          string `json:"resource,omitempty"`
	Nonce             string `json:"nonce,omitempty"`
	// ExpiresAt is a unix timestamp in seconds; zero means the server did
	// not bound the challenge explicitly.
	ExpiresAt         int64 `json:"expiresAt,omitempty"`
	MaxTimeoutSeconds int   `json:"maxTimeoutSeconds,omitempty"`
}

// paymentRequired is the HTTP 402 response body.
type paymentRequired struct {
	X402Version int           `json:"x402Version,omitempty"`
	Error       string        `json:"error,omitempty"`
	Accepts     []Requirement `json:"accepts"`
}

// parseRequirement extracts the first accepted requirement from a 402 body.
func parseRequirement(body []byte) (*Requirement, error) {
	var pr paymentRequired
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, nlerr.Payment("malformed payment requirement", "", "").WithCause(err)
	}
	if len(pr.Accepts) == 0 {
		return nil, nlerr.Payment("payment required but no requirement offered", "", "")
	}
	return &pr.Accepts[0], nil
}

// validate enforces the challenge preconditions: a strictly positive amount
// and an expiry still in the future.
func (r *Requirement) validate(now time.Time) error {
	amt, ok := new(big.Int).SetString(r.MaxAmountRequired, 10)
	if !ok || amt.Sign() <= 0 {
		return nlerr.Payment("payment requirement amount must be a positive integer", r.MaxAmountRequired, r.PayTo)
	}
	if r.ExpiresAt > 0 && r.ExpiresAt <= now.Unix() {
		return nlerr.Payment("payment requirement has expired", r.MaxAmountRequired, r.PayTo)
	}
	return nil
}

// proofPayload is the JSON document base64-encoded into the X-Payment
// header. Signature is the on-chain settlement transaction signature.
type proofPayload struct {
	Version   string `json:"version"`
	Network   string `json:"network"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Asset     string `json:"asset"`
	Resource  string `json:"resource,omitempty"`
	Nonce     string `json:"nonce,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
}
