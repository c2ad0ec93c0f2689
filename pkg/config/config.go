// Package config defines the runtime configuration for the SDK: signer
// identity, Solana RPC endpoint, service host, API key, debug mode and
// per-service timeouts. It also provides validation and defaulting helpers.
package config

import (
	"time"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
)

// Default endpoints used when the corresponding Config fields are empty.
const (
	DefaultServerURL  = "https://x402.nolimit.foundation"
	DefaultRPCURL     = "https://api.mainnet-beta.solana.com"
	DefaultJupiterURL = "https://lite-api.jup.ag/swap/v1"
)

// Config holds all SDK settings. Use Validate to fill implicit defaults and
// to check for inconsistencies before constructing a client.
type Config struct {
	// PrivateKey is the base58-encoded Solana private key used for signing
	// payments and transactions. Optional: with only an APIKey the SDK can
	// make API-key-authenticated calls but cannot pay 402 challenges or
	// submit transactions. Ignored when an external signer is supplied.
	PrivateKey string `json:"private_key" yaml:"private_key"`
	// RPCURL is the Solana RPC endpoint. Default: mainnet-beta.
	RPCURL string `json:"rpc_url" yaml:"rpc_url"`
	// ServerURL is the noLimit service host. Default: DefaultServerURL.
	ServerURL string `json:"server_url" yaml:"server_url"`
	// JupiterURL is the swap aggregator base URL. Default: DefaultJupiterURL.
	JupiterURL string `json:"jupiter_url" yaml:"jupiter_url"`
	// APIKey selects enterprise API-key authentication instead of per-call
	// x402 payments.
	APIKey string `json:"api_key" yaml:"api_key"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Commitment is the confirmation level for on-chain operations:
	// "processed", "confirmed" (default) or "finalized".
	Commitment string `json:"commitment" yaml:"commitment"`
	// Timeouts configures per-service deadlines. See Timeouts.WithDefaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts"`
}

// Timeouts controls per-operation deadlines. Zero values are replaced by the
// defaults in WithDefaults. These are configuration, not protocol behavior.
type Timeouts struct {
	Chat    time.Duration // chat relay round-trip
	Swap    time.Duration // swap execute round-trip
	Mixer   time.Duration // mix create / confirm-deposit
	Default time.Duration // everything else (quotes, status polls)
	Confirm time.Duration // on-chain confirmation wait
}

// Validate normalizes the configuration by applying defaults for ServerURL,
// RPCURL, JupiterURL and Commitment, and rejects unknown commitment levels.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.RPCURL == "" {
		c.RPCURL = DefaultRPCURL
	}
	if c.JupiterURL == "" {
		c.JupiterURL = DefaultJupiterURL
	}
	switch c.Commitment {
	case "":
		c.Commitment = "confirmed"
	case "processed", "confirmed", "finalized":
	default:
		return nlerr.Validation("unknown commitment level: "+c.Commitment, "commitment")
	}
	c.Timeouts = c.Timeouts.WithDefaults()
	return nil
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Chat:    60s
//	Swap:    120s
//	Mixer:   30s
//	Default: 30s
//	Confirm: 90s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Chat == 0 {
		tt.Chat = 60 * time.Second
	}
	if tt.Swap == 0 {
		tt.Swap = 120 * time.Second
	}
	if tt.Mixer == 0 {
		tt.Mixer = 30 * time.Second
	}
	if tt.Default == 0 {
		tt.Default = 30 * time.Second
	}
	if tt.Confirm == 0 {
		tt.Confirm = 90 * time.Second
	}
	return tt
}
