package config

import (
	"testing"
	"time"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
)

func TestValidateAppliesDefaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.RPCURL != DefaultRPCURL {
		t.Errorf("RPCURL = %q", cfg.RPCURL)
	}
	if cfg.JupiterURL != DefaultJupiterURL {
		t.Errorf("JupiterURL = %q", cfg.JupiterURL)
	}
	if cfg.Commitment != "confirmed" {
		t.Errorf("Commitment = %q", cfg.Commitment)
	}
	if cfg.Timeouts.Chat != 60*time.Second || cfg.Timeouts.Swap != 120*time.Second {
		t.Errorf("timeouts = %+v", cfg.Timeouts)
	}
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		ServerURL:  "https://staging.example.com",
		Commitment: "finalized",
		Timeouts:   Timeouts{Chat: 5 * time.Second},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.ServerURL != "https://staging.example.com" {
		t.Errorf("ServerURL overwritten: %q", cfg.ServerURL)
	}
	if cfg.Commitment != "finalized" {
		t.Errorf("Commitment overwritten: %q", cfg.Commitment)
	}
	if cfg.Timeouts.Chat != 5*time.Second {
		t.Errorf("explicit chat timeout overwritten: %v", cfg.Timeouts.Chat)
	}
	if cfg.Timeouts.Mixer != 30*time.Second {
		t.Errorf("mixer timeout not defaulted: %v", cfg.Timeouts.Mixer)
	}
}

func TestValidateRejectsUnknownCommitment(t *testing.T) {
	cfg := Config{Commitment: "sorta-final"}
	if err := cfg.Validate(); nlerr.KindOf(err) != nlerr.KindValidation {
		t.Fatalf("kind = %s, want validation", nlerr.KindOf(err))
	}
}

func TestTimeoutsWithDefaults(t *testing.T) {
	tt := Timeouts{}.WithDefaults()
	want := Timeouts{
		Chat:    60 * time.Second,
		Swap:    120 * time.Second,
		Mixer:   30 * time.Second,
		Default: 30 * time.Second,
		Confirm: 90 * time.Second,
	}
	if tt != want {
		t.Fatalf("WithDefaults = %+v, want %+v", tt, want)
	}
}
