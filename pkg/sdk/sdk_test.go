package sdk

import (
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/config"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/wallet"
)

func TestNewWithPrivateKey(t *testing.T) {
	key := solana.NewWallet().PrivateKey

	c, err := New(&config.Config{PrivateKey: key.String()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !c.PublicKey().Equals(key.PublicKey()) {
		t.Fatalf("public key = %s, want %s", c.PublicKey(), key.PublicKey())
	}
	if c.Chat == nil || c.Swap == nil || c.Mixer == nil {
		t.Fatal("service clients not wired")
	}
	if c.Blockchain() == nil {
		t.Fatal("chain client not wired")
	}
}

func TestNewWithInvalidPrivateKey(t *testing.T) {
	_, err := New(&config.Config{PrivateKey: "not-base58-0OIl"})
	if nlerr.KindOf(err) != nlerr.KindWallet {
		t.Fatalf("kind = %s, want wallet", nlerr.KindOf(err))
	}
}

func TestNewWithoutSigner(t *testing.T) {
	c, err := New(&config.Config{APIKey: "enterprise-key"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !c.PublicKey().IsZero() {
		t.Fatalf("public key = %s, want zero", c.PublicKey())
	}
}

func TestNewAppliesConfigDefaults(t *testing.T) {
	cfg := &config.Config{}
	if _, err := New(cfg); err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.ServerURL != config.DefaultServerURL || cfg.Commitment != "confirmed" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestNewRejectsBadCommitment(t *testing.T) {
	_, err := New(&config.Config{Commitment: "eventually"})
	if nlerr.KindOf(err) != nlerr.KindValidation {
		t.Fatalf("kind = %s, want validation", nlerr.KindOf(err))
	}
}

func TestNewWithSigner(t *testing.T) {
	signer := wallet.NewKeypairSigner(solana.NewWallet().PrivateKey)

	c, err := NewWithSigner(signer, &config.Config{})
	if err != nil {
		t.Fatalf("NewWithSigner: %v", err)
	}
	if !c.PublicKey().Equals(signer.PublicKey()) {
		t.Fatalf("public key = %s", c.PublicKey())
	}
}
