package wallet

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
)

func TestKeypairFromBase58(t *testing.T) {
	key := solana.NewWallet().PrivateKey

	signer, err := KeypairFromBase58(key.String())
	if err != nil {
		t.Fatalf("KeypairFromBase58: %v", err)
	}
	if !signer.PublicKey().Equals(key.PublicKey()) {
		t.Fatalf("public key mismatch: %s != %s", signer.PublicKey(), key.PublicKey())
	}
}

func TestKeypairFromBase58Invalid(t *testing.T) {
	for _, enc := range []string{"", "not-base58-0OIl"} {
		_, err := KeypairFromBase58(enc)
		if nlerr.KindOf(err) != nlerr.KindWallet {
			t.Fatalf("key %q: kind = %s, want wallet", enc, nlerr.KindOf(err))
		}
	}
}

func testTransaction(t *testing.T, from solana.PublicKey) *solana.Transaction {
	t.Helper()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(1, from, solana.NewWallet().PublicKey()).Build(),
		},
		solana.Hash{1},
		solana.TransactionPayer(from),
	)
	if err != nil {
		t.Fatalf("build transaction: %v", err)
	}
	return tx
}

func TestSignTransaction(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	signer := NewKeypairSigner(key)

	tx := testTransaction(t, key.PublicKey())
	if err := signer.SignTransaction(tx); err != nil {
		t.Fatalf("SignTransaction: %v", err)
	}
	if err := tx.VerifySignatures(); err != nil {
		t.Fatalf("VerifySignatures: %v", err)
	}
}

func TestSignTransactionWrongKey(t *testing.T) {
	signer := NewKeypairSigner(solana.NewWallet().PrivateKey)

	// Fee payer is a different key; the signer cannot provide it.
	tx := testTransaction(t, solana.NewWallet().PublicKey())
	if err := signer.SignTransaction(tx); nlerr.KindOf(err) != nlerr.KindWallet {
		t.Fatalf("kind = %s, want wallet", nlerr.KindOf(err))
	}
}

func TestSignAllTransactions(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	signer := NewKeypairSigner(key)

	txs := []*solana.Transaction{
		testTransaction(t, key.PublicKey()),
		testTransaction(t, key.PublicKey()),
	}
	if err := signer.SignAllTransactions(txs); err != nil {
		t.Fatalf("SignAllTransactions: %v", err)
	}
	for i, tx := range txs {
		if err := tx.VerifySignatures(); err != nil {
			t.Fatalf("transaction %d: %v", i, err)
		}
	}
}

func TestTruncateKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU", "7xKX...gAsU"},
		{"short", "short"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TruncateKey(tt.in); got != tt.want {
			t.Errorf("TruncateKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSignMessage(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	signer := NewKeypairSigner(key)

	msg := []byte("nonce:abc|resource:/noLimitLLM/solana")
	sig, err := signer.SignMessage(msg)
	if err != nil {
		t.Fatalf("SignMessage: %v", err)
	}

	var fixed solana.Signature
	copy(fixed[:], sig)
	if !fixed.Verify(key.PublicKey(), msg) {
		t.Fatal("signature does not verify")
	}
}
