// Package wallet abstracts transaction signing behind a capability
// interface. Interactive wallet adapters and local keypairs implement the
// same Signer contract, so the rest of the SDK never cares which variant is
// in use. Signing failures surface as wallet-kind errors and are never
// retried.
package wallet

import (
	"github.com/gagliardetto/solana-go"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
)

// Signer is the signing collaborator. Implementations may reject a request
// (user declined, no key material); that surfaces as a wallet-kind error.
// The SDK makes no assumption about whether concurrent signs are safe; that
// is the implementation's own contract.
type Signer interface {
	// PublicKey returns the signer identity.
	PublicKey() solana.PublicKey
	// SignTransaction signs tx in place.
	SignTransaction(tx *solana.Transaction) error
	// SignAllTransactions signs every transaction in place.
	SignAllTransactions(txs []*solana.Transaction) error
	// SignMessage signs an arbitrary byte payload.
	SignMessage(msg []byte) ([]byte, error)
}

// KeypairSigner signs with a locally held private key.
type KeypairSigner struct {
	key solana.PrivateKey
}

// NewKeypairSigner wraps an in-memory private key.
func NewKeypairSigner(key solana.PrivateKey) *KeypairSigner {
	return &KeypairSigner{key: key}
}

// KeypairFromBase58 parses a base58-encoded private key into a signer.
func KeypairFromBase58(encoded string) (*KeypairSigner, error) {
	key, err := solana.PrivateKeyFromBase58(encoded)
	if err != nil {
		return nil, nlerr.Wallet("invalid private key").WithCause(err)
	}
	return &KeypairSigner{key: key}, nil
}

func (k *KeypairSigner) PublicKey() solana.PublicKey {
	return k.key.PublicKey()
}

func (k *KeypairSigner) SignTransaction(tx *solana.Transaction) error {
	_, err := tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
		if pub.Equals(k.key.PublicKey()) {
			return &k.key
		}
		return nil
	})
	if err != nil {
		return nlerr.Wallet("failed to sign transaction").WithCause(err)
	}
	return nil
}

func (k *KeypairSigner) SignAllTransactions(txs []*solana.Transaction) error {
	for _, tx := range txs {
		if err := k.SignTransaction(tx); err != nil {
			return err
		}
	}
	return nil
}

func (k *KeypairSigner) SignMessage(msg []byte) ([]byte, error) {
	sig, err := k.key.Sign(msg)
	if err != nil {
		return nil, nlerr.Wallet("failed to sign message").WithCause(err)
	}
	return sig[:], nil
}

// TruncateKey shortens a public key for log output: first and last four
// characters around an ellipsis. Short strings pass through unchanged.
func TruncateKey(key string) string {
	if len(key) <= 12 {
		return key
	}
	return key[:4] + "..." + key[len(key)-4:]
}
