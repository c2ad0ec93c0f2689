package x402

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/blockchain"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/wallet"
)

// Proof is the evidence that a requirement was satisfied: a signed,
// chain-submitted transfer of the exact required amount to the payee.
type Proof struct {
	// Signature of the settlement transaction.
	Signature string
	// From is the payer's public key.
	From string
}

// Payer settles one payment requirement with exactly one on-chain payment.
// The negotiator calls it at most once per logical request; test doubles
// implement this interface to intercept settlement.
type Payer interface {
	Pay(ctx context.Context, req *Requirement) (*Proof, error)
}

// ChainPayer settles requirements by building, signing, submitting and
// confirming a memo-tagged transfer on Solana.
type ChainPayer struct {
	signer wallet.Signer
	chain  *blockchain.Client
}

// NewChainPayer binds a signer and a chain client into a Payer.
func NewChainPayer(signer wallet.Signer, chain *blockchain.Client) *ChainPayer {
	return &ChainPayer{signer: signer, chain: chain}
}

// Pay transfers exactly req.MaxAmountRequired of req.Asset to req.PayTo,
// tagged with the requirement's nonce. Signing refusal surfaces as a
// wallet-kind error, submission or confirmation failure as a transaction-kind
// error carrying the attempted signature.
func (p *ChainPayer) Pay(ctx context.Context, req *Requirement) (*Proof, error) {
	payTo, err := solana.PublicKeyFromBase58(req.PayTo)
	if err != nil {
		return nil, nlerr.Payment("payment requirement has invalid payTo address", req.MaxAmountRequired, req.PayTo)
	}

	memo := req.Nonce
	if memo == "" {
		memo = req.Resource
	}

	tx, err := p.chain.BuildTransfer(ctx, blockchain.TransferParams{
		From:       p.signer.PublicKey(),
		To:         payTo,
		Mint:       req.Asset.Address,
		AmountBase: req.MaxAmountRequired,
		Memo:       memo,
	})
	if err != nil {
		return nil, err
	}

	if err := p.signer.SignTransaction(tx); err != nil {
		return nil, err
	}

	sig, err := p.chain.SubmitAndConfirm(ctx, tx)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("payment settled",
		zap.String("signature", sig.String()),
		zap.String("payTo", req.PayTo),
		zap.String("amount", req.MaxAmountRequired))

	return &Proof{Signature: sig.String(), From: p.signer.PublicKey().String()}, nil
}
