// Package blockchain wraps the Solana RPC client behind the SDK's
// submission/confirmation collaborator: submit a signed transaction, then
// poll signature status until the configured commitment level is reached.
// It also builds the memo-tagged transfer transactions used to settle x402
// payment requirements and mixer deposits.
package blockchain

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
)

// Client talks to a single Solana RPC endpoint at a fixed commitment level.
// It is safe for concurrent use; each call is independent.
type Client struct {
	rpc            *rpc.Client
	commitment     rpc.CommitmentType
	pollInterval   time.Duration
	confirmTimeout time.Duration
}

// New connects to the given RPC URL. commitment is one of "processed",
// "confirmed" or "finalized"; anything else falls back to "confirmed".
// confirmTimeout bounds how long Confirm waits for a transaction to reach
// the commitment level; zero takes the 90s default.
func New(rpcURL, commitment string, confirmTimeout time.Duration) *Client {
	if confirmTimeout <= 0 {
		confirmTimeout = 90 * time.Second
	}
	return &Client{
		rpc:            rpc.New(rpcURL),
		commitment:     ParseCommitment(commitment),
		pollInterval:   2 * time.Second,
		confirmTimeout: confirmTimeout,
	}
}

// ParseCommitment maps a config string to the RPC commitment type,
// defaulting to confirmed.
func ParseCommitment(s string) rpc.CommitmentType {
	switch s {
	case "finalized":
		return rpc.CommitmentFinalized
	case "processed":
		return rpc.CommitmentProcessed
	default:
		return rpc.CommitmentConfirmed
	}
}

// RPC exposes the underlying client for advanced usage.
func (c *Client) RPC() *rpc.Client {
	return c.rpc
}

// LatestBlockhash fetches a recent blockhash for transaction assembly.
func (c *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, nlerr.Network("failed to fetch recent blockhash", 0, "rpc").WithCause(err)
	}
	return out.Value.Blockhash, nil
}

// Balance returns the SOL balance of pub in lamports.
func (c *Client) Balance(ctx context.Context, pub solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetBalance(ctx, pub, c.commitment)
	if err != nil {
		return 0, nlerr.Network("failed to fetch balance", 0, "rpc").WithCause(err)
	}
	return out.Value, nil
}

// Submit sends a signed transaction to the network and returns its
// signature. Submission failures are transaction-kind errors and are never
// retried here: resubmitting could double-spend.
func (c *Client) Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, nlerr.Transaction("failed to submit transaction", "").WithCause(err)
	}
	return sig, nil
}

// Confirm polls signature status until the configured commitment is reached,
// or until the confirmation timeout elapses. Context cancellation and timeout
// abort with a transaction-kind error carrying the signature, rather than
// hanging.
func (c *Client) Confirm(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nlerr.Transaction("confirmation aborted", sig.String()).WithCause(ctx.Err())
		case <-ticker.C:
		}

		out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			zap.L().Warn("signature status poll failed", zap.Error(err))
			continue
		}
		if len(out.Value) == 0 || out.Value[0] == nil {
			continue
		}

		st := out.Value[0]
		if st.Err != nil {
			return nlerr.Transaction("transaction failed on-chain", sig.String())
		}
		if reached(st.ConfirmationStatus, c.commitment) {
			return nil
		}
	}
}

// SubmitAndConfirm submits tx and waits for it to reach the configured
// commitment level.
func (c *Client) SubmitAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.Submit(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	if err := c.Confirm(ctx, sig); err != nil {
		return sig, err
	}
	return sig, nil
}

func reached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	rank := func(s string) int {
		switch s {
		case "processed":
			return 0
		case "confirmed":
			return 1
		case "finalized":
			return 2
		}
		return -1
	}
	return rank(string(status)) >= rank(string(want))
}
