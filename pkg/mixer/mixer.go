// Package mixer drives the multi-hop privacy transfer lifecycle: fee
// preview, payment-gated mix creation, deposit, and status polling until a
// terminal state. Transitions are server-reported; the SDK never infers them
// locally. Polling cadence is caller policy.
package mixer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/blockchain"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/model"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/wallet"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/x402"
)

// Service endpoints.
const (
	Endpoint               = "/noLimitMixer/solana"
	StatusEndpoint         = "/mixer/status/"
	ConfirmDepositEndpoint = "/mixer/confirm-deposit"
)

// Client is the mixer service client.
type Client struct {
	x           *x402.Client
	signer      wallet.Signer
	chain       *blockchain.Client
	userAddress string
	timeout     time.Duration
	pollTimeout time.Duration
}

// Options configures the mixer client. Signer and Chain are only required
// for the Deposit helper.
type Options struct {
	X           *x402.Client
	Signer      wallet.Signer
	Chain       *blockchain.Client
	UserAddress string
	Timeout     time.Duration
	PollTimeout time.Duration
}

// New builds a mixer client from options.
func New(opts Options) *Client {
	return &Client{
		x:           opts.X,
		signer:      opts.Signer,
		chain:       opts.Chain,
		userAddress: opts.UserAddress,
		timeout:     opts.Timeout,
		pollTimeout: opts.PollTimeout,
	}
}

// CalculateFee previews the percentage fee for a display amount without
// touching the network. The arithmetic is exact: fee + output == amount for
// every representable amount.
func CalculateFee(amountDisplay string) (fee, output string, err error) {
	amt, err := decimal.NewFromString(amountDisplay)
	if err != nil {
		return "", "", nlerr.Validation("amount is not a valid decimal number", "amount")
	}
	if amt.Sign() <= 0 {
		return "", "", nlerr.Validation("amount must be positive", "amount")
	}

	f := amt.Mul(decimal.NewFromInt(model.MixerFeePercent)).Shift(-2)
	return f.String(), amt.Sub(f).String(), nil
}

type createRequest struct {
	Token            string `json:"token"`
	Amount           string `json:"amount"`
	RecipientAddress string `json:"recipientAddress"`
	UserAddress      string `json:"userAddress"`
	DelayMinutes     int    `json:"delayMinutes"`
}

type createResponse struct {
	MixID          string `json:"mixId"`
	DepositAddress string `json:"depositAddress"`
	DepositAmount  string `json:"depositAmount"`
	Fee            string `json:"fee"`
	OutputAmount   string `json:"outputAmount"`
	ExpiresAt      string `json:"expiresAt"`
}

// Create validates the request, issues the payment-gated mix call and
// returns the job in state pending_deposit. The server is authoritative for
// the deposit amount, fee and output; CalculateFee gives the same split in
// display units.
func (c *Client) Create(ctx context.Context, p model.MixParams) (*model.MixJob, error) {
	tok, ok := model.ResolveToken(p.Token)
	if !ok {
		return nil, nlerr.Validation("unsupported token: "+p.Token, "token")
	}
	if _, err := solana.PublicKeyFromBase58(p.Recipient); err != nil {
		return nil, nlerr.Validation("invalid recipient address", "recipient")
	}
	if _, _, err := CalculateFee(p.Amount); err != nil {
		return nil, err
	}
	if p.DelayMinutes < 0 {
		return nil, nlerr.Validation("delay must not be negative", "delay")
	}

	res, err := c.x.Post(ctx, Endpoint, createRequest{
		Token:            tok.Symbol,
		Amount:           p.Amount,
		RecipientAddress: p.Recipient,
		UserAddress:      c.userAddress,
		DelayMinutes:     p.DelayMinutes,
	}, c.timeout)
	if err != nil {
		return nil, err
	}

	var out createResponse
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return nil, nlerr.Mixer("malformed mix response", "").WithCause(err)
	}
	if out.MixID == "" || out.DepositAddress == "" {
		return nil, nlerr.Mixer("mix response missing id or deposit address", out.MixID)
	}

	return &model.MixJob{
		MixID:            out.MixID,
		Token:            tok.Symbol,
		Status:           model.MixPendingDeposit,
		DepositAddress:   out.DepositAddress,
		DepositAmount:    out.DepositAmount,
		Fee:              out.Fee,
		OutputAmount:     out.OutputAmount,
		Recipient:        p.Recipient,
		ExpiresAt:        out.ExpiresAt,
		PaymentSignature: res.PaymentSignature,
	}, nil
}

// Status polls the read-only status endpoint. Safe to call at any rate; no
// side effects.
func (c *Client) Status(ctx context.Context, mixID string) (*model.MixStatus, error) {
	if mixID == "" {
		return nil, nlerr.Validation("mixId is required", "mixId")
	}

	data, err := c.x.Get(ctx, StatusEndpoint+mixID, c.pollTimeout)
	if err != nil {
		var e *nlerr.Error
		if errors.As(err, &e) && e.StatusCode == http.StatusNotFound {
			return nil, nlerr.Mixer("mix not found", mixID)
		}
		return nil, err
	}

	var st model.MixStatus
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, nlerr.Mixer("malformed mix status", mixID).WithCause(err)
	}
	if st.MixID == "" {
		st.MixID = mixID
	}
	return &st, nil
}

type confirmRequest struct {
	MixID     string `json:"mixId"`
	Signature string `json:"signature"`
}

// ConfirmDeposit notifies the server of an observed deposit transaction so
// it can pick the job up without waiting for its own chain scan.
func (c *Client) ConfirmDeposit(ctx context.Context, mixID, depositSignature string) error {
	if mixID == "" {
		return nlerr.Validation("mixId is required", "mixId")
	}
	if depositSignature == "" {
		return nlerr.Validation("deposit signature is required", "signature")
	}

	_, err := c.x.Post(ctx, ConfirmDepositEndpoint, confirmRequest{
		MixID:     mixID,
		Signature: depositSignature,
	}, c.timeout)
	return err
}

// Deposit sends the job's deposit amount to its deposit address, tagging the
// transfer with the mix id, and returns the deposit signature. Requires a
// signer.
func (c *Client) Deposit(ctx context.Context, job *model.MixJob) (string, error) {
	if c.signer == nil || c.chain == nil {
		return "", nlerr.Wallet("signer required to deposit")
	}
	tok, ok := model.ResolveToken(job.Token)
	if !ok {
		return "", nlerr.Validation("unsupported token: "+job.Token, "token")
	}
	depositTo, err := solana.PublicKeyFromBase58(job.DepositAddress)
	if err != nil {
		return "", nlerr.Mixer("mix job has invalid deposit address", job.MixID)
	}

	tx, err := c.chain.BuildTransfer(ctx, blockchain.TransferParams{
		From:       c.signer.PublicKey(),
		To:         depositTo,
		Mint:       tok.Mint,
		AmountBase: job.DepositAmount,
		Memo:       job.MixID,
	})
	if err != nil {
		return "", err
	}
	if err := c.signer.SignTransaction(tx); err != nil {
		return "", err
	}

	sig, err := c.chain.SubmitAndConfirm(ctx, tx)
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}

// WaitForCompletion polls Status at the given interval until the mix reaches
// a terminal state, enforcing progress monotonicity across polls. The
// interval is caller policy; context cancellation aborts the wait.
func (c *Client) WaitForCompletion(ctx context.Context, mixID string, interval time.Duration) (*model.MixStatus, error) {
	if interval <= 0 {
		interval = 5 * time.Second
	}

	tracker := NewTracker()
	for {
		st, err := c.Status(ctx, mixID)
		if err != nil {
			return nil, err
		}
		merged, err := tracker.Update(st)
		if err != nil {
			return nil, err
		}
		if merged.Status.Terminal() {
			return merged, nil
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, nlerr.Network("mix status polling aborted", 0, StatusEndpoint+mixID).WithCause(ctx.Err())
		case <-timer.C:
		}
	}
}
