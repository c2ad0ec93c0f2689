package x402

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/retry"
)

// Options configures the negotiator.
type Options struct {
	// ServerURL is the paid-API host, without a trailing slash.
	ServerURL string
	// APIKey, when set, authenticates via X-API-Key instead of per-call
	// payments.
	APIKey string
	// Payer settles 402 challenges. Without one the client can still make
	// free and API-key calls.
	Payer Payer
	// HTTPClient overrides the transport; nil uses http.DefaultClient
	// semantics with a fresh client.
	HTTPClient *http.Client
	// Retry bounds transient-failure retries for each HTTP round-trip.
	Retry retry.Options
}

// Client performs payment-gated HTTP calls. Each logical call handles at
// most one payment challenge round-trip; transport-level retries inside a
// round-trip never re-trigger a payment.
type Client struct {
	http      *http.Client
	serverURL string
	apiKey    string
	payer     Payer
	retry     retry.Options
}

// New builds a negotiator from options.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		http:      httpClient,
		serverURL: opts.ServerURL,
		apiKey:    opts.APIKey,
		payer:     opts.Payer,
		retry:     opts.Retry,
	}
}

// Result is the outcome of one paid call: the service payload plus the
// settlement signature when a payment round occurred.
type Result struct {
	Data             json.RawMessage
	PaymentSignature string
}

type httpReply struct {
	status int
	body   []byte
	header http.Header
}

// Post performs one logical paid call against endpoint. The flow:
// send unauthenticated; on 402 parse and validate the requirement, settle it
// through the Payer, resubmit once with the proof attached. A second 402
// fails with a payment-kind error without constructing another payment.
func (c *Client) Post(ctx context.Context, endpoint string, body any, timeout time.Duration) (*Result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nlerr.Generic("failed to encode request body").WithCause(err)
	}

	first, err := c.roundTrip(ctx, http.MethodPost, endpoint, payload, "")
	if err != nil {
		return nil, err
	}
	if first.status != http.StatusPaymentRequired {
		return c.finish(endpoint, first)
	}

	req, err := parseRequirement(first.body)
	if err != nil {
		return nil, err
	}
	if err := req.validate(time.Now()); err != nil {
		return nil, err
	}
	if c.payer == nil {
		return nil, nlerr.Wallet("no signer available to satisfy payment requirement")
	}

	proof, err := c.payer.Pay(ctx, req)
	if err != nil {
		return nil, err
	}

	second, err := c.roundTrip(ctx, http.MethodPost, endpoint, payload, encodeProof(req, proof))
	if err != nil {
		return nil, err
	}
	if second.status == http.StatusPaymentRequired {
		// At most one challenge round-trip per logical call: paying again
		// here would double-charge for the same request.
		return nil, nlerr.Payment("payment proof rejected by server", req.MaxAmountRequired, req.PayTo)
	}

	res, err := c.finish(endpoint, second)
	if err != nil {
		return nil, err
	}
	if res.PaymentSignature == "" {
		res.PaymentSignature = proof.Signature
	}
	return res, nil
}

// Get fetches a read-only resource (status polls). No payment negotiation is
// attempted; a 402 here is a protocol violation reported as a payment error.
func (c *Client) Get(ctx context.Context, endpoint string, timeout time.Duration) (json.RawMessage, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	reply, err := c.roundTrip(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, err
	}
	if reply.status == http.StatusPaymentRequired {
		return nil, nlerr.Payment("unexpected payment challenge on read-only endpoint", "", "")
	}
	res, err := c.finish(endpoint, reply)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// roundTrip performs one HTTP exchange through the retry layer. Transport
// failures and 5xx responses are network-kind (retried); everything else,
// 402 included, is returned to the caller for interpretation. Payment
// settlement happens strictly outside this function, so retries can never
// pay twice.
func (c *Client) roundTrip(ctx context.Context, method, endpoint string, body []byte, paymentHeader string) (*httpReply, error) {
	return retry.Do(ctx, func(ctx context.Context) (*httpReply, error) {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.serverURL+endpoint, rd)
		if err != nil {
			return nil, nlerr.Generic("failed to build request").WithCause(err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.apiKey != "" {
			req.Header.Set(HeaderAPIKey, c.apiKey)
		}
		if paymentHeader != "" {
			req.Header.Set(HeaderPayment, paymentHeader)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, nlerr.Network("request failed", 0, endpoint).WithCause(err)
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, nlerr.Network("failed to read response body", resp.StatusCode, endpoint).WithCause(err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, nlerr.Network(fmt.Sprintf("server error (%d)", resp.StatusCode), resp.StatusCode, endpoint)
		}
		return &httpReply{status: resp.StatusCode, body: b, header: resp.Header}, nil
	}, c.retry)
}

// finish interprets a terminal reply: 2xx yields the payload and any
// X-Payment-Response signature, remaining client errors are surfaced with
// their status code.
func (c *Client) finish(endpoint string, reply *httpReply) (*Result, error) {
	if reply.status < 200 || reply.status >= 300 {
		e := nlerr.Generic(fmt.Sprintf("request rejected (%d)", reply.status))
		e.StatusCode = reply.status
		e.Endpoint = endpoint
		return nil, e
	}
	return &Result{
		Data:             reply.body,
		PaymentSignature: reply.header.Get(HeaderPaymentResponse),
	}, nil
}

// encodeProof renders the X-Payment header value: the base64-encoded JSON
// payload binding the proof to the requirement it settles.
func encodeProof(req *Requirement, proof *Proof) string {
	payload := proofPayload{
		Version:   ProtocolVersion,
		Network:   Network,
		From:      proof.From,
		To:        req.PayTo,
		Amount:    req.MaxAmountRequired,
		Asset:     req.Asset.Address,
		Resource:  req.Resource,
		Nonce:     req.Nonce,
		Timestamp: time.Now().UnixMilli(),
		Signature: proof.Signature,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("failed to encode payment proof", zap.Error(err))
		return ""
	}
	return base64.StdEncoding.EncodeToString(raw)
}
