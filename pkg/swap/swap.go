// Package swap builds quote and execute calls against the Jupiter aggregator
// and routes the billable execute call through the x402 negotiator. Quotes
// are advisory snapshots: execution always re-quotes, and the slippage
// threshold computed at quote time is enforced before any transaction is
// signed.
package swap

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strconv"
	"sync"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/amount"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/blockchain"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/model"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/retry"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/wallet"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/x402"
)

// Endpoint is the payment-gated swap execution resource.
const Endpoint = "/noLimitSwap/solana"

// DefaultSlippageBps is the tolerated degradation when the caller does not
// specify one: 50 basis points, 0.5%.
const DefaultSlippageBps = 50

// rewardRateBps is the fixed $NL reward schedule: rewards accrue at this
// rate on the input amount, independent of the route taken.
const rewardRateBps = 100

// Options configures the swap client.
type Options struct {
	X          *x402.Client
	Signer     wallet.Signer
	Chain      *blockchain.Client
	JupiterURL string
	HTTPClient *http.Client
	Timeout    time.Duration
	Retry      retry.Options
}

// Client orchestrates quotes and executions. The last quote per pair is
// cached for display purposes only; it is never trusted for execution.
type Client struct {
	x          *x402.Client
	signer     wallet.Signer
	chain      *blockchain.Client
	jupiterURL string
	http       *http.Client
	timeout    time.Duration
	retryOpts  retry.Options

	mu         sync.Mutex
	lastQuotes map[string]model.SwapQuote
}

// New builds a swap client from options.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		x:          opts.X,
		signer:     opts.Signer,
		chain:      opts.Chain,
		jupiterURL: opts.JupiterURL,
		http:       httpClient,
		timeout:    opts.Timeout,
		retryOpts:  opts.Retry,
		lastQuotes: make(map[string]model.SwapQuote),
	}
}

// jupiterQuote mirrors the aggregator's quote response. PriceImpactPct is a
// decimal string on the wire. The aggregator's own threshold is ignored; the
// client computes it from OutAmount and the requested slippage.
type jupiterQuote struct {
	InAmount       string               `json:"inAmount"`
	OutAmount      string               `json:"outAmount"`
	PriceImpactPct string               `json:"priceImpactPct"`
	RoutePlan      []model.JupiterRoute `json:"routePlan"`
	ContextSlot    uint64               `json:"contextSlot"`
}

// Quote converts the display amount to base units, fetches a route from the
// aggregator and returns the quote with the slippage threshold applied:
// floor(outAmount * (10000 - slippageBps) / 10000). Execution never delivers
// less than that threshold.
func (c *Client) Quote(ctx context.Context, p model.SwapParams) (*model.SwapQuote, error) {
	fromTok, toMint, err := resolvePair(p)
	if err != nil {
		return nil, err
	}

	base, err := amount.ToBase(p.Amount, fromTok.Decimals)
	if err != nil {
		return nil, err
	}
	if base == "0" {
		return nil, nlerr.Validation("amount must be positive", "amount")
	}

	slippage := p.SlippageBps
	if slippage <= 0 {
		slippage = DefaultSlippageBps
	}

	url := fmt.Sprintf("%s/quote?inputMint=%s&outputMint=%s&amount=%s&slippageBps=%d",
		c.jupiterURL, fromTok.Mint, toMint, base, slippage)

	body, err := retry.Do(ctx, func(ctx context.Context) ([]byte, error) {
		return c.fetch(ctx, url)
	}, c.retryOpts)
	if err != nil {
		return nil, err
	}

	var jq jupiterQuote
	if err := json.Unmarshal(body, &jq); err != nil {
		return nil, nlerr.Generic("malformed aggregator quote").WithCause(err)
	}
	if jq.OutAmount == "" {
		return nil, nlerr.Generic("aggregator quote missing output amount")
	}

	threshold, err := slippageThreshold(jq.OutAmount, slippage)
	if err != nil {
		return nil, err
	}

	var impact float64
	if jq.PriceImpactPct != "" {
		impact, err = strconv.ParseFloat(jq.PriceImpactPct, 64)
		if err != nil {
			return nil, nlerr.Generic("aggregator quote has malformed price impact: " + jq.PriceImpactPct).WithCause(err)
		}
	}

	quote := &model.SwapQuote{
		InAmount:             base,
		OutAmount:            jq.OutAmount,
		OtherAmountThreshold: threshold,
		PriceImpactPct:       impact,
		RoutePlan:            jq.RoutePlan,
		ContextSlot:          jq.ContextSlot,
	}

	c.mu.Lock()
	c.lastQuotes[fromTok.Symbol+"/"+p.To] = *quote
	c.mu.Unlock()

	return quote, nil
}

// LastQuote returns the most recent quote observed for the pair, or nil.
// Advisory only: quotes expire by context slot and must never gate
// execution.
func (c *Client) LastQuote(from, to string) *model.SwapQuote {
	fromTok, ok := model.ResolveToken(from)
	if !ok {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if q, ok := c.lastQuotes[fromTok.Symbol+"/"+to]; ok {
		return &q
	}
	return nil
}

type executeRequest struct {
	Chain       string `json:"chain"`
	FromToken   string `json:"fromToken"`
	ToToken     string `json:"toToken"`
	Amount      string `json:"amount"`
	UserAddress string `json:"userAddress"`
	Slippage    int    `json:"slippage"`
}

type executeResponse struct {
	Tx    string `json:"tx"`
	Quote struct {
		ToAmount string `json:"toAmount"`
	} `json:"quote"`
}

// Execute performs the billable swap: re-quote (a cached quote is never
// trusted), request the prebuilt transaction through the payment-gated
// endpoint, verify the output against the slippage threshold, then sign,
// submit and confirm on-chain. Rewards accrue at the fixed schedule on the
// input amount.
func (c *Client) Execute(ctx context.Context, p model.SwapParams) (*model.SwapResult, error) {
	if c.signer == nil || c.chain == nil {
		return nil, nlerr.Wallet("signer required to execute swaps")
	}

	fromTok, toMint, err := resolvePair(p)
	if err != nil {
		return nil, err
	}

	quote, err := c.Quote(ctx, p)
	if err != nil {
		return nil, err
	}

	slippage := p.SlippageBps
	if slippage <= 0 {
		slippage = DefaultSlippageBps
	}

	res, err := c.x.Post(ctx, Endpoint, executeRequest{
		Chain:       "solana",
		FromToken:   fromTok.Mint,
		ToToken:     toMint,
		Amount:      quote.InAmount,
		UserAddress: c.signer.PublicKey().String(),
		Slippage:    slippage,
	}, c.timeout)
	if err != nil {
		return nil, err
	}

	var out executeResponse
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return nil, nlerr.Generic("malformed swap response").WithCause(err)
	}

	outAmount := out.Quote.ToAmount
	if outAmount == "" {
		outAmount = quote.OutAmount
	}

	below, err := lessThan(outAmount, quote.OtherAmountThreshold)
	if err != nil {
		return nil, err
	}
	if below {
		return nil, nlerr.Transaction(
			fmt.Sprintf("swap output %s below slippage threshold %s", outAmount, quote.OtherAmountThreshold), "")
	}

	raw, err := base64.StdEncoding.DecodeString(out.Tx)
	if err != nil {
		return nil, nlerr.Transaction("malformed swap transaction payload", "").WithCause(err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, nlerr.Transaction("failed to decode swap transaction", "").WithCause(err)
	}

	if err := c.signer.SignTransaction(tx); err != nil {
		return nil, err
	}

	sig, err := c.chain.SubmitAndConfirm(ctx, tx)
	if err != nil {
		return nil, err
	}

	return &model.SwapResult{
		Signature:        sig.String(),
		InAmount:         quote.InAmount,
		OutAmount:        outAmount,
		NLRewards:        rewardFor(quote.InAmount),
		PaymentSignature: res.PaymentSignature,
	}, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nlerr.Generic("failed to build aggregator request").WithCause(err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nlerr.Network("aggregator request failed", 0, url).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nlerr.Network("failed to read aggregator response", resp.StatusCode, url).WithCause(err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, nlerr.Network(fmt.Sprintf("aggregator error (%d)", resp.StatusCode), resp.StatusCode, url)
	}
	if resp.StatusCode != http.StatusOK {
		e := nlerr.Generic(fmt.Sprintf("aggregator rejected quote (%d)", resp.StatusCode))
		e.StatusCode = resp.StatusCode
		return nil, e
	}
	return body, nil
}

// resolvePair maps From to a registry token (decimals are required to scale
// the input) and To to a mint, accepting either a registry symbol or a raw
// mint address for the destination.
func resolvePair(p model.SwapParams) (model.TokenConfig, string, error) {
	fromTok, ok := model.ResolveToken(p.From)
	if !ok {
		return model.TokenConfig{}, "", nlerr.Validation("unsupported source token: "+p.From, "from")
	}
	if toTok, ok := model.ResolveToken(p.To); ok {
		return fromTok, toTok.Mint, nil
	}
	if _, err := solana.PublicKeyFromBase58(p.To); err == nil {
		return fromTok, p.To, nil
	}
	return model.TokenConfig{}, "", nlerr.Validation("unsupported destination token: "+p.To, "to")
}

// slippageThreshold computes floor(out * (10000 - bps) / 10000).
func slippageThreshold(out string, bps int) (string, error) {
	n, ok := new(big.Int).SetString(out, 10)
	if !ok {
		return "", nlerr.Generic("aggregator returned non-integer output amount: " + out)
	}
	n.Mul(n, big.NewInt(int64(10000-bps)))
	n.Quo(n, big.NewInt(10000))
	return n.String(), nil
}

// rewardFor applies the fixed reward schedule to the input amount.
func rewardFor(inAmount string) string {
	n, ok := new(big.Int).SetString(inAmount, 10)
	if !ok {
		return "0"
	}
	n.Mul(n, big.NewInt(rewardRateBps))
	n.Quo(n, big.NewInt(10000))
	return n.String()
}

func lessThan(a, b string) (bool, error) {
	x, ok := new(big.Int).SetString(a, 10)
	if !ok {
		return false, nlerr.Generic("non-integer amount: " + a)
	}
	y, ok := new(big.Int).SetString(b, 10)
	if !ok {
		return false, nlerr.Generic("non-integer amount: " + b)
	}
	return x.Cmp(y) < 0, nil
}
