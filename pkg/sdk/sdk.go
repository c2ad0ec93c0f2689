// Package sdk exposes the high-level noLimit client. It wires together the
// signer, the Solana RPC collaborator, the x402 payment negotiator and the
// chat, swap and mixer service clients.
package sdk

import (
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/blockchain"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/chat"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/config"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/mixer"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/swap"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/wallet"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/x402"
)

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Client is the root noLimit client. Sub-clients share one signer, one chain
// client and one payment negotiator; the SDK holds no other mutable state
// across calls.
type Client struct {
	cfg    *config.Config
	signer wallet.Signer
	chain  *blockchain.Client

	Chat  *chat.Client
	Swap  *swap.Client
	Mixer *mixer.Client
}

// New builds a client from configuration. With a private key configured the
// client can pay 402 challenges and submit transactions; with only an API
// key it is limited to API-key-authenticated calls.
func New(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var signer wallet.Signer
	if cfg.PrivateKey != "" {
		ks, err := wallet.KeypairFromBase58(cfg.PrivateKey)
		if err != nil {
			return nil, err
		}
		signer = ks
	}
	return NewWithSigner(signer, cfg)
}

// NewWithSigner builds a client around an externally managed signer, such as
// an interactive wallet adapter. signer may be nil for unauthenticated or
// API-key usage.
func NewWithSigner(signer wallet.Signer, cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	chainClient := blockchain.New(cfg.RPCURL, cfg.Commitment, cfg.Timeouts.Confirm)

	var payer x402.Payer
	var userAddress string
	if signer != nil {
		payer = x402.NewChainPayer(signer, chainClient)
		userAddress = signer.PublicKey().String()
	}

	negotiator := x402.New(x402.Options{
		ServerURL: cfg.ServerURL,
		APIKey:    cfg.APIKey,
		Payer:     payer,
	})

	if cfg.Debug {
		zap.L().Info("client initialized",
			zap.String("server", cfg.ServerURL),
			zap.String("rpc", cfg.RPCURL),
			zap.String("wallet", wallet.TruncateKey(userAddress)))
	}

	return &Client{
		cfg:    cfg,
		signer: signer,
		chain:  chainClient,
		Chat:   chat.New(negotiator, userAddress, cfg.APIKey != "", cfg.Timeouts.Chat),
		Swap: swap.New(swap.Options{
			X:          negotiator,
			Signer:     signer,
			Chain:      chainClient,
			JupiterURL: cfg.JupiterURL,
			Timeout:    cfg.Timeouts.Swap,
		}),
		Mixer: mixer.New(mixer.Options{
			X:           negotiator,
			Signer:      signer,
			Chain:       chainClient,
			UserAddress: userAddress,
			Timeout:     cfg.Timeouts.Mixer,
			PollTimeout: cfg.Timeouts.Default,
		}),
	}, nil
}

// PublicKey returns the signer identity, or the zero key when running
// without a signer.
func (c *Client) PublicKey() solana.PublicKey {
	if c.signer == nil {
		return solana.PublicKey{}
	}
	return c.signer.PublicKey()
}

// Blockchain exposes the underlying chain client for advanced usage.
func (c *Client) Blockchain() *blockchain.Client {
	return c.chain
}
