// Package chat relays prompts to the noLimit LLM endpoint. The call itself
// is the billable action; payment is handled transparently by the x402
// negotiator.
package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/model"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/x402"
)

// Service endpoints. EndpointAgent is used instead of Endpoint when an API
// key authenticates the caller.
const (
	Endpoint      = "/noLimitLLM/solana"
	EndpointAgent = "/api/agent"
)

// Client is the chat service client.
type Client struct {
	x           *x402.Client
	userAddress string
	useAgentAPI bool
	timeout     time.Duration
}

// New builds a chat client. userAddress may be empty for anonymous API-key
// usage; useAgentAPI selects the enterprise endpoint.
func New(x *x402.Client, userAddress string, useAgentAPI bool, timeout time.Duration) *Client {
	return &Client{x: x, userAddress: userAddress, useAgentAPI: useAgentAPI, timeout: timeout}
}

type sendRequest struct {
	Message             string              `json:"message"`
	UserAddress         string              `json:"userAddress"`
	ConversationHistory []model.ChatMessage `json:"conversationHistory,omitempty"`
}

type sendResponse struct {
	Response string `json:"response"`
}

// Send relays one message and returns the model's reply. opts may be nil.
func (c *Client) Send(ctx context.Context, message string, opts *model.ChatOptions) (*model.ChatResponse, error) {
	if message == "" {
		return nil, nlerr.Validation("message is required", "message")
	}

	body := sendRequest{
		Message:     message,
		UserAddress: c.userAddress,
	}
	if body.UserAddress == "" {
		body.UserAddress = "anonymous"
	}

	timeout := c.timeout
	if opts != nil {
		body.ConversationHistory = opts.History
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
	}

	endpoint := Endpoint
	if c.useAgentAPI {
		endpoint = EndpointAgent
	}

	res, err := c.x.Post(ctx, endpoint, body, timeout)
	if err != nil {
		return nil, err
	}

	var out sendResponse
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return nil, nlerr.Generic("malformed chat response").WithCause(err)
	}

	return &model.ChatResponse{
		Message:          out.Response,
		PaymentSignature: res.PaymentSignature,
	}, nil
}
