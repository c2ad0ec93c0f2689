package model

import "time"

// ChatMessage is one entry of a conversation, either side.
type ChatMessage struct {
	Role      string `json:"role"` // "user", "assistant" or "system"
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// ChatOptions tunes one Send call.
type ChatOptions struct {
	// History carries previous messages for conversational context.
	History []ChatMessage
	// Timeout overrides the configured chat timeout when non-zero.
	Timeout time.Duration
}

// ChatResponse is the relayed model output plus the payment signature of the
// x402 round that paid for it, when one occurred.
type ChatResponse struct {
	Message          string `json:"message"`
	PaymentSignature string `json:"paymentSignature,omitempty"`
}
