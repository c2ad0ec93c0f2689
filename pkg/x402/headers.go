// Package x402 implements the pay-per-call challenge/response protocol used
// by every billable noLimit endpoint. An unauthenticated request that hits a
// payable resource receives HTTP 402 with a payment requirement; the client
// settles it with exactly one on-chain transfer, attaches the proof in the
// X-Payment header and resubmits once. A second 402 for the same logical
// call is terminal: the negotiator never pays twice.
package x402

const (
	// HeaderPayment carries the base64-encoded payment proof on the
	// resubmitted request.
	HeaderPayment = "X-Payment"
	// HeaderPaymentResponse is set by the server on a paid response and
	// carries the settlement signature surfaced to callers.
	HeaderPaymentResponse = "X-Payment-Response"
	// HeaderAPIKey authenticates enterprise callers, bypassing the
	// challenge entirely.
	HeaderAPIKey = "X-API-Key"

	// ProtocolVersion is the x402 payload version emitted by this client.
	ProtocolVersion = "1"
	// Network identifies the settlement chain in payment payloads.
	Network = "solana"
)
