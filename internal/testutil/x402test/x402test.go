// Package x402test provides an in-process fake of a payment-gated noLimit
// endpoint for tests: it issues 402 challenges, accepts X-Payment proofs and
// records what it saw, so tests can assert on the negotiation without any
// network or chain access.
package x402test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Config shapes the fake server's behavior.
type Config struct {
	// Amount, PayTo, Asset and Nonce populate the issued requirement.
	Amount string
	PayTo  string
	Asset  string
	Nonce  string
	// ExpiresAt is copied into the requirement verbatim (unix seconds).
	ExpiresAt int64
	// Free disables the challenge entirely.
	Free bool
	// AlwaysRequire keeps answering 402 even to paid requests, simulating a
	// server that rejects the proof.
	AlwaysRequire bool
	// APIKey, when set, makes any request carrying it succeed unchallenged.
	APIKey string
	// ResponseBody is the success payload; nil yields {"ok":true}.
	ResponseBody any
	// PaymentResponse is the X-Payment-Response header on paid success.
	PaymentResponse string
}

// Server wraps httptest.Server and records observed negotiation traffic.
type Server struct {
	*httptest.Server
	cfg Config

	mu                sync.Mutex
	challengesIssued  int
	paidRequests      int
	lastPaymentHeader string
}

// New starts the fake server and registers cleanup with t.
func New(t *testing.T, cfg Config) *Server {
	t.Helper()
	s := &Server{cfg: cfg}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// ChallengesIssued reports how many 402 responses were sent.
func (s *Server) ChallengesIssued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.challengesIssued
}

// PaidRequests reports how many requests arrived carrying an X-Payment header.
func (s *Server) PaidRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paidRequests
}

// LastPaymentHeader returns the most recent X-Payment header value.
func (s *Server) LastPaymentHeader() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPaymentHeader
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if s.cfg.APIKey != "" && r.Header.Get("X-API-Key") == s.cfg.APIKey {
		s.success(w)
		return
	}
	if s.cfg.Free {
		s.success(w)
		return
	}

	payment := r.Header.Get("X-Payment")
	if payment != "" {
		s.mu.Lock()
		s.paidRequests++
		s.lastPaymentHeader = payment
		s.mu.Unlock()
	}

	if payment == "" || s.cfg.AlwaysRequire {
		s.mu.Lock()
		s.challengesIssued++
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"x402Version": 1,
			"error":       "payment required",
			"accepts": []map[string]any{{
				"scheme":            "exact",
				"network":           "solana",
				"maxAmountRequired": s.cfg.Amount,
				"asset":             map[string]any{"address": s.cfg.Asset},
				"payTo":             s.cfg.PayTo,
				"nonce":             s.cfg.Nonce,
				"expiresAt":         s.cfg.ExpiresAt,
			}},
		})
		return
	}

	if s.cfg.PaymentResponse != "" {
		w.Header().Set("X-Payment-Response", s.cfg.PaymentResponse)
	}
	s.success(w)
}

func (s *Server) success(w http.ResponseWriter) {
	body := s.cfg.ResponseBody
	if body == nil {
		body = map[string]any{"ok": true}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
