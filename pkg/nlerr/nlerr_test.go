package nlerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessageCarriesKindCode(t *testing.T) {
	err := Payment("requirement unmet", "50000", "payee")
	if !strings.Contains(err.Error(), "PAYMENT_REQUIRED") {
		t.Fatalf("missing kind code: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "requirement unmet") {
		t.Fatalf("missing message: %s", err.Error())
	}
}

func TestKindSpecificFields(t *testing.T) {
	p := Payment("m", "100", "dest")
	if p.Required != "100" || p.PayTo != "dest" {
		t.Fatalf("payment fields not set: %+v", p)
	}
	n := Network("m", 503, "/endpoint")
	if n.StatusCode != 503 || n.Endpoint != "/endpoint" {
		t.Fatalf("network fields not set: %+v", n)
	}
	v := Validation("m", "amount")
	if v.Field != "amount" {
		t.Fatalf("validation field not set: %+v", v)
	}
	x := Transaction("m", "sig123")
	if x.Signature != "sig123" {
		t.Fatalf("transaction field not set: %+v", x)
	}
	m := Mixer("m", "mix-1")
	if m.MixID != "mix-1" {
		t.Fatalf("mixer field not set: %+v", m)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{Payment("m", "", ""), KindPayment},
		{Network("m", 0, ""), KindNetwork},
		{Validation("m", ""), KindValidation},
		{Wallet("m"), KindWallet},
		{Transaction("m", ""), KindTransaction},
		{Mixer("m", ""), KindMixer},
		{Generic("m"), KindGeneric},
		{errors.New("plain"), KindGeneric},
		{fmt.Errorf("wrapped: %w", Network("m", 0, "")), KindNetwork},
	}
	for _, tc := range tests {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{Network("m", 500, ""), true},
		{fmt.Errorf("wrapped: %w", Network("m", 0, "")), true},
		{Payment("m", "", ""), false},
		{Validation("m", ""), false},
		{Wallet("m"), false},
		{Transaction("m", ""), false},
		{errors.New("plain"), false},
	}
	for _, tc := range tests {
		if got := IsTransient(tc.err); got != tc.want {
			t.Fatalf("IsTransient(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Network("request failed", 0, "/x").WithCause(cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("cause not rendered: %s", err.Error())
	}
}
