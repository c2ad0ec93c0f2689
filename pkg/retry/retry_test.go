package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
)

func TestDoExhaustsRetriesOnTransientFailure(t *testing.T) {
	calls := 0
	boom := nlerr.Network("boom", 0, "/x")

	start := time.Now()
	_, err := Do(context.Background(), func(context.Context) (int, error) {
		calls++
		return 0, boom
	}, Options{Retries: 3, BaseDelay: 10 * time.Millisecond})
	elapsed := time.Since(start)

	if calls != 3 {
		t.Fatalf("attempts = %d, want 3", calls)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("last error not surfaced unchanged: %v", err)
	}
	// backoff sum for 3 attempts: 10ms + 20ms
	if elapsed < 30*time.Millisecond {
		t.Fatalf("elapsed %v, want >= 30ms of backoff", elapsed)
	}
}

func TestDoAbortsOnNonTransientFailure(t *testing.T) {
	for _, fail := range []error{
		nlerr.Payment("m", "", ""),
		nlerr.Validation("m", ""),
		nlerr.Wallet("m"),
		nlerr.Transaction("m", ""),
	} {
		calls := 0
		_, err := Do(context.Background(), func(context.Context) (int, error) {
			calls++
			return 0, fail
		}, Options{Retries: 3, BaseDelay: time.Millisecond})

		if calls != 1 {
			t.Fatalf("%s: attempts = %d, want 1", nlerr.KindOf(fail), calls)
		}
		if !errors.Is(err, fail) {
			t.Fatalf("%s: error not surfaced unchanged: %v", nlerr.KindOf(fail), err)
		}
	}
}

func TestDoSucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", nlerr.Network("flaky", 0, "")
		}
		return "ok", nil
	}, Options{Retries: 3, BaseDelay: time.Millisecond})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 2 {
		t.Fatalf("got %q after %d calls", got, calls)
	}
}

func TestDoHonorsCancellationDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	calls := 0
	_, err := Do(ctx, func(context.Context) (int, error) {
		calls++
		return 0, nlerr.Network("boom", 0, "")
	}, Options{Retries: 3, BaseDelay: time.Second})

	if calls != 1 {
		t.Fatalf("attempts = %d, want 1", calls)
	}
	if nlerr.KindOf(err) != nlerr.KindNetwork {
		t.Fatalf("kind = %s, want network", nlerr.KindOf(err))
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("context cause not wrapped: %v", err)
	}
}

func TestDoDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.Retries != 3 || o.BaseDelay != time.Second {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}
