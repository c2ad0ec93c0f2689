// Package retry wraps asynchronous operations with bounded
// exponential-backoff retry. Only transient failures (network kind,
// transport timeouts) are retried; all other failures abort immediately.
// This is the single place in the SDK where retries happen.
package retry

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
)

// Options bounds the retry loop. Zero values take the defaults below.
type Options struct {
	// Retries is the total number of attempts, including the first.
	Retries int
	// BaseDelay is the pause before the second attempt; attempt i waits
	// BaseDelay * 2^(i-1).
	BaseDelay time.Duration
}

const (
	defaultRetries   = 3
	defaultBaseDelay = time.Second
)

func (o Options) withDefaults() Options {
	if o.Retries <= 0 {
		o.Retries = defaultRetries
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = defaultBaseDelay
	}
	return o
}

// Do runs op up to opts.Retries times, sleeping BaseDelay * 2^i between
// attempts i and i+1. Non-transient failures abort without consuming further
// attempts. On exhaustion the last observed failure is returned unchanged so
// the caller sees the true cause. Each call is independent; there is no
// shared state between concurrent invocations.
func Do[T any](ctx context.Context, op func(context.Context) (T, error), opts Options) (T, error) {
	opts = opts.withDefaults()

	var zero T
	var lastErr error

	for i := 0; i < opts.Retries; i++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if !nlerr.IsTransient(err) {
			return zero, err
		}
		if i == opts.Retries-1 {
			break
		}

		delay := opts.BaseDelay << uint(i)
		zap.L().Debug("transient failure, backing off",
			zap.Int("attempt", i+1),
			zap.Duration("delay", delay),
			zap.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, nlerr.Network("request aborted during backoff", 0, "").WithCause(ctx.Err())
		case <-timer.C:
		}
	}
	return zero, lastErr
}
