// Package readiness waits for a freshly provisioned host to become reachable.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// ErrTimeout is returned when the host did not answer before Options.Timeout.
var ErrTimeout = errors.New("timed out waiting for host")

const (
	DefaultInterval = 10 * time.Second
	DefaultTimeout  = 300 * time.Second
	DefaultSettle   = 30 * time.Second
)

// Prober performs a single reachability check.
type Prober interface {
	Probe(ctx context.Context, host string) error
}

type Options struct {
	// Interval between probes.
	Interval time.Duration
	// Timeout bounds the whole polling phase.
	Timeout time.Duration
	// Settle is waited after the first successful probe, to let boot scripts finish.
	Settle time.Duration
}

func DefaultOptions() Options {
	return Options{
		Interval: DefaultInterval,
		Timeout:  DefaultTimeout,
		Settle:   DefaultSettle,
	}
}

type Result struct {
	Host     string
	Attempts int
	Elapsed  time.Duration
}

type Waiter struct {
	prober Prober
	opts   Options
	clock  clock.Clock
	log    *zap.Logger
}

func NewWaiter(prober Prober, opts Options, clk clock.Clock, log *zap.Logger) *Waiter {
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Waiter{
		prober: prober,
		opts:   opts,
		clock:  clk,
		log:    log,
	}
}

// Wait probes host every Interval until it answers or Timeout elapses, then waits Settle.
// A timeout is reported as ErrTimeout; callers usually treat it as a warning.
func (w *Waiter) Wait(ctx context.Context, host string) (Result, error) {
	result := Result{Host: host}
	start := w.clock.Now()

	backoff := retry.WithMaxDuration(w.opts.Timeout, retry.NewConstant(w.opts.Interval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		result.Attempts++

		if err := w.prober.Probe(ctx, host); err != nil {
			w.log.Debug("host not reachable yet",
				zap.String("host", host),
				zap.Int("attempt", result.Attempts),
				zap.Error(err))
			return retry.RetryableError(err)
		}

		return nil
	})

	result.Elapsed = w.clock.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		return result, fmt.Errorf("%w %s after %d attempts: %w", ErrTimeout, host, result.Attempts, err)
	}

	w.log.Debug("host reachable", zap.String("host", host), zap.Int("attempts", result.Attempts))

	if w.opts.Settle > 0 {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-w.clock.After(w.opts.Settle):
		}
	}

	result.Elapsed = w.clock.Since(start)
	return result, nil
}
