package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/grant-verdict/internal/config"
)

// GuardConfig configures a Guard.
type GuardConfig struct {
	Name string
	// Timeout bounds each attempt. Zero means no per-attempt deadline.
	Timeout time.Duration
	Backoff Backoff
	// RequestsPerSecond of 0 disables rate limiting.
	RequestsPerSecond float64
	FailureThreshold  int
	ResetTimeout      time.Duration
}

// FromAugmentConfig maps the augmentation settings onto a GuardConfig.
func FromAugmentConfig(name string, c config.AugmentConfig) GuardConfig {
	b := DefaultBackoff()
	if c.MaxAttempts > 0 {
		b.MaxAttempts = c.MaxAttempts
	}
	return GuardConfig{
		Name:              name,
		Timeout:           time.Duration(c.TimeoutSecs) * time.Second,
		Backoff:           b,
		RequestsPerSecond: c.RequestsPerSecond,
		FailureThreshold:  c.FailureThreshold,
		ResetTimeout:      time.Duration(c.ResetTimeoutSecs) * time.Second,
	}
}

// Guard wraps calls to one provider with rate limiting, a circuit breaker,
// per-attempt timeouts and retry. It is safe for concurrent use and shared
// across evaluations.
type Guard struct {
	cfg     GuardConfig
	limiter *rate.Limiter
	breaker *Breaker
}

// NewGuard creates a Guard.
func NewGuard(cfg GuardConfig) *Guard {
	g := &Guard{
		cfg:     cfg,
		breaker: NewBreaker(cfg.Name, cfg.FailureThreshold, cfg.ResetTimeout),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return g
}

// Breaker exposes the guard's circuit breaker.
func (g *Guard) Breaker() *Breaker {
	return g.breaker
}

// Call runs fn under the guard. Every attempt waits for the rate limiter,
// passes the breaker and runs under its own timeout. The breaker counts the
// outcome of the whole call, not of each attempt.
func Call[T any](ctx context.Context, g *Guard, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if g == nil {
		return fn(ctx)
	}
	if err := g.breaker.Allow(); err != nil {
		return zero, err
	}

	val, err := Retry(ctx, g.cfg.Backoff, g.cfg.Name, func(ctx context.Context) (T, error) {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return zero, eris.Wrap(err, "resilience: rate limit wait")
			}
		}
		if g.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
			defer cancel()
		}
		return fn(ctx)
	})

	// A caller giving up is not the provider's fault.
	if errors.Is(err, context.Canceled) {
		g.breaker.Release()
	} else {
		g.breaker.Record(err)
	}
	return val, err
}
