package translate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerEngine wraps an Engine with a circuit breaker. After a run of
// consecutive hard failures the breaker opens and rows fail fast
// instead of spending further API calls; it half-opens after a cooldown
// to probe whether the endpoint recovered. Throttling does not count as
// a failure, since the row processor already retries it with backoff.
type BreakerEngine struct {
	inner Engine
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerEngine wraps engine with a circuit breaker.
func NewBreakerEngine(engine Engine) *BreakerEngine {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        engine.Name(),
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsRateLimit(err)
		},
	})
	return &BreakerEngine{inner: engine, cb: cb}
}

// Translate forwards the request through the breaker.
func (e *BreakerEngine) Translate(ctx context.Context, req Request) (string, error) {
	result, err := e.cb.Execute(func() (interface{}, error) {
		return e.inner.Translate(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("translation endpoint suspended after repeated failures: %w", err)
		}
		return "", err
	}
	return result.(string), nil
}

// Name returns the wrapped backend name.
func (e *BreakerEngine) Name() string {
	return e.inner.Name()
}
