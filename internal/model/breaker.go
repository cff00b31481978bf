package model

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerPredictor wraps a Predictor with a circuit breaker so a wedged
// inference runtime trips open instead of stalling every request behind it.
type BreakerPredictor struct {
	inner Predictor
	cb    *gobreaker.CircuitBreaker
}

// WithBreaker wraps a predictor with a circuit breaker. The breaker opens
// after five consecutive failures and probes again after 30 seconds.
func WithBreaker(name string, inner Predictor) *BreakerPredictor {
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &BreakerPredictor{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker(settings),
	}
}

// Predict runs the wrapped predictor through the breaker
func (b *BreakerPredictor) Predict(ctx context.Context, ids []int64) ([]int64, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Predict(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return result.([]int64), nil
}
