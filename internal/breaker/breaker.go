// Package breaker builds circuit breakers for outbound HTTP collaborators
// (text generation, web search) with shared logging and metrics.
package breaker

import (
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/yishak-cs/studyhub/internal/logging"
	"github.com/yishak-cs/studyhub/internal/metrics"
)

// Settings tune when a breaker opens
type Settings struct {
	// MinRequests before the failure ratio is considered
	MinRequests uint32
	// FailureRatio at or above which the circuit opens
	FailureRatio float64
	// OpenTimeout before a half-open probe
	OpenTimeout time.Duration
}

// DefaultSettings opens after 60% failures over at least 5 requests and probes again after 30s
func DefaultSettings() Settings {
	return Settings{MinRequests: 5, FailureRatio: 0.6, OpenTimeout: 30 * time.Second}
}

// New creates a named breaker for calls returning T
func New[T any](name string, s Settings) *gobreaker.CircuitBreaker[T] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
}

// Observe records the outcome of a breaker call
func Observe(name string, err error) {
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
	case IsRejected(err):
		metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
	}
}

// IsRejected reports whether err came from an open or saturated breaker rather than the call
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
