package resilience

import (
	"errors"
	"fmt"
	"time"

	"biteaffair/internal/metrics"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// DefaultTimeout bounds every outbound gateway call.
const DefaultTimeout = 5 * time.Second

// CircuitBreaker wraps gobreaker with metrics
type CircuitBreaker struct {
	*gobreaker.CircuitBreaker
	name    string
	service string
}

// NewCircuitBreaker trips once at least 3 calls were made and 60% of them failed.
func NewCircuitBreaker(name, service string) *CircuitBreaker {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    15 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(cbName string, from gobreaker.State, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(service, cbName).Set(stateValue(to))

			log.WithFields(log.Fields{
				"circuit": cbName,
				"from":    from.String(),
				"to":      to.String(),
			}).Info("Circuit breaker state changed")
		},
	})

	metrics.CircuitBreakerState.WithLabelValues(service, name).Set(0)

	return &CircuitBreaker{
		CircuitBreaker: cb,
		name:           name,
		service:        service,
	}
}

// Execute runs fn through the breaker and counts failures.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cb.CircuitBreaker.Execute(fn)
	if err != nil {
		metrics.CircuitBreakerFailures.WithLabelValues(cb.service, cb.name).Inc()
		return result, FormatError(cb.name, err)
	}
	return result, nil
}

func (cb *CircuitBreaker) GetState() string {
	return cb.State().String()
}

// stateValue is 0 for closed, 1 for open and 2 for half-open.
func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}

// ErrUnavailable wraps the breaker's own rejections.
var ErrUnavailable = errors.New("service unavailable")

// FormatError names the circuit in breaker rejections.
func FormatError(circuitName string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) {
		return fmt.Errorf("circuit breaker %s is open: %w", circuitName, ErrUnavailable)
	}
	if errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("circuit breaker %s has too many requests in half-open state: %w", circuitName, ErrUnavailable)
	}
	return err
}
