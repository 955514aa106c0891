package churnkey

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/emiliopalmerini/churnboard/internal/adapters/prometheus"
	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/logging"
	"github.com/emiliopalmerini/churnboard/internal/ports"
)

const breakerName = "churnkey-api"

// CircuitBreakerClient wraps a session source with a circuit breaker so a failing
// upstream is not hammered by repeated dashboard refreshes.
type CircuitBreakerClient struct {
	source ports.SessionSource
	cb     *gobreaker.CircuitBreaker[[]domain.RawSession]
	name   string
}

// BreakerSettings tunes the breaker. Zero values fall back to the defaults below.
type BreakerSettings struct {
	// MaxRequests allowed while half-open.
	MaxRequests uint32
	// Timeout before an open breaker moves to half-open.
	Timeout time.Duration
	// ConsecutiveFailures that open the breaker.
	ConsecutiveFailures uint32
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.MaxRequests == 0 {
		s.MaxRequests = 1
	}
	if s.Timeout == 0 {
		s.Timeout = time.Minute
	}
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 3
	}
	return s
}

// NewCircuitBreakerClient wraps source.
func NewCircuitBreakerClient(source ports.SessionSource, settings BreakerSettings) *CircuitBreakerClient {
	settings = settings.withDefaults()

	prometheus.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]domain.RawSession](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: settings.MaxRequests,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= settings.ConsecutiveFailures
			if trip {
				logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("opening circuit")
			}
			return trip
		},
		IsSuccessful: func(err error) bool {
			// A context cancelled by the caller says nothing about upstream health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit state transition")
			prometheus.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			prometheus.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &CircuitBreakerClient{source: source, cb: cb, name: breakerName}
}

// FetchSessions calls the wrapped source unless the circuit is open.
func (c *CircuitBreakerClient) FetchSessions(ctx context.Context, window ports.FetchWindow) ([]domain.RawSession, error) {
	start := time.Now()
	sessions, err := c.cb.Execute(func() ([]domain.RawSession, error) {
		return c.source.FetchSessions(ctx, window)
	})
	prometheus.FetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			prometheus.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("fetch rejected by circuit breaker")
		} else {
			prometheus.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		}
		return nil, err
	}

	prometheus.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	prometheus.FetchedSessions.Add(float64(len(sessions)))
	return sessions, nil
}

// State reports the current breaker state.
func (c *CircuitBreakerClient) State() gobreaker.State {
	return c.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
