package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/sony/gobreaker/v2"
)

// BreakerConfig configures the optional circuit breaker.
type BreakerConfig struct {
	OpenTimeout  time.Duration
	FailureRatio float64
	MinRequests  uint32
	Enabled      bool
}

// breaker guards every request when enabled. A nil breaker passes calls straight through.
type breaker struct {
	cb *gobreaker.CircuitBreaker[*http.Response]
}

func newBreaker(cfg BreakerConfig) *breaker {
	if !cfg.Enabled {
		return nil
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.FailureRatio <= 0 {
		cfg.FailureRatio = 0.6
	}

	settings := gobreaker.Settings{
		Name:        "closet-service",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		// Client mistakes (4xx) say nothing about service health.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.StatusCode < http.StatusInternalServerError
			}
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &breaker{cb: gobreaker.NewCircuitBreaker[*http.Response](settings)}
}

func (b *breaker) execute(fn func() (*http.Response, error)) (*http.Response, error) {
	if b == nil {
		return fn()
	}
	resp, err := b.cb.Execute(fn)
	if err != nil && IsCircuitOpen(err) {
		// Open circuits are not retried.
		return nil, &common.RetryableError{Err: common.NewUserError("closet service unavailable, try again shortly", err)}
	}
	return resp, err
}
