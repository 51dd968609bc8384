package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/sony/gobreaker/v2"
)

// Fallback messages used when an error body carries no usable detail.
const (
	msgRequestFailed = "request failed"
	msgUploadFailed  = "upload failed"
)

// APIError is a non-2xx reply from the closet service.
// Error returns the service's detail text unchanged so it can be shown to the user as-is.
type APIError struct {
	Method     string
	Path       string
	Detail     string
	RequestID  string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Detail
}

// Unwrap maps status classes onto the common sentinels.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case e.StatusCode >= http.StatusInternalServerError:
		return common.ErrServiceUnavailable
	default:
		return nil
	}
}

// IsCircuitOpen reports whether err came from a tripped circuit breaker.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// parseDetail extracts the "detail" string from an error body.
// FastAPI validation errors carry a list there; those fall back to the default text.
func parseDetail(body []byte, fallback string) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}
	if detail, ok := payload.Detail.(string); ok && detail != "" {
		return detail
	}
	return fallback
}
