// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Common application errors.
var (
	// Service errors.
	ErrNotFound           = errors.New("not found")
	ErrServiceUnavailable = errors.New("service unavailable")

	// Workflow errors.
	ErrNoFiles           = errors.New("no files to upload")
	ErrNoValidImages     = errors.New("no valid image files selected")
	ErrQueueLocked       = errors.New("queue is being processed")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrEmptySelection    = errors.New("no garments selected")
	ErrConfirmCancelled  = errors.New("confirmation cancelled")
	ErrWorkflowRunning   = errors.New("upload workflow already running")
	ErrMissingClassified = errors.New("classification result missing")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable determines if an error should trigger a retry.
// Cancellation is never retried; the caller has given up.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	if errors.Is(err, ErrServiceUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
