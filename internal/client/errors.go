package client

import (
	"context"
	"errors"
	"fmt"
)

// ErrCancelled is returned when a request was aborted because its context was
// cancelled. Callers treat it as expected, not as a failure.
var ErrCancelled = errors.New("request cancelled")

// HTTPError represents a non-success response from the server.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NetworkError wraps a transport-level failure (DNS, refused connection,
// timeout, truncated body).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network failure: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsCancelled reports whether err is a cancellation outcome.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}

// cancelledError keeps the underlying cause while matching ErrCancelled.
type cancelledError struct {
	cause error
}

func (e *cancelledError) Error() string { return ErrCancelled.Error() + ": " + e.cause.Error() }

func (e *cancelledError) Is(target error) bool { return target == ErrCancelled }

func (e *cancelledError) Unwrap() error { return e.cause }

// classify turns a transport error into a cancellation or network outcome.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return &cancelledError{cause: err}
	}
	return &NetworkError{Err: err}
}
