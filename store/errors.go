package store

import (
	"errors"
	"fmt"
)

// Error is the failure of a single store call. Retryable follows the
// HTTP status classification: 408, 429 and 5xx are transient.
type Error struct {
	Status    int
	Message   string
	Retryable bool
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("store: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("store: %s", e.Message)
}

// IsRetryable reports whether err (or anything it wraps) is a transient
// store failure worth retrying.
func IsRetryable(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

func retryableStatus(status int) bool {
	switch {
	case status == 408, status == 429:
		return true
	case status >= 500:
		return true
	}
	return false
}
