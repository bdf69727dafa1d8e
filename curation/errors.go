package curation

import (
	"errors"
	"fmt"
	"time"
)

// ErrExhausted signals that no configured credential can service further
// requests this run. It is the only curation error the batch driver treats
// as fatal: flush progress, stop cleanly, resume on the next invocation.
var ErrExhausted = errors.New("curation: all API credentials exhausted")

// failureClass buckets remote-call failures for the rotation logic
type failureClass int

const (
	classUnknown failureClass = iota
	classQuotaMinute
	classQuotaDay
	classInvalidKey
	classTransient
)

func (c failureClass) String() string {
	switch c {
	case classQuotaMinute:
		return "quota-per-minute"
	case classQuotaDay:
		return "quota-per-day"
	case classInvalidKey:
		return "invalid-credential"
	case classTransient:
		return "transient"
	default:
		return "unclassified"
	}
}

// apiError carries the classification of a failed remote call plus the
// server-suggested retry delay when one was present.
type apiError struct {
	class      failureClass
	status     int
	msg        string
	retryAfter time.Duration
	hasRetry   bool
	cause      error
}

func (e *apiError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("generative API %s: %v", e.class, e.cause)
	}
	return fmt.Sprintf("generative API %s (HTTP %d): %s", e.class, e.status, e.msg)
}

func (e *apiError) Unwrap() error { return e.cause }

// classify extracts the failure class from any remote-call error.
// Errors that are not apiErrors (should not happen via the default
// transport) fall back to unclassified.
func classify(err error) failureClass {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.class
	}
	return classUnknown
}

// retryHint returns the server-suggested wait for a per-minute quota error,
// falling back to the default and capping at the backoff ceiling.
func retryHint(err error, fallback, ceiling time.Duration) time.Duration {
	wait := fallback
	var ae *apiError
	if errors.As(err, &ae) && ae.hasRetry && ae.retryAfter > 0 {
		wait = ae.retryAfter
	}
	if wait > ceiling {
		wait = ceiling
	}
	return wait
}
