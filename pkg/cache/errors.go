package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnavailable reports a remote backend (redis, mongo) that did not answer.
	ErrUnavailable = errors.New("cache backend unavailable")

	// ErrCacheMiss is for callers that require a stored value.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError tags a transient backend failure.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable tags err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err, or anything it wraps, was tagged by Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const retryAttempts = 3

// retryDelay is the wait before the second attempt. Tests shorten it.
var retryDelay = 500 * time.Millisecond

// RetryWithBackoff runs fn until it succeeds, returns an untagged error, or
// has been tried retryAttempts times. The wait doubles after each failure and
// is cut short by ctx.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	wait := retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}
