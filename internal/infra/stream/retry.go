package stream

import (
	"errors"
	"time"

	"coupon-service/internal/pkg/config"
)

// permanentError marks a failure that must never be retried: malformed
// payloads, validation errors, anything where a second attempt cannot
// succeed.
type permanentError struct {
	err error
}

func (e permanentError) Error() string { return "permanent: " + e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent classifies err as non-retryable for the consumer's retry loop.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// RetryPolicy is an explicit value object: attempt bounds, backoff shape and
// the retryable-vs-fatal classifier, passed into the consumer loop instead of
// living in framework annotations.
type RetryPolicy struct {
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	MaxAttempts  int
	IsRetryable  func(error) bool
}

func NewRetryPolicy(cfg config.RetryConfig) RetryPolicy {
	return RetryPolicy{
		InitialDelay: cfg.InitialDelay,
		Multiplier:   cfg.Multiplier,
		MaxDelay:     cfg.MaxDelay,
		MaxAttempts:  cfg.MaxAttempts,
		IsRetryable:  func(err error) bool { return !IsPermanent(err) },
	}
}

// Delay returns the backoff before the given retry (attempt is 1-based:
// attempt 1 is the first retry after the initial failure), growing by the
// multiplier and capped at MaxDelay.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := p.InitialDelay
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * p.Multiplier)
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
