package gateway

import (
	"context"
	"math/rand"
	"time"
)

// RetryConfig controls how a failed gateway request is retried.
//
// Public gateways rate-limit with 429 and shed load with 503, and a
// request racing block propagation can surface transient 5xx
// responses; those are worth retrying. Any other 4xx means the request
// itself is wrong and never will succeed.
type RetryConfig struct {
	// MaxRetries is the retry budget per request; 0 disables retries.
	MaxRetries int
	// BaseDelay is the delay before the first retry. Each further
	// retry multiplies it by Multiplier, capped at MaxDelay.
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
	// Jitter randomizes each delay by up to +/- this fraction, so
	// clients that failed together do not retry together.
	Jitter float64
	// RetryableOn reports whether a status code should be retried.
	RetryableOn func(statusCode int) bool
}

// DefaultRetryConfig returns retry behavior tuned for public storage
// gateways: a short first backoff, because most 429/503 responses
// clear within a second or two.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:  3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		Multiplier:  2.0,
		Jitter:      0.2,
		RetryableOn: retryableStatus,
	}
}

func retryableStatus(statusCode int) bool {
	switch statusCode {
	case 408, 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// ShouldRetry reports whether the request should be retried after
// receiving the given status code on the given attempt.
func (r *RetryConfig) ShouldRetry(attempt, statusCode int) bool {
	return attempt < r.MaxRetries && r.RetryableOn(statusCode)
}

// Delay returns the backoff before retry number attempt, jittered.
func (r *RetryConfig) Delay(attempt int) time.Duration {
	delay := float64(r.BaseDelay)
	for i := 0; i < attempt && delay < float64(r.MaxDelay); i++ {
		delay *= r.Multiplier
	}
	if delay > float64(r.MaxDelay) {
		delay = float64(r.MaxDelay)
	}

	if r.Jitter > 0 {
		spread := delay * r.Jitter
		delay += spread * (2*rand.Float64() - 1)
	}

	return time.Duration(delay)
}

// Wait sleeps for the attempt's backoff, returning early with the
// context error if the caller gives up first.
func (r *RetryConfig) Wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(r.Delay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
