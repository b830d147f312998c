// Filename: internal/motor/retry.go
package motor

import (
	"context"
	"time"
)

// RetryOptions tunes one backoff-wrapped operation. Zero values fall
// back to the engine defaults.
type RetryOptions struct {
	// MaxRetries is the total attempt budget, first attempt included.
	MaxRetries int

	// BaseDelay is the delay after the first failure; each subsequent
	// delay doubles, so the sequence is non-decreasing.
	BaseDelay time.Duration
}

// backoffGrowth is the fixed inter-attempt growth factor.
const backoffGrowth = 2

// RetryWithBackoff calls op until it succeeds or the attempt budget is
// spent, sleeping BaseDelay * growth^attempt between failures via the
// page so delays suspend like every other engine wait. A first-attempt
// success spends no delay at all; exhaustion returns the last error
// unchanged so callers can match it with errors.Is.
func RetryWithBackoff[T any](ctx context.Context, page Page, op func(context.Context) (T, error), opts RetryOptions) (T, error) {
	var zero T

	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultConfig().MaxRetries
	}
	baseDelay := opts.BaseDelay
	if baseDelay <= 0 {
		baseDelay = DefaultConfig().BaseDelay
	}

	var lastErr error
	delay := baseDelay
	for attempt := 0; attempt < maxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == maxRetries-1 {
			break
		}
		if err := page.Sleep(ctx, delay); err != nil {
			return zero, err
		}
		delay *= backoffGrowth
	}
	return zero, lastErr
}
