// Filename: internal/motor/verify.go
package motor

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// VerifyOptions tunes one verified click.
type VerifyOptions struct {
	// VerifySelector is the confirmation signal expected to appear
	// after a successful click (a toast, a state flip, a dialog).
	VerifySelector string

	// Timeout bounds the confirmation wait; zero uses the controller's
	// stability timeout.
	Timeout time.Duration

	// Click is forwarded to the underlying orchestrated click.
	Click ClickOptions
}

// ClickWithVerification delegates the click to ClickWithRecovery and,
// on click success, waits for the confirmation selector to appear.
// Verification is purely observational: the click is never retried,
// and Success always reflects the underlying click outcome regardless
// of whether the confirmation showed up.
func (c *Controller) ClickWithVerification(ctx context.Context, page Page, selector string, opts VerifyOptions) VerifyResult {
	res := c.ClickWithRecovery(ctx, page, selector, opts.Click)
	if !res.Success {
		return VerifyResult{ClickResult: res}
	}
	if opts.VerifySelector == "" {
		return VerifyResult{ClickResult: res}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.cfg.StabilityTimeout
	}

	err := page.WaitForSelector(ctx, opts.VerifySelector, timeout)
	if err != nil {
		c.logger.Debug("click confirmation never appeared",
			zap.String("selector", selector),
			zap.String("verify", opts.VerifySelector),
			zap.Error(err))
	}
	return VerifyResult{ClickResult: res, Verified: err == nil}
}
