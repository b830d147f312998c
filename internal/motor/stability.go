// Filename: internal/motor/stability.go
package motor

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
)

// StabilityOptions tunes one stability wait. Zero values fall back to
// the controller configuration.
type StabilityOptions struct {
	Timeout time.Duration
}

// WaitStable polls the element's bounding box until two consecutive
// samples land within LayoutShiftThreshold of each other, trading
// latency for positional confidence against post-paint reflows.
//
// Absence keeps the loop polling until the deadline; continued drift
// past the deadline yields a timeout result. Caller cancellation is
// observed every tick and also reported as a timeout, never as a
// returned error.
func (c *Controller) WaitStable(ctx context.Context, page Page, selector string, opts StabilityOptions) StabilityResult {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.cfg.StabilityTimeout
	}
	deadline := time.Now().Add(timeout)

	var prev *Box
	for {
		if ctx.Err() != nil {
			c.logger.Debug("stability wait canceled", zap.String("selector", selector))
			return StabilityResult{Reason: ReasonTimeout}
		}
		if time.Now().After(deadline) {
			c.logger.Debug("stability wait timed out",
				zap.String("selector", selector), zap.Duration("timeout", timeout))
			return StabilityResult{Reason: ReasonTimeout}
		}

		box := c.sampleBox(ctx, page, selector)
		if box != nil {
			if prev != nil && c.withinThreshold(*prev, *box) {
				return StabilityResult{Success: true, Box: box}
			}
			prev = box
		} else {
			// Element vanished mid-wait: a stale sample must not pair
			// with a future one.
			prev = nil
		}

		if err := page.Sleep(ctx, c.cfg.PollInterval); err != nil {
			return StabilityResult{Reason: ReasonTimeout}
		}
	}
}

// sampleBox takes one box sample, swallowing every probe failure to
// nil so the polling loop keeps moving.
func (c *Controller) sampleBox(ctx context.Context, page Page, selector string) *Box {
	el, err := page.QueryFirst(ctx, selector)
	if err != nil || el == nil {
		return nil
	}
	box, err := page.BoundingBox(ctx, el)
	if err != nil || box == nil || box.Empty() {
		return nil
	}
	return box
}

func (c *Controller) withinThreshold(a, b Box) bool {
	t := c.cfg.LayoutShiftThreshold
	return math.Abs(a.X-b.X) < t && math.Abs(a.Y-b.Y) < t
}
