// Filename: internal/motor/recovery.go
package motor

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// ClickOptions tunes one orchestrated click.
type ClickOptions struct {
	// StabilityTimeout overrides the per-tier stability wait; zero
	// uses the controller default.
	StabilityTimeout time.Duration

	// Jitter offsets the click point by a small Gaussian amount inside
	// the box, imitating imperfect human aim.
	Jitter bool
}

// The recovery ladder. Tiers escalate by cost and each runs at most
// once per call chain: scrolling is cheap and fixes the common
// reflow/below-the-fold case, spiral search is the expensive fallback
// for persistent occlusion.
const (
	tierDirect = iota
	tierScrollRetry
	tierSpiral
	tierCount
)

// ClickWithRecovery locates, stabilizes and clicks the element behind
// the selector, escalating through the recovery ladder only on
// failure. The ladder is a bounded tier loop, never recursion, so
// termination does not depend on call-stack depth.
func (c *Controller) ClickWithRecovery(ctx context.Context, page Page, selector string, opts ClickOptions) ClickResult {
	stOpts := StabilityOptions{Timeout: opts.StabilityTimeout}

	stable := false
	var lastCenter *Point

	for tier := tierDirect; tier < tierCount; tier++ {
		switch tier {
		case tierDirect, tierScrollRetry:
			if tier == tierScrollRetry {
				if stable {
					// Stability was not the problem; scrolling cannot
					// help an occluded-but-stable target.
					continue
				}
				scroll := c.ScrollToElement(ctx, page, selector)
				if !scroll.Success && scroll.Reason == ReasonNoElement {
					c.logger.Debug("recovery aborted, element gone",
						zap.String("selector", selector))
					return ClickResult{Reason: ReasonNoElement}
				}
			}

			st := c.WaitStable(ctx, page, selector, stOpts)
			if !st.Success {
				c.logger.Debug("stability tier failed, escalating",
					zap.String("selector", selector), zap.Int("tier", tier))
				continue
			}
			stable = true
			center := st.Box.Center()
			lastCenter = &center

			area := c.FindUncoveredArea(ctx, page, selector, *st.Box)
			if !area.Success {
				c.logger.Debug("click point covered, escalating",
					zap.String("selector", selector), zap.Int("probes", area.Attempts))
				continue
			}

			point := c.clickPoint(*area.Point, *st.Box, opts.Jitter)
			if err := page.MoveAndClick(ctx, point.X, point.Y); err != nil {
				c.logger.Warn("pointer dispatch failed, escalating",
					zap.String("selector", selector), zap.Error(err))
				continue
			}
			c.logger.Debug("click landed",
				zap.String("selector", selector), zap.Int("tier", tier),
				zap.Float64("x", point.X), zap.Float64("y", point.Y))
			return ClickResult{Success: true}

		case tierSpiral:
			if lastCenter == nil {
				// No box was ever observed; take one last direct look
				// before giving up.
				el, err := page.QueryFirst(ctx, selector)
				if err != nil || el == nil {
					return ClickResult{Reason: ReasonNoElement}
				}
				box, berr := page.BoundingBox(ctx, el)
				if berr != nil || box == nil || box.Empty() {
					// Present but without usable geometry: the target
					// never settled into anything clickable.
					return ClickResult{Reason: ReasonNotStable}
				}
				center := box.Center()
				lastCenter = &center
			}

			found := c.SpiralSearch(ctx, page, selector, lastCenter.X, lastCenter.Y, SpiralOptions{})
			if !found.Success {
				return ClickResult{Reason: ReasonSpiralFailed}
			}
			if err := page.MoveAndClick(ctx, found.Point.X, found.Point.Y); err != nil {
				c.logger.Warn("pointer dispatch failed at spiral point",
					zap.String("selector", selector), zap.Error(err))
				return ClickResult{Reason: ReasonSpiralFailed}
			}
			c.logger.Debug("click landed via spiral recovery",
				zap.String("selector", selector), zap.Int("attempts", found.Attempts))
			return ClickResult{Success: true}
		}
	}

	return ClickResult{Reason: ReasonNotStable}
}

// clickPoint optionally perturbs the chosen point with a small
// Gaussian offset, clamped to stay inside the box.
func (c *Controller) clickPoint(p Point, box Box, jitter bool) Point {
	if !jitter {
		return p
	}
	// One sixth of the dimension keeps ~99% of samples inside the
	// central third of the element.
	x := p.X + rand.NormFloat64()*box.Width/6
	y := p.Y + rand.NormFloat64()*box.Height/6
	x = math.Max(box.X+1, math.Min(box.X+box.Width-1, x))
	y = math.Max(box.Y+1, math.Min(box.Y+box.Height-1, y))
	return Point{X: x, Y: y}
}
