// Filename: internal/motor/occlusion.go
package motor

import (
	"context"
	"encoding/json"
	"math"

	"go.uber.org/zap"
)

// topElementJS asks the page which element currently paints a point,
// judged against the click target. A point inside a healthy button is
// painted by the button itself or one of its descendants; that is not
// occlusion, so the probe returns null for it. It also returns null
// when nothing paints the point or the painter would not intercept a
// pointer event.
const topElementJS = `(x, y, selector) => {
	const el = document.elementFromPoint(x, y);
	if (!el) {
		return null;
	}
	if (selector && el.closest(selector)) {
		return null;
	}
	const style = window.getComputedStyle(el);
	if (style.pointerEvents === 'none') {
		return null;
	}
	return {
		tag: el.tagName.toLowerCase(),
		id: el.id || '',
		classes: typeof el.className === 'string' ? el.className : '',
	};
}`

// ElementDescriptor identifies the element painting a probed point.
type ElementDescriptor struct {
	Tag     string `json:"tag"`
	ID      string `json:"id"`
	Classes string `json:"classes"`
}

// TopElementAt probes the page's top-of-z-order element at a viewport
// point, treating the element matching selector and its subtree as
// transparent. A nil result means "no covering element". Probe
// failures are swallowed to nil ("no coverage information"), never
// thrown upward.
func (c *Controller) TopElementAt(ctx context.Context, page Page, selector string, x, y float64) *ElementDescriptor {
	raw, err := page.EvaluateInPage(ctx, topElementJS, x, y, selector)
	if err != nil {
		c.logger.Debug("occlusion probe failed",
			zap.Float64("x", x), zap.Float64("y", y), zap.Error(err))
		return nil
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var desc ElementDescriptor
	if err := json.Unmarshal(raw, &desc); err != nil {
		c.logger.Debug("occlusion probe returned malformed descriptor", zap.Error(err))
		return nil
	}
	return &desc
}

// SpiralOptions tunes one spiral search. Zero values fall back to the
// controller configuration.
type SpiralOptions struct {
	MaxAttempts int
}

const (
	// spiralStepPx is the radial growth per probe.
	spiralStepPx = 8.0
	// spiralAngleRad approximates the golden angle, spreading probes
	// evenly around the center as the radius grows.
	spiralAngleRad = 2.39996
)

// SpiralSearch probes a deterministic, monotonically expanding outward
// sequence of points around (cx, cy) until one reports the target
// clickable: typically an exposed sliver of a mostly covered element.
// It is the last-resort recovery for permanently occluded targets; the
// attempt counter never exceeds MaxAttempts.
func (c *Controller) SpiralSearch(ctx context.Context, page Page, selector string, cx, cy float64, opts SpiralOptions) RecoveryResult {
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = c.cfg.SpiralSearchAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		r := spiralStepPx * float64(attempt)
		theta := spiralAngleRad * float64(attempt)
		p := Point{
			X: cx + r*math.Cos(theta),
			Y: cy + r*math.Sin(theta),
		}
		if c.TopElementAt(ctx, page, selector, p.X, p.Y) == nil {
			c.logger.Debug("spiral search found uncovered point",
				zap.Int("attempts", attempt), zap.Float64("x", p.X), zap.Float64("y", p.Y))
			return RecoveryResult{Success: true, Point: &p, Attempts: attempt}
		}
	}

	c.logger.Debug("spiral search exhausted",
		zap.Int("attempts", maxAttempts), zap.Float64("cx", cx), zap.Float64("cy", cy))
	return RecoveryResult{Attempts: maxAttempts, Reason: ReasonSpiralFailed}
}

// uncoveredOffsets are the interior probe positions of a box as
// fractions of its width and height, center first.
var uncoveredOffsets = [...]struct{ fx, fy float64 }{
	{0.5, 0.5},
	{0.5, 0.25}, {0.5, 0.75},
	{0.25, 0.5}, {0.75, 0.5},
	{0.25, 0.25}, {0.75, 0.25},
	{0.25, 0.75}, {0.75, 0.75},
}

// FindUncoveredArea is the box-scoped variant of SpiralSearch: it
// probes interior points of the box, center first, and succeeds on the
// first point where nothing foreign paints over the target.
func (c *Controller) FindUncoveredArea(ctx context.Context, page Page, selector string, box Box) RecoveryResult {
	if box.Empty() {
		return RecoveryResult{Reason: ReasonNoBox}
	}
	for i, off := range uncoveredOffsets {
		p := Point{
			X: box.X + box.Width*off.fx,
			Y: box.Y + box.Height*off.fy,
		}
		if c.TopElementAt(ctx, page, selector, p.X, p.Y) == nil {
			return RecoveryResult{Success: true, Point: &p, Attempts: i + 1}
		}
	}
	return RecoveryResult{Attempts: len(uncoveredOffsets), Reason: ReasonSpiralFailed}
}
