// Filename: internal/motor/scroll.go
package motor

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// scrollToBandJS scrolls the window so the element sits near the
// preferred viewport band and returns the vertical delta applied.
const scrollToBandJS = `(selector, band) => {
	const el = document.querySelector(selector);
	if (!el) {
		return null;
	}
	const rect = el.getBoundingClientRect();
	const delta = rect.top - window.innerHeight * band;
	window.scrollBy({ top: delta, behavior: 'auto' });
	return delta;
}`

// preferredBand places the target roughly a third down the viewport,
// clear of sticky headers above and cookie bars below.
const preferredBand = 0.35

// ScrollToElement repositions an element toward the preferred viewport
// band and returns the vertical delta applied. It distinguishes an
// unresolved selector (no_element) from a resolved but boxless one
// (no_box, detached or zero-size).
func (c *Controller) ScrollToElement(ctx context.Context, page Page, selector string) ScrollResult {
	el, err := page.QueryFirst(ctx, selector)
	if err != nil || el == nil {
		return ScrollResult{Reason: ReasonNoElement}
	}
	box, err := page.BoundingBox(ctx, el)
	if err != nil || box == nil || box.Empty() {
		return ScrollResult{Reason: ReasonNoBox}
	}

	raw, err := page.EvaluateInPage(ctx, scrollToBandJS, selector, preferredBand)
	if err != nil {
		c.logger.Debug("scroll evaluation failed",
			zap.String("selector", selector), zap.Error(err))
		return ScrollResult{Reason: ReasonNoBox}
	}
	if len(raw) == 0 || string(raw) == "null" {
		// The element detached between the box sample and the scroll.
		return ScrollResult{Reason: ReasonNoElement}
	}

	var delta float64
	if err := json.Unmarshal(raw, &delta); err != nil {
		c.logger.Debug("scroll evaluation returned malformed delta", zap.Error(err))
		return ScrollResult{Reason: ReasonNoBox}
	}

	c.logger.Debug("scrolled element toward preferred band",
		zap.String("selector", selector), zap.Float64("delta", delta))
	return ScrollResult{Success: true, Y: delta}
}
