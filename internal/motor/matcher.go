// Filename: internal/motor/matcher.go
package motor

import (
	"context"

	"go.uber.org/zap"
)

// Match resolves a selector chain against the live page and returns
// the first visible hit.
//
// Hard absence of the primary (no node at all) short-circuits: a page
// that never rendered the element will not render its fallbacks
// either, so the walk is skipped. A primary that is present but
// invisible triggers the fallback walk in order. Any error during a
// single probe is swallowed and counts as a non-match for that
// candidate only; the walk continues. Visibility, not mere DOM
// presence, is the operative notion of "found".
func (c *Controller) Match(ctx context.Context, page Page, primary string, fallbacks []Fallback) MatchResult {
	el, err := page.QueryFirst(ctx, primary)
	if err != nil {
		c.logger.Debug("primary probe failed, walking fallbacks",
			zap.String("selector", primary), zap.Error(err))
	} else if el == nil {
		return MatchResult{}
	} else {
		visible, verr := page.IsVisible(ctx, el)
		if verr != nil {
			c.logger.Debug("visibility probe failed, treating as hidden",
				zap.String("selector", primary), zap.Error(verr))
		}
		if verr == nil && visible {
			return MatchResult{Selector: primary, Element: el, UsedFallback: false}
		}
	}

	for _, fb := range fallbacks {
		el, err := page.QueryFirst(ctx, fb.Selector)
		if err != nil || el == nil {
			continue
		}
		visible, err := page.IsVisible(ctx, el)
		if err != nil || !visible {
			continue
		}
		c.logger.Debug("matched via fallback selector",
			zap.String("primary", primary),
			zap.String("fallback", fb.Selector),
			zap.String("reason", fb.Reason))
		return MatchResult{Selector: fb.Selector, Element: el, UsedFallback: true, Reason: fb.Reason}
	}

	return MatchResult{}
}
