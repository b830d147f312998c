// Filename: internal/browser/page.go
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/strobelight/pagemotor/internal/motor"
)

// Session implements motor.Page; the assertion keeps the two honest.
var _ motor.Page = (*Session)(nil)

// nodeHandle is the session's opaque element reference.
type nodeHandle struct {
	id cdp.NodeID
}

// visibilityJS runs with the element bound to `this`.
const visibilityJS = `function() {
	if (!this.isConnected) {
		return false;
	}
	const style = window.getComputedStyle(this);
	if (style.display === 'none' || style.visibility === 'hidden' || style.opacity === '0') {
		return false;
	}
	const rect = this.getBoundingClientRect();
	return rect.width > 0 && rect.height > 0;
}`

// clickHoldDuration approximates a human press-release gap.
const clickHoldDuration = 45 * time.Millisecond

// QueryFirst returns a handle to the first match without waiting for
// it to appear; absence is a nil handle, not an error.
func (s *Session) QueryFirst(ctx context.Context, selector string) (motor.ElementHandle, error) {
	var nodes []*cdp.Node
	err := s.run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)))
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodeHandle{id: nodes[0].NodeID}, nil
}

// IsVisible reports whether the element currently paints.
func (s *Session) IsVisible(ctx context.Context, el motor.ElementHandle) (bool, error) {
	n, ok := el.(nodeHandle)
	if !ok {
		return false, fmt.Errorf("foreign element handle %T", el)
	}

	var visible bool
	err := s.run(ctx, chromedp.ActionFunc(func(cctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(n.id).Do(cctx)
		if err != nil {
			return err
		}
		res, exc, err := runtime.CallFunctionOn(visibilityJS).
			WithObjectID(obj.ObjectID).
			WithReturnByValue(true).
			Do(cctx)
		if err != nil {
			return err
		}
		if exc != nil {
			return exc
		}
		return jsoniter.Unmarshal(res.Value, &visible)
	}))
	if err != nil {
		return false, fmt.Errorf("visibility probe: %w", err)
	}
	return visible, nil
}

// BoundingBox returns the element's content box, or nil when the
// element is detached or has no paintable geometry.
func (s *Session) BoundingBox(ctx context.Context, el motor.ElementHandle) (*motor.Box, error) {
	n, ok := el.(nodeHandle)
	if !ok {
		return nil, fmt.Errorf("foreign element handle %T", el)
	}

	var box *motor.Box
	err := s.run(ctx, chromedp.ActionFunc(func(cctx context.Context) error {
		model, err := dom.GetBoxModel().WithNodeID(n.id).Do(cctx)
		if err != nil {
			// CDP answers "could not compute box model" for detached
			// or zero-size nodes; that is boxlessness, not failure.
			s.logger.Debug("box model unavailable", zap.Error(err))
			return nil
		}
		box = quadToBox(model.Content)
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("box probe: %w", err)
	}
	return box, nil
}

// quadToBox converts a CDP content quad [x0 y0 x1 y1 x2 y2 x3 y3] to
// an axis-aligned box.
func quadToBox(quad dom.Quad) *motor.Box {
	if len(quad) < 8 {
		return nil
	}
	minX, maxX := quad[0], quad[0]
	minY, maxY := quad[1], quad[1]
	for i := 2; i < 8; i += 2 {
		minX = min(minX, quad[i])
		maxX = max(maxX, quad[i])
		minY = min(minY, quad[i+1])
		maxY = max(maxY, quad[i+1])
	}
	if maxX <= minX || maxY <= minY {
		return nil
	}
	return &motor.Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// EvaluateInPage invokes a JavaScript function expression with the
// given arguments and returns the JSON-serialized result.
func (s *Session) EvaluateInPage(ctx context.Context, script string, args ...any) (json.RawMessage, error) {
	expr, err := callExpression(script, args)
	if err != nil {
		return nil, err
	}

	var raw []byte
	err = s.run(ctx, chromedp.Evaluate(expr, &raw,
		func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}))
	if err != nil {
		return nil, fmt.Errorf("page evaluation: %w", err)
	}
	if len(raw) == 0 {
		return json.RawMessage(`null`), nil
	}
	return json.RawMessage(raw), nil
}

// callExpression builds "(fn)(arg0, arg1)" with JSON-encoded args.
func callExpression(script string, args []any) (string, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		encoded, err := jsoniter.MarshalToString(arg)
		if err != nil {
			return "", fmt.Errorf("encoding evaluate argument %d: %w", i, err)
		}
		parts[i] = encoded
	}
	return fmt.Sprintf("(%s)(%s)", script, strings.Join(parts, ", ")), nil
}

// MoveAndClick moves the pointer to the coordinate and performs a full
// press/release cycle with a short human-scale hold.
func (s *Session) MoveAndClick(ctx context.Context, x, y float64) error {
	err := s.run(ctx, chromedp.ActionFunc(func(cctx context.Context) error {
		if err := input.DispatchMouseEvent(input.MouseMoved, x, y).Do(cctx); err != nil {
			return err
		}
		press := input.DispatchMouseEvent(input.MousePressed, x, y).
			WithButton(input.Left).
			WithButtons(1).
			WithClickCount(1)
		if err := press.Do(cctx); err != nil {
			return err
		}
		if err := chromedp.Sleep(clickHoldDuration).Do(cctx); err != nil {
			return err
		}
		release := input.DispatchMouseEvent(input.MouseReleased, x, y).
			WithButton(input.Left).
			WithClickCount(1)
		return release.Do(cctx)
	}))
	if err != nil {
		return fmt.Errorf("pointer click at (%.1f, %.1f): %w", x, y, err)
	}
	s.logger.Debug("pointer click dispatched", zap.Float64("x", x), zap.Float64("y", y))
	return nil
}

// WaitForSelector blocks until the selector is visible or the timeout
// elapses.
func (s *Session) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("waiting for %q: %w", selector, err)
	}
	return nil
}

// Sleep pauses the call chain, respecting context cancellation.
func (s *Session) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
