// Filename: internal/motor/page.go
package motor

import (
	"context"
	"encoding/json"
	"time"
)

// ElementHandle is an opaque reference to a live DOM element. Only the
// Page implementation that produced it can interpret it; the engine
// merely carries it between calls.
type ElementHandle any

// Page defines the contract for the underlying browser automation
// layer (CDP, Playwright, a test double). It is the engine's only
// external boundary and is designed to be mocked during tests.
//
// The engine assumes exclusive use of a Page for the duration of one
// call chain but does not lock it; callers multiplexing automation
// tasks onto one page must serialize externally.
type Page interface {
	// QueryFirst returns a handle to the first element matching the
	// selector, or nil when nothing matches. An error indicates a
	// transport-level failure, not absence.
	QueryFirst(ctx context.Context, selector string) (ElementHandle, error)

	// IsVisible reports whether the element currently paints.
	IsVisible(ctx context.Context, el ElementHandle) (bool, error)

	// BoundingBox returns the element's viewport box, or nil when the
	// element is detached or has no paintable geometry.
	BoundingBox(ctx context.Context, el ElementHandle) (*Box, error)

	// EvaluateInPage runs a JavaScript function expression with the
	// given arguments and returns its JSON-serialized result.
	EvaluateInPage(ctx context.Context, script string, args ...any) (json.RawMessage, error)

	// MoveAndClick moves the pointer to the coordinate and performs a
	// full press/release cycle there.
	MoveAndClick(ctx context.Context, x, y float64) error

	// WaitForSelector blocks until the selector becomes visible or the
	// timeout elapses, returning an error in the latter case.
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error

	// Sleep pauses the call chain, respecting context cancellation.
	Sleep(ctx context.Context, d time.Duration) error
}
