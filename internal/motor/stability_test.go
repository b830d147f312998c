// Filename: internal/motor/stability_test.go
package motor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitStable_NeverAppearingElementTimesOut(t *testing.T) {
	t.Parallel()

	page := newFakePage() // QueryFirst always returns nil
	c := newTestController()

	res := c.WaitStable(context.Background(), page, "#ghost", StabilityOptions{Timeout: 20 * time.Millisecond})

	assert.False(t, res.Success)
	assert.Equal(t, ReasonTimeout, res.Reason)
	assert.Nil(t, res.Box)
}

func TestWaitStable_OscillatingElementTimesOut(t *testing.T) {
	t.Parallel()

	page := newFakePage()
	page.queryFirstFn = func(string) (ElementHandle, error) {
		return &fakeElement{}, nil
	}
	// The box jumps 50px on every sample, never settling.
	page.boundingBoxFn = func(ElementHandle) (*Box, error) {
		y := float64(page.boxCalls * 50)
		return &Box{X: 10, Y: y, Width: 40, Height: 20}, nil
	}

	c := newTestController()
	res := c.WaitStable(context.Background(), page, "#drifter", StabilityOptions{Timeout: 20 * time.Millisecond})

	assert.False(t, res.Success)
	assert.Equal(t, ReasonTimeout, res.Reason)
	assert.GreaterOrEqual(t, page.boxCalls, 2, "oscillation can only be observed across samples")
}

func TestWaitStable_TwoConsecutiveInThresholdSamplesSucceed(t *testing.T) {
	t.Parallel()

	page := newFakePage()
	page.queryFirstFn = func(string) (ElementHandle, error) {
		return &fakeElement{}, nil
	}
	page.boundingBoxFn = func(ElementHandle) (*Box, error) {
		return &Box{X: 100, Y: 200, Width: 50, Height: 30}, nil
	}

	c := newTestController()
	res := c.WaitStable(context.Background(), page, "#steady", StabilityOptions{})

	require.True(t, res.Success)
	require.NotNil(t, res.Box)
	assert.Equal(t, 100.0, res.Box.X)
	assert.Equal(t, 2, page.boxCalls, "stability needs exactly two in-threshold samples")
}

func TestWaitStable_SettlesAfterInitialDrift(t *testing.T) {
	t.Parallel()

	// Three drifting samples, then the layout settles.
	boxes := []Box{
		{X: 0, Y: 0, Width: 50, Height: 30},
		{X: 0, Y: 120, Width: 50, Height: 30},
		{X: 0, Y: 240, Width: 50, Height: 30},
		{X: 0, Y: 300, Width: 50, Height: 30},
		{X: 0, Y: 301, Width: 50, Height: 30},
	}
	page := newFakePage()
	page.queryFirstFn = func(string) (ElementHandle, error) {
		return &fakeElement{}, nil
	}
	page.boundingBoxFn = func(ElementHandle) (*Box, error) {
		i := page.boxCalls - 1
		if i >= len(boxes) {
			i = len(boxes) - 1
		}
		b := boxes[i]
		return &b, nil
	}

	c := newTestController()
	res := c.WaitStable(context.Background(), page, "#settling", StabilityOptions{})

	require.True(t, res.Success)
	assert.Equal(t, 301.0, res.Box.Y, "the returned box must be the last sample")
}

func TestWaitStable_DisappearanceResetsTheSamplePair(t *testing.T) {
	t.Parallel()

	// Sample, vanish, then reappear at the same spot: the pre-vanish
	// sample must not pair with the post-vanish one.
	page := newFakePage()
	page.queryFirstFn = func(string) (ElementHandle, error) {
		if page.queryCalls == 2 {
			return nil, nil
		}
		return &fakeElement{}, nil
	}
	page.boundingBoxFn = func(ElementHandle) (*Box, error) {
		return &Box{X: 5, Y: 5, Width: 10, Height: 10}, nil
	}

	c := newTestController()
	res := c.WaitStable(context.Background(), page, "#flicker", StabilityOptions{})

	require.True(t, res.Success)
	assert.GreaterOrEqual(t, page.queryCalls, 4, "the pair must restart after the element vanished")
}

func TestWaitStable_CanceledContextReportsTimeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page := newFakePage()
	c := newTestController()
	res := c.WaitStable(ctx, page, "#whatever", StabilityOptions{Timeout: time.Second})

	assert.False(t, res.Success)
	assert.Equal(t, ReasonTimeout, res.Reason)
	assert.Zero(t, page.queryCalls, "a dead context must not reach the page")
}
