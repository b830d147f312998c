// Filename: internal/motor/occlusion_test.go
package motor

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// coveredBy returns an evaluate hook reporting every probed point as
// painted over by the given element.
func coveredBy(tag string) func(string, []any) (json.RawMessage, error) {
	return func(script string, args []any) (json.RawMessage, error) {
		return json.RawMessage(`{"tag":"` + tag + `","id":"","classes":"overlay"}`), nil
	}
}

func TestTopElementAt_SwallowsProbeFailures(t *testing.T) {
	t.Parallel()

	page := newFakePage()
	page.evaluateFn = func(string, []any) (json.RawMessage, error) {
		return nil, errors.New("target crashed")
	}

	c := newTestController()
	assert.Nil(t, c.TopElementAt(context.Background(), page, "#target", 10, 10),
		"probe failure means no coverage information, never an error")
}

func TestTopElementAt_DecodesDescriptor(t *testing.T) {
	t.Parallel()

	page := newFakePage()
	page.evaluateFn = coveredBy("div")

	c := newTestController()
	desc := c.TopElementAt(context.Background(), page, "#target", 10, 10)
	require.NotNil(t, desc)
	assert.Equal(t, "div", desc.Tag)
	assert.Equal(t, "overlay", desc.Classes)
}

func TestTopElementAt_ForwardsTargetToTheProbe(t *testing.T) {
	t.Parallel()

	page := newFakePage()
	page.evaluateFn = func(script string, args []any) (json.RawMessage, error) {
		require.Len(t, args, 3)
		assert.Equal(t, 12.0, args[0])
		assert.Equal(t, 34.0, args[1])
		assert.Equal(t, "#target", args[2], "the probe must know the click target to exempt it")
		return json.RawMessage(`null`), nil
	}

	c := newTestController()
	assert.Nil(t, c.TopElementAt(context.Background(), page, "#target", 12, 34))
}

func TestSpiralSearch_BoundedByMaxAttempts(t *testing.T) {
	t.Parallel()

	page := newFakePage()
	page.evaluateFn = coveredBy("div")

	c := newTestController()
	res := c.SpiralSearch(context.Background(), page, "#pinned", 300, 300, SpiralOptions{MaxAttempts: 5})

	assert.False(t, res.Success)
	assert.Equal(t, ReasonSpiralFailed, res.Reason)
	assert.Equal(t, 5, res.Attempts)
	assert.Equal(t, 5, page.evalCalls, "every probe beyond the budget is one too many")
}

func TestSpiralSearch_StopsAtFirstUncoveredPoint(t *testing.T) {
	t.Parallel()

	page := newFakePage()
	page.evaluateFn = func(script string, args []any) (json.RawMessage, error) {
		if page.evalCalls < 3 {
			return json.RawMessage(`{"tag":"div","id":"","classes":""}`), nil
		}
		return json.RawMessage(`null`), nil
	}

	c := newTestController()
	res := c.SpiralSearch(context.Background(), page, "#edge", 300, 300, SpiralOptions{MaxAttempts: 10})

	require.True(t, res.Success)
	require.NotNil(t, res.Point)
	assert.Equal(t, 3, res.Attempts)
}

func TestSpiralSearch_ExpandsMonotonically(t *testing.T) {
	t.Parallel()

	const cx, cy = 500.0, 400.0
	var radii []float64

	page := newFakePage()
	page.evaluateFn = func(script string, args []any) (json.RawMessage, error) {
		x := args[0].(float64)
		y := args[1].(float64)
		radii = append(radii, math.Hypot(x-cx, y-cy))
		return json.RawMessage(`{"tag":"div","id":"","classes":""}`), nil
	}

	c := newTestController()
	c.SpiralSearch(context.Background(), page, "#center", cx, cy, SpiralOptions{MaxAttempts: 8})

	require.Len(t, radii, 8)
	for i := 1; i < len(radii); i++ {
		assert.Greater(t, radii[i], radii[i-1], "probe %d must sit further out than probe %d", i, i-1)
	}
}

func TestFindUncoveredArea_ProbesCenterFirst(t *testing.T) {
	t.Parallel()

	var first *Point
	page := newFakePage()
	page.evaluateFn = func(script string, args []any) (json.RawMessage, error) {
		if first == nil {
			first = &Point{X: args[0].(float64), Y: args[1].(float64)}
		}
		return json.RawMessage(`null`), nil
	}

	c := newTestController()
	box := Box{X: 100, Y: 100, Width: 50, Height: 50}
	res := c.FindUncoveredArea(context.Background(), page, "#target", box)

	require.True(t, res.Success)
	require.NotNil(t, first)
	assert.Equal(t, 125.0, first.X)
	assert.Equal(t, 125.0, first.Y)
	assert.Equal(t, 1, res.Attempts)
}

func TestFindUncoveredArea_AllCoveredFails(t *testing.T) {
	t.Parallel()

	page := newFakePage()
	page.evaluateFn = coveredBy("iframe")

	c := newTestController()
	res := c.FindUncoveredArea(context.Background(), page, "#target", Box{X: 0, Y: 0, Width: 100, Height: 100})

	assert.False(t, res.Success)
	assert.Equal(t, ReasonSpiralFailed, res.Reason)
}

func TestFindUncoveredArea_EmptyBoxFails(t *testing.T) {
	t.Parallel()

	page := newFakePage()
	c := newTestController()
	res := c.FindUncoveredArea(context.Background(), page, "#target", Box{})

	assert.False(t, res.Success)
	assert.Equal(t, ReasonNoBox, res.Reason)
	assert.Zero(t, page.evalCalls)
}
