// Filename: internal/motor/types.go
package motor

// Point is a coordinate pair in CSS viewport pixels.
type Point struct {
	X float64
	Y float64
}

// Box is a bounding-box sample taken at a single instant. Boxes are
// ephemeral: a reflowing page invalidates them at any time.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Center returns the geometric center of the box.
func (b Box) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Empty reports whether the box has no paintable area.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Reason classifies why an operation produced a negative result.
// Expected negatives travel as reasons, not errors.
type Reason string

const (
	ReasonTimeout      Reason = "timeout"
	ReasonSpiralFailed Reason = "spiral_failed"
	ReasonNoElement    Reason = "no_element"
	ReasonNoBox        Reason = "no_box"
	ReasonNotStable    Reason = "not_stable"
)

// Fallback is one alternative selector in a chain, annotated with the
// condition under which it tends to match when the primary does not.
type Fallback struct {
	Selector string
	Reason   string
}

// SelectorChain is a primary selector plus an ordered fallback list.
type SelectorChain struct {
	Primary   string
	Fallbacks []Fallback
}

// MatchResult is the outcome of resolving a chain against the live
// page. A nil Element means nothing visible matched; in that case
// Reason is always empty.
type MatchResult struct {
	Selector     string
	Element      ElementHandle
	UsedFallback bool
	Reason       string
}

// StabilityResult is the outcome of waiting for an element to stop
// moving. Box is set only on success.
type StabilityResult struct {
	Success bool
	Box     *Box
	Reason  Reason
}

// RecoveryResult is the outcome of a geometric search for an
// unoccluded point. Attempts counts probes actually issued.
type RecoveryResult struct {
	Success  bool
	Point    *Point
	Attempts int
	Reason   Reason
}

// ScrollResult is the outcome of repositioning an element toward the
// preferred viewport band. Y is the vertical delta applied.
type ScrollResult struct {
	Success bool
	Y       float64
	Reason  Reason
}

// ClickResult is the outcome of an orchestrated click.
type ClickResult struct {
	Success bool
	Reason  Reason
}

// VerifyResult extends ClickResult with the post-click confirmation
// signal. Verified is meaningful only when Success is true.
type VerifyResult struct {
	ClickResult
	Verified bool
}
