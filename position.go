package fingerpaint

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
)

// Position is a point in canvas-local coordinates.
// Origin is the canvas's top-left corner, X grows right, Y grows down.
type Position struct {
	X, Y float64
}

// Pt is a convenience function to create a Position.
func Pt(x, y float64) Position {
	return Position{X: x, Y: y}
}

// FromPoint converts a gg.Point.
func FromPoint(p gg.Point) Position {
	return Position{X: p.X, Y: p.Y}
}

// Point converts p to a gg.Point.
func (p Position) Point() gg.Point {
	return gg.Pt(p.X, p.Y)
}

// Add returns the component-wise sum of p and q.
func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference p - q.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// Manhattan returns the L1 distance |p.X-q.X| + |p.Y-q.Y|.
func (p Position) Manhattan(q Position) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Position) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
