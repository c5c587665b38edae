// Package coords maps sticker positions between absolute pixels and
// viewport-relative ratios.
//
// A ratio expresses a position as a fraction of the available drag space on
// one axis, where available space is the viewport dimension minus the item
// size. Storing ratios lets a layout be rescaled proportionally when the
// viewport changes:
//
//	r := coords.ToRatio(100, 1000, 180)    // 100/820
//	x := coords.ToAbsolute(r, 2000, 180)   // r × 1820
//
// For a fixed (dimension, itemSize) pair the two functions are inverses on
// [0, dimension-itemSize]. Across different pairs they implement the resize
// rescaling.
package coords

import "github.com/matzehuels/stickerboard/pkg/geom"

// minDenominator is the smallest divisor used by ToRatio. Degenerate
// viewports (no room for a single item) would otherwise divide by zero or
// flip the sign of every ratio.
const minDenominator = 1.0

// Ratio is a position expressed as fractions of the available space on each
// axis. Values are nominally in [0, 1] but are not forced there: a drag
// committed outside the bounds keeps its out-of-range ratio until the next
// resize clamps the derived position.
type Ratio struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Available returns the drag space along one axis.
// It is negative when the item is larger than the viewport.
func Available(dimension, itemSize float64) float64 {
	return dimension - itemSize
}

// ToRatio converts an absolute coordinate into a ratio of the available space.
// The denominator is clamped to at least 1.
func ToRatio(absolute, dimension, itemSize float64) float64 {
	return absolute / max(Available(dimension, itemSize), minDenominator)
}

// ToAbsolute converts a ratio back into an absolute coordinate and clamps the
// result into [0, dimension-itemSize]. For a degenerate viewport the range
// collapses to 0.
func ToAbsolute(ratio, dimension, itemSize float64) float64 {
	avail := Available(dimension, itemSize)
	return geom.Clamp(ratio*avail, 0, max(avail, 0))
}

// Mapper applies ToRatio and ToAbsolute on both axes for one viewport and
// item size.
type Mapper struct {
	Viewport geom.Size
	ItemSize float64
}

// ToRatio converts a top-left position into a Ratio.
func (m Mapper) ToRatio(p geom.Point) Ratio {
	return Ratio{
		X: ToRatio(p.X, m.Viewport.Width, m.ItemSize),
		Y: ToRatio(p.Y, m.Viewport.Height, m.ItemSize),
	}
}

// ToAbsolute converts a Ratio into a clamped top-left position.
func (m Mapper) ToAbsolute(r Ratio) geom.Point {
	return geom.Point{
		X: ToAbsolute(r.X, m.Viewport.Width, m.ItemSize),
		Y: ToAbsolute(r.Y, m.Viewport.Height, m.ItemSize),
	}
}

// Bounds returns the largest valid top-left coordinate on each axis.
func (m Mapper) Bounds() geom.Size {
	return geom.Size{
		Width:  max(Available(m.Viewport.Width, m.ItemSize), 0),
		Height: max(Available(m.Viewport.Height, m.ItemSize), 0),
	}
}

// Contains reports whether p lies within Bounds.
func (m Mapper) Contains(p geom.Point) bool {
	b := m.Bounds()
	return p.X >= 0 && p.Y >= 0 && p.X <= b.Width && p.Y <= b.Height
}

// Degenerate reports whether an item does not fit on at least one axis.
func (m Mapper) Degenerate() bool {
	return Available(m.Viewport.Width, m.ItemSize) <= 0 ||
		Available(m.Viewport.Height, m.ItemSize) <= 0
}
