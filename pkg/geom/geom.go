// Package geom provides the small amount of planar geometry the sticker
// engine needs: points, sizes, sticker centers and a squared-distance
// overlap test.
//
// All coordinates are pixels with the origin at the top-left corner of the
// viewport. A sticker is a square of side itemSize anchored at its top-left
// corner; for spacing purposes it is treated as a point at its center.
package geom

// Point is a position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether either dimension is non-positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Center returns the center of a square item of side itemSize whose
// top-left corner is at topLeft.
func Center(topLeft Point, itemSize float64) Point {
	half := itemSize / 2
	return Point{X: topLeft.X + half, Y: topLeft.Y + half}
}

// DistanceSquared returns the squared Euclidean distance between a and b.
func DistanceSquared(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Overlaps reports whether a and b are strictly closer than minDistance.
// It compares squared distances and never takes a square root; the placement
// solver calls it up to items × attempts times.
func Overlaps(a, b Point, minDistance float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx+dy*dy < minDistance*minDistance
}

// Clamp restricts v to [lo, hi]. When hi < lo the range collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
