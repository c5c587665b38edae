package geom

import (
	"math"
	"testing"
)

func TestCenter(t *testing.T) {
	tests := []struct {
		name    string
		topLeft Point
		size    float64
		want    Point
	}{
		{"origin", Point{0, 0}, 180, Point{90, 90}},
		{"offset", Point{100, 40}, 100, Point{150, 90}},
		{"zero size", Point{7, 9}, 0, Point{7, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Center(tt.topLeft, tt.size); got != tt.want {
				t.Errorf("Center(%v, %v) = %v, want %v", tt.topLeft, tt.size, got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		min  float64
		want bool
	}{
		{"same point", Point{10, 10}, Point{10, 10}, 1, true},
		{"well apart", Point{0, 0}, Point{300, 0}, 200, false},
		{"exactly at distance", Point{0, 0}, Point{3, 4}, 5, false},
		{"just inside", Point{0, 0}, Point{3, 4}, 5.0001, true},
		{"diagonal apart", Point{0, 0}, Point{150, 150}, 200, false},
		{"diagonal close", Point{0, 0}, Point{100, 100}, 200, true},
		{"zero distance threshold", Point{1, 1}, Point{1, 1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b, tt.min); got != tt.want {
				t.Errorf("Overlaps(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.min, got, tt.want)
			}
			// Symmetric
			if got := Overlaps(tt.b, tt.a, tt.min); got != tt.want {
				t.Errorf("Overlaps(%v, %v, %v) = %v, want %v", tt.b, tt.a, tt.min, got, tt.want)
			}
		})
	}
}

func TestOverlapsMatchesEuclidean(t *testing.T) {
	pts := []Point{{0, 0}, {12.5, 3}, {-40, 22}, {199, 1}, {120, 160}}
	for _, a := range pts {
		for _, b := range pts {
			d := math.Sqrt(DistanceSquared(a, b))
			for _, m := range []float64{1, 50, 110, 198, 200} {
				if got, want := Overlaps(a, b, m), d < m; got != want {
					t.Errorf("Overlaps(%v, %v, %v) = %v, euclidean says %v", a, b, m, got, want)
				}
			}
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{12, 0, 10, 10},
		{5, 0, 0, 0},
		{5, 0, -20, 0}, // collapsed range
	}

	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestSizeEmpty(t *testing.T) {
	if (Size{Width: 800, Height: 600}).Empty() {
		t.Error("800x600 should not be empty")
	}
	if !(Size{Width: 0, Height: 600}).Empty() {
		t.Error("zero width should be empty")
	}
	if !(Size{Width: 800, Height: -1}).Empty() {
		t.Error("negative height should be empty")
	}
}
