package coords

import (
	"math"
	"testing"

	"github.com/matzehuels/stickerboard/pkg/geom"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*max(1, math.Abs(a), math.Abs(b))
}

func TestToRatio(t *testing.T) {
	tests := []struct {
		name                 string
		abs, dim, size, want float64
	}{
		{"origin", 0, 1000, 180, 0},
		{"far edge", 820, 1000, 180, 1},
		{"middle", 410, 1000, 180, 0.5},
		{"scenario B", 100, 1000, 180, 100.0 / 820.0},
		{"degenerate clamps denominator", 50, 100, 180, 50},
		{"exactly full", 0, 180, 180, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRatio(tt.abs, tt.dim, tt.size); !approx(got, tt.want) {
				t.Errorf("ToRatio(%v, %v, %v) = %v, want %v", tt.abs, tt.dim, tt.size, got, tt.want)
			}
		})
	}
}

func TestToAbsolute(t *testing.T) {
	tests := []struct {
		name                   string
		ratio, dim, size, want float64
	}{
		{"half", 0.5, 1000, 180, 410},
		{"negative clamps to zero", -0.2, 1000, 180, 0},
		{"overflow clamps to edge", 1.3, 1000, 180, 820},
		{"degenerate collapses", 0.7, 100, 180, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToAbsolute(tt.ratio, tt.dim, tt.size); !approx(got, tt.want) {
				t.Errorf("ToAbsolute(%v, %v, %v) = %v, want %v", tt.ratio, tt.dim, tt.size, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	pairs := []struct{ dim, size float64 }{
		{1000, 180},
		{800, 180},
		{767, 100},
		{181, 180},
		{4096, 140},
	}

	for _, p := range pairs {
		avail := Available(p.dim, p.size)
		for i := 0; i <= 50; i++ {
			v := avail * float64(i) / 50
			if got := ToAbsolute(ToRatio(v, p.dim, p.size), p.dim, p.size); !approx(got, v) {
				t.Errorf("round trip (%v, %v) of %v = %v", p.dim, p.size, v, got)
			}
		}
	}
}

func TestResizeStability(t *testing.T) {
	sizes := []struct{ w, h, s float64 }{
		{1000, 800, 180},
		{2000, 800, 180},
		{640, 480, 100},
		{1023, 1023, 140},
	}
	for _, sz := range sizes {
		m := Mapper{Viewport: geom.Size{Width: sz.w, Height: sz.h}, ItemSize: sz.s}
		got := m.ToAbsolute(Ratio{X: 0.5, Y: 0.5})
		want := geom.Point{X: (sz.w - sz.s) / 2, Y: (sz.h - sz.s) / 2}
		if got != want {
			t.Errorf("%vx%v size %v: ToAbsolute(0.5, 0.5) = %v, want %v", sz.w, sz.h, sz.s, got, want)
		}
	}
}

func TestMapperRescalesSharedDenominator(t *testing.T) {
	before := Mapper{Viewport: geom.Size{Width: 1000, Height: 800}, ItemSize: 180}
	r := before.ToRatio(geom.Point{X: 100, Y: 100})
	if !approx(r.X, 100.0/820) || !approx(r.Y, 100.0/620) {
		t.Fatalf("ToRatio = %+v", r)
	}

	// A ratio taken against the width denominator on both axes.
	r = Ratio{X: 100.0 / 820, Y: 100.0 / 820}
	after := Mapper{Viewport: geom.Size{Width: 2000, Height: 800}, ItemSize: 180}
	p := after.ToAbsolute(r)
	if math.Abs(p.X-221.95) > 0.01 {
		t.Errorf("X = %v, want ~221.95", p.X)
	}
	if math.Abs(p.Y-75.61) > 0.01 {
		t.Errorf("Y = %v, want ~75.61", p.Y)
	}
}

func TestMapperBounds(t *testing.T) {
	m := Mapper{Viewport: geom.Size{Width: 1000, Height: 800}, ItemSize: 180}
	if got := m.Bounds(); got != (geom.Size{Width: 820, Height: 620}) {
		t.Errorf("Bounds() = %v", got)
	}
	if m.Degenerate() {
		t.Error("1000x800 should not be degenerate")
	}
	if !m.Contains(geom.Point{X: 820, Y: 0}) {
		t.Error("edge should be contained")
	}
	if m.Contains(geom.Point{X: -1, Y: 0}) {
		t.Error("negative x should not be contained")
	}

	small := Mapper{Viewport: geom.Size{Width: 150, Height: 800}, ItemSize: 180}
	if !small.Degenerate() {
		t.Error("150 wide viewport with 180 items should be degenerate")
	}
	if got := small.Bounds(); got.Width != 0 {
		t.Errorf("degenerate Bounds().Width = %v, want 0", got.Width)
	}
}
