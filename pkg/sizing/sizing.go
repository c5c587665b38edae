// Package sizing derives the uniform sticker size from the viewport width.
//
// The size is a pure step function of width defined by a [Table] of
// breakpoints. The default table follows common responsive layouts:
//
//	width < 768   → 100px (mobile)
//	width < 1024  → 140px (tablet)
//	otherwise     → 180px (desktop)
//
// Tables must be monotonic: thresholds strictly ascending and sizes
// non-decreasing, so a wider viewport never yields a smaller sticker.
package sizing

import (
	"fmt"

	"github.com/matzehuels/stickerboard/pkg/errors"
)

// DefaultMinDistanceFactor is the headroom applied to the item size when
// deriving the minimum center-to-center distance (~10% buffer).
const DefaultMinDistanceFactor = 1.1

// Func maps a viewport width to an item size.
type Func func(width float64) float64

// Breakpoint applies Size to every width strictly below Below.
type Breakpoint struct {
	Below float64 `toml:"below" json:"below"`
	Size  float64 `toml:"size" json:"size"`
}

// Table is an ordered list of breakpoints plus the size used above the last one.
type Table struct {
	Breakpoints []Breakpoint `toml:"breakpoints" json:"breakpoints"`
	Default     float64      `toml:"default" json:"default"`
}

// DefaultTable is the mobile/tablet/desktop breakpoint table.
var DefaultTable = Table{
	Breakpoints: []Breakpoint{
		{Below: 768, Size: 100},
		{Below: 1024, Size: 140},
	},
	Default: 180,
}

// ItemSize returns the item size for width.
func (t Table) ItemSize(width float64) float64 {
	for _, bp := range t.Breakpoints {
		if width < bp.Below {
			return bp.Size
		}
	}
	return t.Default
}

// Func returns t.ItemSize as a Func.
func (t Table) Func() Func {
	return t.ItemSize
}

// Validate checks that the table describes a monotonic non-decreasing step
// function with positive sizes.
func (t Table) Validate() error {
	if t.Default <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "default item size must be positive, got %v", t.Default)
	}
	prevBelow, prevSize := 0.0, 0.0
	for i, bp := range t.Breakpoints {
		where := fmt.Sprintf("breakpoint %d", i)
		if bp.Size <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: size must be positive, got %v", where, bp.Size)
		}
		if bp.Below <= prevBelow {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: thresholds must be strictly ascending (%v after %v)", where, bp.Below, prevBelow)
		}
		if bp.Size < prevSize {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: size %v is smaller than the previous %v", where, bp.Size, prevSize)
		}
		prevBelow, prevSize = bp.Below, bp.Size
	}
	if t.Default < prevSize {
		return errors.New(errors.ErrCodeInvalidConfig, "default size %v is smaller than the last breakpoint size %v", t.Default, prevSize)
	}
	return nil
}

// ItemSize returns the item size for width using DefaultTable.
func ItemSize(width float64) float64 {
	return DefaultTable.ItemSize(width)
}

// MinDistance returns the minimum center-to-center distance for itemSize.
// Factors below 1 are raised to 1 so that two accepted items never overlap.
func MinDistance(itemSize, factor float64) float64 {
	return itemSize * max(factor, 1)
}
