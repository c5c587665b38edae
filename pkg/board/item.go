package board

import (
	"fmt"

	"github.com/matzehuels/stickerboard/pkg/coords"
	"github.com/matzehuels/stickerboard/pkg/geom"
)

// Item is a placed sticker.
type Item struct {
	// ID is assigned at creation from the input index and never changes.
	ID string
	// Position is the absolute top-left corner in pixels.
	Position geom.Point
	// Ratio is Position relative to the available space at the last commit.
	Ratio coords.Ratio
	// Rotation is the display angle in degrees.
	Rotation float64
	// Order is the creation order among placed items, used for staggering.
	Order int
	// Asset names the sticker image.
	Asset string
}

// ItemID returns the identifier of the item created from input index i.
func ItemID(i int) string {
	return fmt.Sprintf("sticker-%d", i)
}

// View returns the renderer-facing projection of it.
func (it Item) View() ItemView {
	return ItemView{
		ID:       it.ID,
		X:        it.Position.X,
		Y:        it.Position.Y,
		Rotation: it.Rotation,
		Order:    it.Order,
		Asset:    it.Asset,
	}
}

// ItemView is what a renderer needs to draw one sticker.
type ItemView struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Order    int     `json:"order"`
	Asset    string  `json:"asset,omitempty"`
}

// Snapshot is a consistent copy of a board's state.
type Snapshot struct {
	SessionID string     `json:"session_id"`
	Phase     Phase      `json:"phase"`
	Viewport  geom.Size  `json:"viewport"`
	ItemSize  float64    `json:"item_size"`
	Items     []ItemView `json:"items"`
}

// Phase is a board's lifecycle state.
type Phase int

const (
	// PhaseUninitialized waits for the asset-readiness signal.
	PhaseUninitialized Phase = iota
	// PhaseInitializing runs the placement solver.
	PhaseInitializing
	// PhaseReady handles resize and drag events.
	PhaseReady
	// PhaseClosed ignores every event.
	PhaseClosed
)

var phaseNames = [...]string{
	PhaseUninitialized: "uninitialized",
	PhaseInitializing:  "initializing",
	PhaseReady:         "ready",
	PhaseClosed:        "closed",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}
