// Package placement scatters square items across a viewport so that no two
// accepted items are closer than a minimum center-to-center distance.
//
// The solver uses bounded random search rather than a packing: each call to
// [Solver.Next] samples uniform top-left candidates and rejects any whose
// center is within minDistance of an accepted center, giving up after
// MaxAttempts tries. Failure is returned as data (see [Result.Found]), never
// as a magic coordinate, and callers do not retry: an item that cannot be
// placed is simply left out.
//
// Worst-case cost of one call is O(MaxAttempts × len(accepted)).
//
//	rng := placement.NewRand(42)
//	s := placement.NewSolver(rng, nil)
//	placed := s.PlaceAll(geom.Size{Width: 1000, Height: 800}, 180, 198, 17)
package placement

import (
	"math/rand/v2"

	"github.com/matzehuels/stickerboard/pkg/geom"
)

// DefaultMaxAttempts is the default per-item sampling budget.
const DefaultMaxAttempts = 100

// Options configures a Solver.
type Options struct {
	// MaxAttempts is the number of candidates sampled per item before
	// giving up. Values <= 0 use DefaultMaxAttempts.
	MaxAttempts int
}

var defaultOpts = Options{
	MaxAttempts: DefaultMaxAttempts,
}

// Result is the outcome of one placement attempt.
type Result struct {
	// Position is the accepted top-left corner. It is meaningless unless
	// Found reports true.
	Position geom.Point
	// Attempts is the number of candidates sampled.
	Attempts int

	found bool
}

// Found reports whether a non-colliding position was found.
func (r Result) Found() bool { return r.found }

// Placed returns a successful Result.
func Placed(p geom.Point, attempts int) Result {
	return Result{Position: p, Attempts: attempts, found: true}
}

// NotFound returns the exhausted Result.
func NotFound(attempts int) Result {
	return Result{Attempts: attempts}
}

// Placement records an accepted position for the item at input index Index.
type Placement struct {
	Index    int
	Position geom.Point
}

// Solver samples candidate positions from its random source.
// A Solver is not safe for concurrent use.
type Solver struct {
	rng         *rand.Rand
	maxAttempts int
}

// NewRand returns a PCG-backed source. A zero seed picks a random one, so
// layouts are only reproducible when a seed is given.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// NewSolver creates a Solver drawing from rng. A nil rng uses NewRand(0);
// nil opts use the defaults.
func NewSolver(rng *rand.Rand, opts *Options) *Solver {
	if opts == nil {
		opts = &defaultOpts
	}
	if rng == nil {
		rng = NewRand(0)
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	return &Solver{rng: rng, maxAttempts: attempts}
}

// MaxAttempts returns the per-item sampling budget.
func (s *Solver) MaxAttempts() int { return s.maxAttempts }

// Next finds a top-left position for an item of side itemSize inside bounds
// whose center is at least minDistance from the center of every position in
// accepted. accepted holds top-left corners of items of the same size.
//
// When an item does not fit on an axis the sampling range on that axis
// collapses to 0.
func (s *Solver) Next(bounds geom.Size, itemSize, minDistance float64, accepted []geom.Point) Result {
	spanX := max(bounds.Width-itemSize, 0)
	spanY := max(bounds.Height-itemSize, 0)
	half := itemSize / 2

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		candidate := geom.Point{
			X: s.rng.Float64() * spanX,
			Y: s.rng.Float64() * spanY,
		}
		center := geom.Point{X: candidate.X + half, Y: candidate.Y + half}

		if !collides(center, half, minDistance, accepted) {
			return Placed(candidate, attempt)
		}
	}
	return NotFound(s.maxAttempts)
}

func collides(center geom.Point, half, minDistance float64, accepted []geom.Point) bool {
	for _, p := range accepted {
		if geom.Overlaps(center, geom.Point{X: p.X + half, Y: p.Y + half}, minDistance) {
			return true
		}
	}
	return false
}

// PlaceAll runs Next once for each of n items in input order against the
// growing set of accepted positions. Items that cannot be placed are
// skipped; the result may be shorter than n.
func (s *Solver) PlaceAll(bounds geom.Size, itemSize, minDistance float64, n int) []Placement {
	placed := make([]Placement, 0, n)
	accepted := make([]geom.Point, 0, n)
	for i := range n {
		res := s.Next(bounds, itemSize, minDistance, accepted)
		if !res.Found() {
			continue
		}
		accepted = append(accepted, res.Position)
		placed = append(placed, Placement{Index: i, Position: res.Position})
	}
	return placed
}
