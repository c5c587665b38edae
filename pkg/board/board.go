package board

import (
	"io"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stickerboard/pkg/coords"
	"github.com/matzehuels/stickerboard/pkg/debounce"
	"github.com/matzehuels/stickerboard/pkg/errors"
	"github.com/matzehuels/stickerboard/pkg/geom"
	"github.com/matzehuels/stickerboard/pkg/observability"
	"github.com/matzehuels/stickerboard/pkg/placement"
	"github.com/matzehuels/stickerboard/pkg/sizing"
)

// Default option values.
const (
	DefaultInitialRotation = 15.0
	DefaultDragJitter      = 5.0
)

// NoRotation disables InitialRotation or DragJitter. Zero means the default.
const NoRotation = -1.0

// Options configures a Session. The zero value is usable.
type Options struct {
	// Sizer maps viewport width to item size. Defaults to sizing.ItemSize.
	Sizer sizing.Func
	// MinDistanceFactor scales item size into the minimum center distance.
	// Defaults to sizing.DefaultMinDistanceFactor.
	MinDistanceFactor float64
	// MaxAttempts is the per-item placement budget.
	MaxAttempts int
	// Seed makes placement and rotations reproducible. Zero is random.
	Seed uint64
	// InitialRotation bounds the initial rotation to ±InitialRotation degrees.
	// Defaults to DefaultInitialRotation; NoRotation places every sticker
	// upright.
	InitialRotation float64
	// DragJitter bounds the rotation change on each drag commit. Defaults to
	// DefaultDragJitter; NoRotation disables the jitter.
	DragJitter float64
	// Debounce is the resize coalescing window.
	Debounce time.Duration
	// Logger receives debug output. Defaults to a discarding logger.
	Logger *log.Logger
	// OnChange is called with a fresh snapshot after initialization, every
	// applied viewport change and every drag commit. It runs without the
	// session lock held.
	OnChange func(Snapshot)
}

func (o *Options) setDefaults() {
	if o.Sizer == nil {
		o.Sizer = sizing.ItemSize
	}
	if o.MinDistanceFactor <= 0 {
		o.MinDistanceFactor = sizing.DefaultMinDistanceFactor
	}
	if o.InitialRotation == 0 {
		o.InitialRotation = DefaultInitialRotation
	}
	if o.DragJitter == 0 {
		o.DragJitter = DefaultDragJitter
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = placement.DefaultMaxAttempts
	}
	if o.Debounce <= 0 {
		o.Debounce = debounce.DefaultWindow
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// DefaultOptions returns Options with every default filled in.
func DefaultOptions() Options {
	var o Options
	o.setDefaults()
	return o
}

// Session owns the stickers of one view. It is created when the view mounts
// and closed when it unmounts.
//
// All mutations are serialized: debounced resizes fire on timer goroutines
// and take the same lock as direct calls, so no reader ever observes new
// dimensions with old positions.
type Session struct {
	id       string
	opts     Options
	rng      *rand.Rand
	debounce *debounce.Debouncer

	mu       sync.Mutex
	phase    Phase
	viewport geom.Size
	itemSize float64
	items    []Item
	index    map[string]int
}

// New creates an uninitialized Session.
func New(opts Options) *Session {
	opts.setDefaults()
	return &Session{
		id:       uuid.NewString(),
		opts:     opts,
		rng:      placement.NewRand(opts.Seed),
		debounce: debounce.New(opts.Debounce),
		index:    make(map[string]int),
	}
}

// ID returns the session handle.
func (s *Session) ID() string { return s.id }

// Initialize places one item per asset against viewport. It is the response
// to the asset-readiness signal and may be called once.
//
// Items the solver cannot place are left out, so the returned count may be
// smaller than len(assets). This is expected on small viewports and is
// reported at debug level only.
func (s *Session) Initialize(viewport geom.Size, assets []string) (int, error) {
	if err := errors.ValidateViewport(viewport.Width, viewport.Height); err != nil {
		return 0, err
	}

	s.mu.Lock()
	if s.phase != PhaseUninitialized {
		phase := s.phase
		s.mu.Unlock()
		return 0, errors.New(errors.ErrCodeInvalidState, "cannot initialize a %s board", phase)
	}
	s.phase = PhaseInitializing
	start := time.Now()

	s.viewport = viewport
	s.itemSize = s.opts.Sizer(viewport.Width)
	var exhausted []exhaustion
	s.items, exhausted = s.place(assets)
	for i, it := range s.items {
		s.index[it.ID] = i
	}
	s.phase = PhaseReady

	placed := len(s.items)
	elapsed := time.Since(start)
	s.opts.Logger.Debug("initialized board",
		"session", s.id, "requested", len(assets), "placed", placed,
		"viewport", viewport, "item_size", s.itemSize, "elapsed", elapsed)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	for _, ex := range exhausted {
		observability.Board().OnPlacementExhausted(s.id, ex.index, ex.attempts)
	}
	observability.Board().OnInitialized(s.id, len(assets), placed, elapsed)
	s.notify(snap)
	return placed, nil
}

// exhaustion records a sticker the solver found no room for.
type exhaustion struct {
	index    int
	attempts int
}

// place runs the solver once per asset in input order. s.mu must be held.
func (s *Session) place(assets []string) ([]Item, []exhaustion) {
	solver := placement.NewSolver(s.rng, &placement.Options{MaxAttempts: s.opts.MaxAttempts})
	minDistance := sizing.MinDistance(s.itemSize, s.opts.MinDistanceFactor)
	mapper := s.mapperLocked()

	items := make([]Item, 0, len(assets))
	accepted := make([]geom.Point, 0, len(assets))
	var exhausted []exhaustion
	for i, asset := range assets {
		res := solver.Next(s.viewport, s.itemSize, minDistance, accepted)
		if !res.Found() {
			s.opts.Logger.Debug("placement exhausted", "session", s.id, "index", i, "attempts", res.Attempts)
			exhausted = append(exhausted, exhaustion{index: i, attempts: res.Attempts})
			continue
		}
		accepted = append(accepted, res.Position)
		items = append(items, Item{
			ID:       ItemID(i),
			Position: res.Position,
			Ratio:    mapper.ToRatio(res.Position),
			Rotation: s.jitter(s.opts.InitialRotation),
			Order:    len(items),
			Asset:    asset,
		})
	}
	return items, exhausted
}

// jitter returns a uniform value in [-bound, bound), or 0 for a non-positive
// bound. It draws from the source either way so that disabling rotation does
// not move any sticker.
func (s *Session) jitter(bound float64) float64 {
	r := s.rng.Float64()
	if bound <= 0 {
		return 0
	}
	return (r*2 - 1) * bound
}

func (s *Session) mapperLocked() coords.Mapper {
	return coords.Mapper{Viewport: s.viewport, ItemSize: s.itemSize}
}

// OnViewportChange applies a new viewport and item size and recomputes every
// item's position from its ratio, clamped into the new bounds. The new
// dimensions and the recomputed positions are applied as one transition.
//
// Before initialization only the dimensions are recorded. After Close the
// call does nothing.
func (s *Session) OnViewportChange(width, height, itemSize float64) {
	s.mu.Lock()
	if s.phase == PhaseClosed {
		s.mu.Unlock()
		return
	}

	s.viewport = geom.Size{Width: width, Height: height}
	s.itemSize = itemSize
	if s.phase != PhaseReady {
		s.mu.Unlock()
		return
	}

	mapper := s.mapperLocked()
	for i := range s.items {
		s.items[i].Position = mapper.ToAbsolute(s.items[i].Ratio)
	}

	s.opts.Logger.Debug("viewport changed",
		"session", s.id, "width", width, "height", height, "item_size", itemSize)
	items := len(s.items)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	observability.Board().OnViewportChange(s.id, width, height, itemSize, items)
	s.notify(snap)
}

// ScheduleResize records a resize notification. Bursts are coalesced: only
// the last call within the debounce window is applied, with the item size
// derived from the new width.
func (s *Session) ScheduleResize(width, height float64) {
	s.debounce.Trigger(func() {
		s.OnViewportChange(width, height, s.opts.Sizer(width))
	})
}

// FlushResize applies a pending scheduled resize immediately and reports
// whether there was one.
func (s *Session) FlushResize() bool {
	return s.debounce.Flush()
}

// ResizePending reports whether a scheduled resize has not been applied yet.
func (s *Session) ResizePending() bool {
	return s.debounce.Pending()
}

// OnDragCommitted records the final position of a drag. The position is
// stored as supplied, without clamping; its ratio is recomputed against the
// current viewport and the item's rotation is nudged by up to ±DragJitter.
//
// Unknown ids are ignored and reported as false: a drag may legitimately
// complete for an item the board no longer tracks.
func (s *Session) OnDragCommitted(id string, x, y float64) bool {
	s.mu.Lock()
	i, ok := s.index[id]
	if s.phase != PhaseReady || !ok {
		s.mu.Unlock()
		observability.Board().OnDragCommitted(s.id, id, false)
		return false
	}

	p := geom.Point{X: x, Y: y}
	it := &s.items[i]
	it.Position = p
	it.Ratio = s.mapperLocked().ToRatio(p)
	it.Rotation += s.jitter(s.opts.DragJitter)

	s.opts.Logger.Debug("drag committed", "session", s.id, "item", id, "x", x, "y", y)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	observability.Board().OnDragCommitted(s.id, id, true)
	s.notify(snap)
	return true
}

// Close tears the session down. Pending debounced work is cancelled and
// every later event is ignored. Close is idempotent.
func (s *Session) Close() {
	s.debounce.Stop()

	s.mu.Lock()
	if s.phase == PhaseClosed {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseClosed
	s.mu.Unlock()

	observability.Board().OnClosed(s.id)
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Viewport returns the current viewport.
func (s *Session) Viewport() geom.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// ItemSize returns the current uniform item size.
func (s *Session) ItemSize() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemSize
}

// Items returns a copy of the items in z order.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Item returns the item with the given id.
func (s *Session) Item(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	views := make([]ItemView, len(s.items))
	for i, it := range s.items {
		views[i] = it.View()
	}
	return Snapshot{
		SessionID: s.id,
		Phase:     s.phase,
		Viewport:  s.viewport,
		ItemSize:  s.itemSize,
		Items:     views,
	}
}

func (s *Session) notify(snap Snapshot) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(snap)
	}
}
