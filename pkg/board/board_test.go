package board

import (
	"encoding/json"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/stickerboard/pkg/errors"
	"github.com/matzehuels/stickerboard/pkg/geom"
	"github.com/matzehuels/stickerboard/pkg/observability"
)

const tolerance = 1e-9

func fixedSize(size float64) func(float64) float64 {
	return func(float64) float64 { return size }
}

func assets(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = ItemID(i) + ".png"
	}
	return out
}

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	s := New(opts)
	t.Cleanup(s.Close)
	return s
}

func assertInBounds(t *testing.T, s *Session) {
	t.Helper()
	vp, size := s.Viewport(), s.ItemSize()
	maxX, maxY := max(vp.Width-size, 0), max(vp.Height-size, 0)
	for _, it := range s.Items() {
		if it.Position.X < -tolerance || it.Position.X > maxX+tolerance ||
			it.Position.Y < -tolerance || it.Position.Y > maxY+tolerance {
			t.Errorf("%s at %v outside [0,%v]x[0,%v]", it.ID, it.Position, maxX, maxY)
		}
	}
}

func TestInitializeThreeItems(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		s := newTestSession(t, Options{
			Seed:              seed,
			Sizer:             fixedSize(180),
			MinDistanceFactor: 200.0 / 180.0,
		})

		placed, err := s.Initialize(geom.Size{Width: 1000, Height: 800}, assets(3))
		if err != nil {
			t.Fatalf("Initialize() error: %v", err)
		}
		if placed != 3 {
			t.Errorf("seed %d: placed %d of 3", seed, placed)
		}

		items := s.Items()
		for i := range items {
			for j := i + 1; j < len(items); j++ {
				a := geom.Center(items[i].Position, 180)
				b := geom.Center(items[j].Position, 180)
				if d := math.Sqrt(geom.DistanceSquared(a, b)); d < 200-tolerance {
					t.Errorf("seed %d: %s and %s are %.2f apart", seed, items[i].ID, items[j].ID, d)
				}
			}
		}
		assertInBounds(t, s)
	}
}

func TestInitializeRecordsConsistentRatios(t *testing.T) {
	s := newTestSession(t, Options{})
	if _, err := s.Initialize(geom.Size{Width: 1280, Height: 720}, assets(8)); err != nil {
		t.Fatal(err)
	}
	if got := s.ItemSize(); got != 180 {
		t.Fatalf("ItemSize() = %v, want 180 for a 1280 wide viewport", got)
	}

	for _, it := range s.Items() {
		if x := it.Ratio.X * (1280 - 180); math.Abs(x-it.Position.X) > 1e-6 {
			t.Errorf("%s: ratio.x × avail = %v, position.x = %v", it.ID, x, it.Position.X)
		}
		if y := it.Ratio.Y * (720 - 180); math.Abs(y-it.Position.Y) > 1e-6 {
			t.Errorf("%s: ratio.y × avail = %v, position.y = %v", it.ID, y, it.Position.Y)
		}
	}
}

func TestInitializeIDsAndOrder(t *testing.T) {
	s := newTestSession(t, Options{})
	if _, err := s.Initialize(geom.Size{Width: 320, Height: 240}, assets(17)); err != nil {
		t.Fatal(err)
	}

	items := s.Items()
	if len(items) == 0 || len(items) >= 17 {
		t.Fatalf("placed %d of 17 on a small viewport, want a strict non-empty subset", len(items))
	}

	seen := map[string]bool{}
	for i, it := range items {
		if seen[it.ID] {
			t.Errorf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
		if it.Order != i {
			t.Errorf("%s: Order = %d, want %d", it.ID, it.Order, i)
		}
		if it.Asset != it.ID+".png" {
			t.Errorf("%s: Asset = %q, should match its input index", it.ID, it.Asset)
		}
		if math.Abs(it.Rotation) > DefaultInitialRotation {
			// Zero-value options leave stickers upright.
			t.Errorf("%s: rotation %v out of range", it.ID, it.Rotation)
		}
	}
}

func TestInitialRotationRange(t *testing.T) {
	s := newTestSession(t, Options{InitialRotation: 15})
	if _, err := s.Initialize(geom.Size{Width: 2560, Height: 1440}, assets(17)); err != nil {
		t.Fatal(err)
	}
	for _, it := range s.Items() {
		if it.Rotation < -15 || it.Rotation > 15 {
			t.Errorf("%s: rotation %v outside ±15", it.ID, it.Rotation)
		}
	}
}

func TestInitializeErrors(t *testing.T) {
	s := newTestSession(t, Options{})

	_, err := s.Initialize(geom.Size{Width: 0, Height: 600}, assets(3))
	if !errors.Is(err, errors.ErrCodeInvalidViewport) {
		t.Errorf("zero width: error = %v, want %s", err, errors.ErrCodeInvalidViewport)
	}
	if s.Phase() != PhaseUninitialized {
		t.Errorf("Phase() = %v after rejected Initialize", s.Phase())
	}

	if _, err := s.Initialize(geom.Size{Width: 800, Height: 600}, assets(3)); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	_, err = s.Initialize(geom.Size{Width: 800, Height: 600}, assets(3))
	if !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("second Initialize: error = %v, want %s", err, errors.ErrCodeInvalidState)
	}
}

func TestInitializeDegenerateViewport(t *testing.T) {
	s := newTestSession(t, Options{Sizer: fixedSize(180)})
	placed, err := s.Initialize(geom.Size{Width: 120, Height: 90}, assets(5))
	if err != nil {
		t.Fatalf("degenerate viewport should not fail: %v", err)
	}
	if placed != 1 {
		t.Errorf("placed = %d, want exactly 1 (everything else collides at the origin)", placed)
	}
	assertInBounds(t, s)
}

func TestResizeCentersHalfRatio(t *testing.T) {
	s := newTestSession(t, Options{Sizer: fixedSize(180)})
	if _, err := s.Initialize(geom.Size{Width: 1000, Height: 800}, assets(1)); err != nil {
		t.Fatal(err)
	}
	id := s.Items()[0].ID

	// (410, 310) is exactly half of (820, 620).
	if !s.OnDragCommitted(id, 410, 310) {
		t.Fatal("OnDragCommitted() = false")
	}
	it, _ := s.Item(id)
	if it.Ratio.X != 0.5 || it.Ratio.Y != 0.5 {
		t.Fatalf("Ratio = %+v, want (0.5, 0.5)", it.Ratio)
	}

	cases := []struct{ w, h, size float64 }{
		{2000, 1000, 140},
		{375, 812, 100},
		{1920, 1080, 180},
	}
	for _, c := range cases {
		s.OnViewportChange(c.w, c.h, c.size)
		it, _ := s.Item(id)
		want := geom.Point{X: (c.w - c.size) / 2, Y: (c.h - c.size) / 2}
		if it.Position != want {
			t.Errorf("after %vx%v/%v: Position = %v, want %v", c.w, c.h, c.size, it.Position, want)
		}
	}
}

func TestDragThenResize(t *testing.T) {
	s := newTestSession(t, Options{Sizer: fixedSize(180)})
	if _, err := s.Initialize(geom.Size{Width: 1000, Height: 800}, assets(1)); err != nil {
		t.Fatal(err)
	}
	id := s.Items()[0].ID

	s.OnDragCommitted(id, 100, 100)
	it, _ := s.Item(id)
	if math.Abs(it.Ratio.X-100.0/820) > tolerance {
		t.Errorf("Ratio.X = %v, want %v", it.Ratio.X, 100.0/820)
	}
	if math.Abs(it.Ratio.Y-100.0/620) > tolerance {
		t.Errorf("Ratio.Y = %v, want %v", it.Ratio.Y, 100.0/620)
	}

	s.ScheduleResize(2000, 800)
	if !s.FlushResize() {
		t.Fatal("FlushResize() found nothing pending")
	}

	it, _ = s.Item(id)
	if math.Abs(it.Position.X-221.95) > 0.01 {
		t.Errorf("Position.X = %v, want ~221.95", it.Position.X)
	}
	if math.Abs(it.Position.Y-100) > 1e-6 {
		t.Errorf("Position.Y = %v, want 100 (height unchanged)", it.Position.Y)
	}
}

func TestDragCommitIsNotClamped(t *testing.T) {
	s := newTestSession(t, Options{Sizer: fixedSize(180)})
	if _, err := s.Initialize(geom.Size{Width: 1000, Height: 800}, assets(1)); err != nil {
		t.Fatal(err)
	}
	id := s.Items()[0].ID

	s.OnDragCommitted(id, -50, 900)
	it, _ := s.Item(id)
	if it.Position != (geom.Point{X: -50, Y: 900}) {
		t.Errorf("Position = %v, want the raw (-50, 900)", it.Position)
	}
	if it.Ratio.X >= 0 || it.Ratio.Y <= 1 {
		t.Errorf("Ratio = %+v, want out-of-range values", it.Ratio)
	}

	// The next resize clamps.
	s.OnViewportChange(1000, 800, 180)
	it, _ = s.Item(id)
	if it.Position != (geom.Point{X: 0, Y: 620}) {
		t.Errorf("Position after resize = %v, want (0, 620)", it.Position)
	}
}

func TestDragUnknownID(t *testing.T) {
	s := newTestSession(t, Options{})
	if s.OnDragCommitted("sticker-0", 1, 1) {
		t.Error("drag before Initialize should be ignored")
	}
	if _, err := s.Initialize(geom.Size{Width: 1000, Height: 800}, assets(2)); err != nil {
		t.Fatal(err)
	}
	before := s.Snapshot()
	if s.OnDragCommitted("sticker-99", 10, 10) {
		t.Error("OnDragCommitted(unknown) = true")
	}
	after := s.Snapshot()
	for i := range before.Items {
		if before.Items[i] != after.Items[i] {
			t.Errorf("item %d changed on unknown drag", i)
		}
	}
}

func TestDragJitterBounded(t *testing.T) {
	s := newTestSession(t, Options{DragJitter: 5})
	if _, err := s.Initialize(geom.Size{Width: 1000, Height: 800}, assets(1)); err != nil {
		t.Fatal(err)
	}
	id := s.Items()[0].ID

	for range 50 {
		before, _ := s.Item(id)
		s.OnDragCommitted(id, 10, 10)
		after, _ := s.Item(id)
		if d := after.Rotation - before.Rotation; d < -5 || d > 5 {
			t.Fatalf("rotation changed by %v, want within ±5", d)
		}
	}
}

func TestRotationDefaults(t *testing.T) {
	s := newTestSession(t, Options{Seed: 3})
	if s.opts.InitialRotation != DefaultInitialRotation || s.opts.DragJitter != DefaultDragJitter {
		t.Fatalf("rotation options = %v/%v, want defaults", s.opts.InitialRotation, s.opts.DragJitter)
	}
	if _, err := s.Initialize(geom.Size{Width: 1000, Height: 800}, assets(3)); err != nil {
		t.Fatal(err)
	}

	tilted := false
	for _, it := range s.Items() {
		tilted = tilted || it.Rotation != 0
	}
	if !tilted {
		t.Error("every sticker is upright with default options")
	}

	id := s.Items()[0].ID
	before, _ := s.Item(id)
	for range 10 {
		s.OnDragCommitted(id, 100, 100)
	}
	after, _ := s.Item(id)
	if after.Rotation == before.Rotation {
		t.Error("drags did not change the rotation with default options")
	}
}

func TestNoRotation(t *testing.T) {
	upright := newTestSession(t, Options{Seed: 3, InitialRotation: NoRotation, DragJitter: NoRotation})
	tilted := newTestSession(t, Options{Seed: 3})
	for _, s := range []*Session{upright, tilted} {
		if _, err := s.Initialize(geom.Size{Width: 1000, Height: 800}, assets(3)); err != nil {
			t.Fatal(err)
		}
		s.OnDragCommitted(ItemID(0), 100, 100)
	}

	want := tilted.Items()
	for i, it := range upright.Items() {
		if it.Rotation != 0 {
			t.Errorf("%s: rotation = %v, want 0", it.ID, it.Rotation)
		}
		if it.Position != want[i].Position {
			t.Errorf("%s: position %v differs from rotated board %v", it.ID, it.Position, want[i].Position)
		}
	}
}

// reentrantHooks reads the session back from inside every board event.
type reentrantHooks struct {
	observability.NoopBoardHooks
	s     *Session
	calls atomic.Int32
}

func (h *reentrantHooks) read() {
	h.s.Snapshot()
	h.calls.Add(1)
}

func (h *reentrantHooks) OnInitialized(string, int, int, time.Duration) { h.read() }
func (h *reentrantHooks) OnPlacementExhausted(string, int, int)         { h.read() }
func (h *reentrantHooks) OnViewportChange(string, float64, float64, float64, int) {
	h.read()
}
func (h *reentrantHooks) OnDragCommitted(string, string, bool) { h.read() }
func (h *reentrantHooks) OnClosed(string)                      { h.read() }

func TestHooksMayReadSession(t *testing.T) {
	t.Cleanup(observability.Reset)
	s := newTestSession(t, Options{Sizer: fixedSize(180)})
	hooks := &reentrantHooks{s: s}
	observability.SetBoardHooks(hooks)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// 120x90 fits one sticker at most, so the rest exhaust.
		s.Initialize(geom.Size{Width: 120, Height: 90}, assets(3))
		s.OnViewportChange(1000, 800, 180)
		s.OnDragCommitted(ItemID(0), 10, 10)
		s.OnDragCommitted("missing", 10, 10)
		s.Close()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("a hook reading the session deadlocked")
	}
	if got := hooks.calls.Load(); got < 5 {
		t.Errorf("hook calls = %d, want at least 5", got)
	}
}

func TestBoundsHoldAcrossResizes(t *testing.T) {
	s := newTestSession(t, Options{InitialRotation: 15})
	if _, err := s.Initialize(geom.Size{Width: 1440, Height: 900}, assets(17)); err != nil {
		t.Fatal(err)
	}

	sizes := [][2]float64{{800, 600}, {320, 640}, {100, 100}, {3840, 2160}, {1023, 700}}
	for _, sz := range sizes {
		s.OnViewportChange(sz[0], sz[1], s.opts.Sizer(sz[0]))
		assertInBounds(t, s)
	}
}

func TestOnViewportChangeBeforeInitialize(t *testing.T) {
	s := newTestSession(t, Options{})
	s.OnViewportChange(1024, 768, 180)
	if got := s.Viewport(); got != (geom.Size{Width: 1024, Height: 768}) {
		t.Errorf("Viewport() = %v", got)
	}
	if s.Phase() != PhaseUninitialized {
		t.Errorf("Phase() = %v, want uninitialized", s.Phase())
	}
}

func TestScheduleResizeCoalesces(t *testing.T) {
	var changes atomic.Int32
	s := newTestSession(t, Options{
		Debounce: 20 * time.Millisecond,
		OnChange: func(Snapshot) { changes.Add(1) },
	})
	if _, err := s.Initialize(geom.Size{Width: 1000, Height: 800}, assets(4)); err != nil {
		t.Fatal(err)
	}
	changes.Store(0)

	for w := 1000.0; w < 1100; w += 10 {
		s.ScheduleResize(w, 800)
	}
	if !s.ResizePending() {
		t.Error("ResizePending() = false during the burst")
	}

	time.Sleep(150 * time.Millisecond)

	if got := changes.Load(); got != 1 {
		t.Errorf("OnChange called %d times, want 1", got)
	}
	if got := s.Viewport(); got.Width != 1090 {
		t.Errorf("Viewport().Width = %v, want the last value 1090", got.Width)
	}
}

func TestCloseCancelsPendingResize(t *testing.T) {
	var changes atomic.Int32
	s := New(Options{
		Seed:     7,
		Debounce: 20 * time.Millisecond,
		OnChange: func(Snapshot) { changes.Add(1) },
	})
	if _, err := s.Initialize(geom.Size{Width: 1000, Height: 800}, assets(4)); err != nil {
		t.Fatal(err)
	}
	changes.Store(0)
	before := s.Snapshot()

	s.ScheduleResize(500, 500)
	s.Close()
	time.Sleep(100 * time.Millisecond)

	if got := changes.Load(); got != 0 {
		t.Errorf("OnChange called %d times after Close", got)
	}
	if got := s.Viewport(); got != before.Viewport {
		t.Errorf("Viewport changed after Close: %v", got)
	}

	// Everything after Close is a no-op.
	s.OnViewportChange(10, 10, 5)
	if s.OnDragCommitted(before.Items[0].ID, 1, 1) {
		t.Error("drag after Close should be ignored")
	}
	if got := s.Viewport(); got != before.Viewport {
		t.Errorf("Viewport changed after Close: %v", got)
	}
	if s.Phase() != PhaseClosed {
		t.Errorf("Phase() = %v, want closed", s.Phase())
	}
	s.Close() // idempotent
}

func TestSnapshotJSON(t *testing.T) {
	s := newTestSession(t, Options{})
	if _, err := s.Initialize(geom.Size{Width: 1000, Height: 800}, assets(2)); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		SessionID string `json:"session_id"`
		Phase     string `json:"phase"`
		Items     []ItemView `json:"items"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.SessionID != s.ID() {
		t.Errorf("session_id = %q, want %q", decoded.SessionID, s.ID())
	}
	if decoded.Phase != "ready" {
		t.Errorf("phase = %q, want ready", decoded.Phase)
	}
	if len(decoded.Items) != len(s.Items()) {
		t.Errorf("items = %d, want %d", len(decoded.Items), len(s.Items()))
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseUninitialized, "uninitialized"},
		{PhaseInitializing, "initializing"},
		{PhaseReady, "ready"},
		{PhaseClosed, "closed"},
		{Phase(9), "phase(9)"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.p), got, tt.want)
		}
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	a, b := New(Options{}), New(Options{})
	defer a.Close()
	defer b.Close()
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("IDs %q and %q should be distinct and non-empty", a.ID(), b.ID())
	}
}

func TestPhaseText(t *testing.T) {
	for _, p := range []Phase{PhaseUninitialized, PhaseInitializing, PhaseReady, PhaseClosed} {
		text, _ := p.MarshalText()
		var got Phase
		if err := got.UnmarshalText(text); err != nil || got != p {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, got, err)
		}
	}
	var p Phase
	if err := p.UnmarshalText([]byte("sleeping")); err == nil {
		t.Error("UnmarshalText(sleeping) should fail")
	}
}
