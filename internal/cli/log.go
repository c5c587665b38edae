package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stickerboard/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Placed 12 of 17 stickers (3ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks writes board events to the debug log.
type logHooks struct {
	logger *log.Logger
}

var _ observability.BoardHooks = logHooks{}

func (h logHooks) OnInitialized(sessionID string, requested, placed int, d time.Duration) {
	h.logger.Debug("board ready", "session", short(sessionID), "requested", requested, "placed", placed, "elapsed", d)
}

func (h logHooks) OnPlacementExhausted(sessionID string, index, attempts int) {
	h.logger.Debug("no room for sticker", "session", short(sessionID), "index", index, "attempts", attempts)
}

func (h logHooks) OnViewportChange(sessionID string, width, height, itemSize float64, items int) {
	h.logger.Debug("board resized", "session", short(sessionID), "width", width, "height", height, "item_size", itemSize, "items", items)
}

func (h logHooks) OnDragCommitted(sessionID, itemID string, known bool) {
	if !known {
		h.logger.Debug("drag ignored", "session", short(sessionID), "item", itemID)
	}
}

func (h logHooks) OnClosed(sessionID string) {
	h.logger.Debug("board closed", "session", short(sessionID))
}

// short trims a uuid to its first group for log readability.
func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
