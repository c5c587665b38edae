package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a progress line on w until stopped or until its context
// ends, whichever comes first.
type spinner struct {
	w       io.Writer
	message string

	mu        sync.Mutex
	once      sync.Once
	stop      chan struct{}
	stopped   chan struct{}
	cancelled atomic.Bool
}

// startSpinner starts a spinner on w.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	s := &spinner{
		w:       w,
		message: message,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.cancelled.Store(true)
			s.clear()
			return
		case <-s.stop:
			s.clear()
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
			s.mu.Unlock()
		}
	}
}

// Stop halts the animation and clears the line. It may be called more than
// once.
func (s *spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.stopped
}

// Cancelled reports whether the spinner ended because its context did.
func (s *spinner) Cancelled() bool {
	return s.cancelled.Load()
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
