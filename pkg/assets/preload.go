package assets

import (
	"context"
	"fmt"
	"image"
	"io"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	// Registered decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DefaultConcurrency bounds parallel loads.
const DefaultConcurrency = 8

// Status is the settled state of one asset.
type Status struct {
	Name   string
	Width  int
	Height int
	Format string
	Err    error
}

// Loaded reports whether the asset decoded successfully.
func (s Status) Loaded() bool { return s.Err == nil }

// Report summarizes a preload. Assets is in input order after Dedupe.
type Report struct {
	Assets   []Status
	Duration time.Duration
}

// Ready reports whether the preload settled. It is always true for a Report
// returned without error.
func (r Report) Ready() bool { return r.Assets != nil }

// Loaded returns the names of assets that decoded.
func (r Report) Loaded() []string {
	var out []string
	for _, s := range r.Assets {
		if s.Loaded() {
			out = append(out, s.Name)
		}
	}
	return out
}

// Failed returns the statuses of assets that did not decode.
func (r Report) Failed() []Status {
	var out []Status
	for _, s := range r.Assets {
		if !s.Loaded() {
			out = append(out, s)
		}
	}
	return out
}

// Preloader decodes image headers from a file system.
type Preloader struct {
	fsys        fs.FS
	concurrency int
	logger      *log.Logger
}

// PreloaderOptions configures a Preloader.
type PreloaderOptions struct {
	// Concurrency bounds parallel loads. Defaults to DefaultConcurrency.
	Concurrency int
	// Logger receives per-asset debug output. Defaults to a discarding logger.
	Logger *log.Logger
}

// NewPreloader creates a Preloader reading from fsys.
func NewPreloader(fsys fs.FS, opts *PreloaderOptions) *Preloader {
	p := &Preloader{fsys: fsys, concurrency: DefaultConcurrency}
	if opts != nil {
		if opts.Concurrency > 0 {
			p.concurrency = opts.Concurrency
		}
		p.logger = opts.Logger
	}
	if p.logger == nil {
		p.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return p
}

// Preload loads every asset and returns once all of them have settled.
// Per-asset failures are recorded in the Report, not returned. The only
// error is ctx's, when the context is cancelled before the preload settles.
func (p *Preloader) Preload(ctx context.Context, names []string) (Report, error) {
	start := time.Now()
	names = Dedupe(names)
	statuses := make([]Status, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			statuses[i] = p.load(name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	r := Report{Assets: statuses, Duration: time.Since(start)}
	p.logger.Debug("assets settled", "total", len(statuses), "failed", len(r.Failed()), "elapsed", r.Duration)
	return r, nil
}

func (p *Preloader) load(name string) Status {
	st := Status{Name: name}
	f, err := p.fsys.Open(name)
	if err != nil {
		st.Err = err
		p.logger.Debug("asset failed", "name", name, "err", err)
		return st
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		st.Err = fmt.Errorf("decode %s: %w", name, err)
		p.logger.Debug("asset failed", "name", name, "err", err)
		return st
	}
	st.Width, st.Height, st.Format = cfg.Width, cfg.Height, format
	p.logger.Debug("asset loaded", "name", name, "format", format, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	return st
}
