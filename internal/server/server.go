// Package server exposes sticker boards over HTTP.
//
// Every client creates its own board and drives it with viewport and drag
// events, exactly as an embedded view would. Boards are held in memory for
// as long as the client keeps using them; nothing is shared between clients
// and nothing outlives the process.
//
//	POST   /sessions                    create and initialize a board
//	GET    /sessions/{id}               current snapshot
//	POST   /sessions/{id}/viewport      debounced resize (202), ?sync=true applies now
//	POST   /sessions/{id}/drag          commit a drag (200, or 204 for unknown ids)
//	GET    /sessions/{id}/render.{fmt}  json, svg or dot render, cached by snapshot
//	DELETE /sessions/{id}               tear the board down
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stickerboard/pkg/assets"
	"github.com/matzehuels/stickerboard/pkg/board"
	"github.com/matzehuels/stickerboard/pkg/cache"
	"github.com/matzehuels/stickerboard/pkg/config"
)

const (
	maxBodyBytes   = 1 << 20
	sweepInterval  = time.Minute
	shutdownPeriod = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Board is the template for every client's board. OnChange is ignored.
	Board board.Options
	// Assets are the sticker names handed out when a client asks for a count.
	// Defaults to assets.DefaultStickers.
	Assets []string
	// AssetBase, when set, makes SVG renders reference images under it.
	AssetBase string
	// SessionTTL expires idle boards. Defaults to config.DefaultSessionTTL.
	SessionTTL time.Duration
	// MaxSessions bounds concurrent boards. Defaults to config.DefaultMaxSessions.
	MaxSessions int
	// Cache stores renders. Defaults to a MemoryCache.
	Cache cache.Cache
	// Logger receives request logs. Defaults to a discarding logger.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if len(o.Assets) == 0 {
		o.Assets = assets.DefaultStickers
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = config.DefaultSessionTTL
	}
	if o.MaxSessions <= 0 {
		o.MaxSessions = config.DefaultMaxSessions
	}
	if o.Cache == nil {
		o.Cache = cache.NewMemoryCache(0)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.Board.OnChange = nil
}

// Server hosts per-client boards.
type Server struct {
	opts     Options
	sessions *registry
	router   chi.Router
}

// New creates a Server.
func New(opts Options) *Server {
	opts.setDefaults()
	s := &Server{
		opts:     opts,
		sessions: newRegistry(opts.MaxSessions, opts.SessionTTL),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/viewport", s.handleViewport)
			r.Post("/drag", s.handleDrag)
			r.Get("/render.{format}", s.handleRender)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and closes every board.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	defer s.Close()

	go s.sweepLoop(ctx)

	errc := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close tears down every board and releases the render cache.
func (s *Server) Close() error {
	s.sessions.closeAll()
	return s.opts.Cache.Close()
}

// Sessions returns the number of live boards.
func (s *Server) Sessions() int { return s.sessions.len() }

func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.sweep(); n > 0 {
				s.opts.Logger.Debug("expired idle sessions", "count", n)
			}
		}
	}
}
