package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stickerboard/pkg/observability"
)

// observe reports every request to the HTTP hooks and the debug log, keyed
// by the matched route pattern rather than the raw path.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		ctx := r.Context()
		observability.HTTP().OnResponse(ctx, r.Method, route, status, elapsed)
		s.opts.Logger.Debug("request",
			"method", r.Method, "route", route, "status", status,
			"elapsed", elapsed, "request_id", middleware.GetReqID(ctx))
	})
}
