package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stickerboard/pkg/assets"
	"github.com/matzehuels/stickerboard/pkg/board"
	"github.com/matzehuels/stickerboard/pkg/buildinfo"
	"github.com/matzehuels/stickerboard/pkg/cache"
	"github.com/matzehuels/stickerboard/pkg/errors"
	"github.com/matzehuels/stickerboard/pkg/geom"
	"github.com/matzehuels/stickerboard/pkg/sink"
)

type createRequest struct {
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Count  *int     `json:"count,omitempty"`
	Assets []string `json:"assets,omitempty"`
	Seed   uint64   `json:"seed,omitempty"`
}

type viewportRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type dragRequest struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type createResponse struct {
	board.Snapshot
	Requested int `json:"requested"`
	Placed    int `json:"placed"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.len(),
		"build":    buildinfo.Get(),
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	names, err := s.assetsFor(req)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateViewport(req.Width, req.Height); err != nil {
		writeError(w, err)
		return
	}

	opts := s.opts.Board
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	sess := board.New(opts)
	if err := s.sessions.add(sess); err != nil {
		sess.Close()
		writeError(w, err)
		return
	}

	placed, err := sess.Initialize(geom.Size{Width: req.Width, Height: req.Height}, names)
	if err != nil {
		s.sessions.remove(sess.ID())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{
		Snapshot:  sess.Snapshot(),
		Requested: len(names),
		Placed:    placed,
	})
}

func (s *Server) assetsFor(req createRequest) ([]string, error) {
	if len(req.Assets) > 0 {
		if err := errors.ValidateCount(len(req.Assets)); err != nil {
			return nil, err
		}
		for _, a := range req.Assets {
			if err := errors.ValidateAssetPath(a); err != nil {
				return nil, err
			}
		}
		return req.Assets, nil
	}

	n := len(s.opts.Assets)
	if req.Count != nil {
		n = *req.Count
	}
	if err := errors.ValidateCount(n); err != nil {
		return nil, err
	}
	return assets.Take(s.opts.Assets, n), nil
}

func (s *Server) session(r *http.Request) (*board.Session, error) {
	return s.sessions.get(chi.URLParam(r, "sessionID"))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.sessions.remove(id) {
		writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req viewportRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateViewport(req.Width, req.Height); err != nil {
		writeError(w, err)
		return
	}

	sess.ScheduleResize(req.Width, req.Height)
	if sync, _ := strconv.ParseBool(r.URL.Query().Get("sync")); sync {
		sess.FlushResize()
		writeJSON(w, http.StatusOK, sess.Snapshot())
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req dragRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateCoordinate("x", req.X); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateCoordinate("y", req.Y); err != nil {
		writeError(w, err)
		return
	}

	if !sess.OnDragCommitted(req.ID, req.X, req.Y) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	it, _ := sess.Item(req.ID)
	writeJSON(w, http.StatusOK, it.View())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format, err := sink.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, err)
		return
	}

	snap := sess.Snapshot()
	key := cache.Key("render", format, s.opts.AssetBase, snap)
	ctx := r.Context()
	if data, hit, err := s.opts.Cache.Get(ctx, key); err == nil && hit {
		writeRaw(w, format, data)
		return
	}

	var data []byte
	switch format {
	case sink.FormatJSON:
		data, err = sink.RenderJSON(snap)
	case sink.FormatSVG:
		var opts []sink.SVGOption
		if s.opts.AssetBase != "" {
			opts = append(opts, sink.WithAssetBase(s.opts.AssetBase))
		}
		data = sink.RenderSVG(snap, opts...)
	case sink.FormatDOT:
		data = []byte(sink.ToDOT(snap))
	}
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format))
		return
	}

	if err := s.opts.Cache.Set(ctx, key, data, s.opts.SessionTTL); err != nil {
		s.opts.Logger.Warn("cache render", "err", err)
	}
	writeRaw(w, format, data)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
