package cli

import (
	"strconv"
	"strings"

	"github.com/matzehuels/stickerboard/pkg/errors"
	"github.com/matzehuels/stickerboard/pkg/geom"
)

func viewportOf(width, height float64) geom.Size {
	return geom.Size{Width: width, Height: height}
}

// parseSize parses "1920x1080".
func parseSize(s string) (geom.Size, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return geom.Size{}, errors.New(errors.ErrCodeInvalidViewport, "invalid size %q (want WIDTHxHEIGHT)", s)
	}
	w, errW := strconv.ParseFloat(ws, 64)
	h, errH := strconv.ParseFloat(hs, 64)
	if errW != nil || errH != nil {
		return geom.Size{}, errors.New(errors.ErrCodeInvalidViewport, "invalid size %q (want WIDTHxHEIGHT)", s)
	}
	if err := errors.ValidateViewport(w, h); err != nil {
		return geom.Size{}, err
	}
	return geom.Size{Width: w, Height: h}, nil
}

// drag is one committed drag from the command line.
type drag struct {
	id string
	to geom.Point
}

// parseDrag parses "sticker-3=120,-40". Coordinates may fall outside the
// viewport.
func parseDrag(s string) (drag, error) {
	id, pos, ok := strings.Cut(s, "=")
	if !ok || id == "" {
		return drag{}, errors.New(errors.ErrCodeInvalidInput, "invalid drag %q (want ID=X,Y)", s)
	}
	xs, ys, ok := strings.Cut(pos, ",")
	if !ok {
		return drag{}, errors.New(errors.ErrCodeInvalidInput, "invalid drag %q (want ID=X,Y)", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return drag{}, errors.New(errors.ErrCodeInvalidInput, "invalid drag %q (want ID=X,Y)", s)
	}
	if err := errors.ValidateCoordinate("x", x); err != nil {
		return drag{}, err
	}
	if err := errors.ValidateCoordinate("y", y); err != nil {
		return drag{}, err
	}
	return drag{id: strings.TrimSpace(id), to: geom.Point{X: x, Y: y}}, nil
}
