// Package sink renders board snapshots.
//
// A sink is a pure function of a [board.Snapshot]: the same snapshot always
// yields the same bytes, which lets callers cache renders by snapshot hash.
//
// Available formats:
//   - json: the snapshot itself, for web front ends
//   - svg: a standalone drawing with one rotated square per sticker
//   - dot: Graphviz source with every node pinned at its sticker position,
//     rendered by [RenderGraphviz] through neato
package sink

import (
	"path"
	"strings"

	"github.com/matzehuels/stickerboard/pkg/errors"
)

// Format names an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatDOT  Format = "dot"
)

// Formats lists every supported format.
var Formats = []string{string(FormatJSON), string(FormatSVG), string(FormatDOT)}

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	if err := errors.ValidateOneOf(errors.ErrCodeInvalidFormat, "format", s, Formats...); err != nil {
		return "", err
	}
	return Format(s), nil
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "text/vnd.graphviz"
	}
}

// Label turns an asset path like "stickers/sticker-magic-mouse.png" into a
// short caption: "magic mouse".
func Label(asset string) string {
	name := path.Base(asset)
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.TrimPrefix(name, "sticker-")
	return strings.ReplaceAll(name, "-", " ")
}
