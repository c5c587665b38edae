package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/stickerboard/pkg/board"
)

var palette = []string{
	"#f6c177", "#eb6f92", "#9ccfd8", "#c4a7e7", "#31748f", "#ebbcba",
}

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	assetBase  string
	background string
	labels     bool
}

// WithAssetBase draws each sticker as an <image> whose href is base joined
// with the sticker's asset.
func WithAssetBase(base string) SVGOption { return func(r *svgRenderer) { r.assetBase = base } }

// WithBackground fills the viewport with color.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithoutLabels omits the caption text.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG draws snap at viewport scale. Stickers are emitted in z order and
// rotated about their centers.
func RenderSVG(snap board.Snapshot, opts ...SVGOption) []byte {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := snap.Viewport.Width, snap.Viewport.Height
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}
	for _, it := range snap.Items {
		r.renderItem(&buf, it, snap.ItemSize)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderItem(buf *bytes.Buffer, it board.ItemView, size float64) {
	half := size / 2
	fmt.Fprintf(buf, `  <g id="%s" transform="translate(%.2f %.2f) rotate(%.2f %.2f %.2f)">`+"\n",
		html.EscapeString(it.ID), it.X, it.Y, it.Rotation, half, half)

	if r.assetBase != "" && it.Asset != "" {
		fmt.Fprintf(buf, `    <image href="%s" width="%.2f" height="%.2f"/>`+"\n",
			html.EscapeString(joinURL(r.assetBase, it.Asset)), size, size)
	} else {
		fill := palette[it.Order%len(palette)]
		fmt.Fprintf(buf, `    <rect width="%.2f" height="%.2f" rx="%.2f" fill="%s" stroke="#191724" stroke-width="2"/>`+"\n",
			size, size, size/10, fill)
	}

	if r.labels && it.Asset != "" {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.1f">%s</text>`+"\n",
			half, half, max(size/9, 8), html.EscapeString(Label(it.Asset)))
	}
	buf.WriteString("  </g>\n")
}

func joinURL(base, asset string) string {
	if base[len(base)-1] == '/' {
		return base + asset
	}
	return base + "/" + asset
}
