package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stickerboard/pkg/board"
)

const pointsPerInch = 72.0

// ToDOT converts snap to Graphviz DOT. Every sticker becomes a fixed-size box
// pinned at its center, with y flipped into Graphviz's bottom-up axis, so a
// neato render reproduces the board instead of laying it out again.
func ToDOT(snap board.Snapshot) string {
	var buf bytes.Buffer
	size := snap.ItemSize
	inches := size / pointsPerInch

	buf.WriteString("graph stickers {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fixedsize=true, width=%.4f, height=%.4f, fontsize=%.1f];\n",
		inches, inches, max(size/9, 8))
	buf.WriteString("\n")

	for _, it := range snap.Items {
		cx := it.X + size/2
		cy := snap.Viewport.Height - (it.Y + size/2)
		label := Label(it.Asset)
		if label == "" {
			label = it.ID
		}
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.2f,%.2f!\", orientation=%.2f, fillcolor=%q];\n",
			it.ID, label, cx, cy, -it.Rotation, palette[it.Order%len(palette)])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderGraphviz renders DOT source to SVG with the neato engine.
func RenderGraphviz(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
