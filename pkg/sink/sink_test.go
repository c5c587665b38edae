package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/stickerboard/pkg/board"
	"github.com/matzehuels/stickerboard/pkg/errors"
	"github.com/matzehuels/stickerboard/pkg/geom"
)

func testSnapshot() board.Snapshot {
	return board.Snapshot{
		SessionID: "s-1",
		Phase:     board.PhaseReady,
		Viewport:  geom.Size{Width: 1000, Height: 800},
		ItemSize:  180,
		Items: []board.ItemView{
			{ID: "sticker-0", X: 100, Y: 50, Rotation: -12.5, Order: 0, Asset: "stickers/sticker-magic-mouse.png"},
			{ID: "sticker-2", X: 600, Y: 400, Rotation: 4, Order: 1, Asset: "sticker-a&b.png"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		if _, err := ParseFormat(f); err != nil {
			t.Errorf("ParseFormat(%q) = %v", f, err)
		}
	}
	_, err := ParseFormat("png")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(png) = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"stickers/sticker-magic-mouse.png", "magic mouse"},
		{"sticker-react.webp", "react"},
		{"logo.png", "logo"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Label(tt.in); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Phase    string           `json:"phase"`
		ItemSize float64          `json:"item_size"`
		Items    []board.ItemView `json:"items"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Phase != "ready" || out.ItemSize != 180 || len(out.Items) != 2 {
		t.Errorf("decoded %+v", out)
	}
	if out.Items[0].Rotation != -12.5 {
		t.Errorf("rotation = %v, want -12.5", out.Items[0].Rotation)
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testSnapshot(), WithBackground("#faf4ed")))

	for _, want := range []string{
		`viewBox="0 0 1000.0 800.0"`,
		`<g id="sticker-0" transform="translate(100.00 50.00) rotate(-12.50 90.00 90.00)">`,
		`<g id="sticker-2" transform="translate(600.00 400.00) rotate(4.00 90.00 90.00)">`,
		`fill="#faf4ed"`,
		`>magic mouse</text>`,
		`>a&amp;b</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "<image") {
		t.Error("SVG without an asset base should not reference images")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not terminated")
	}
}

func TestRenderSVGImages(t *testing.T) {
	svg := string(RenderSVG(testSnapshot(), WithAssetBase("/static/"), WithoutLabels()))
	if !strings.Contains(svg, `<image href="/static/stickers/sticker-magic-mouse.png"`) {
		t.Error("SVG missing image href")
	}
	if strings.Contains(svg, "<text") {
		t.Error("WithoutLabels should drop captions")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(testSnapshot())
	b := RenderSVG(testSnapshot())
	if !bytes.Equal(a, b) {
		t.Error("RenderSVG should be deterministic")
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testSnapshot())

	// Centers: (100+90, 800-(50+90)) and (600+90, 800-(400+90)).
	for _, want := range []string{
		"graph stickers {",
		"layout=neato;",
		`"sticker-0" [label="magic mouse", pos="190.00,660.00!", orientation=12.50`,
		`"sticker-2" [label="a&b", pos="690.00,310.00!", orientation=-4.00`,
		"width=2.5000, height=2.5000",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
}

func TestRenderGraphviz(t *testing.T) {
	svg, err := RenderGraphviz(context.Background(), ToDOT(testSnapshot()))
	if err != nil {
		t.Fatalf("RenderGraphviz() = %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not SVG")
	}
}

func TestContentType(t *testing.T) {
	if FormatSVG.ContentType() != "image/svg+xml" {
		t.Errorf("svg content type = %q", FormatSVG.ContentType())
	}
	if FormatJSON.ContentType() != "application/json" {
		t.Errorf("json content type = %q", FormatJSON.ContentType())
	}
}
