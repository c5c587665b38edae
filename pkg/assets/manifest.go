// Package assets names the sticker images and preloads them.
//
// A board is initialized only after its assets are ready. Readiness means
// every asset has settled, loaded or failed: a broken image never blocks the
// board, it is reported and the sticker is still placed.
package assets

import (
	"path"
	"slices"
)

// DefaultStickers is the built-in sticker set.
var DefaultStickers = []string{
	"sticker-airpods-white.png",
	"sticker-airpods.png",
	"sticker-apple.png",
	"sticker-flipper.png",
	"sticker-github.png",
	"sticker-keyboard.png",
	"sticker-laptop-back.png",
	"sticker-laptop-code.png",
	"sticker-laptop-thinkpad.png",
	"sticker-laptop.png",
	"sticker-macbook.png",
	"sticker-magic-mouse.png",
	"sticker-nest.png",
	"sticker-openai.png",
	"sticker-react.png",
	"sticker-robot.png",
	"sticker-technologist.png",
}

// Dedupe drops empty entries and repeats, keeping first occurrences in order.
func Dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Take returns n asset names, cycling through names when n exceeds its
// length. It returns nil for an empty list.
func Take(names []string, n int) []string {
	if len(names) == 0 || n <= 0 {
		return nil
	}
	if n <= len(names) {
		return slices.Clone(names[:n])
	}
	out := make([]string, n)
	for i := range out {
		out[i] = names[i%len(names)]
	}
	return out
}

// Join prefixes every name with dir using forward slashes, the separator
// fs.FS and URLs share.
func Join(dir string, names []string) []string {
	if dir == "" {
		return slices.Clone(names)
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = path.Join(dir, n)
	}
	return out
}
