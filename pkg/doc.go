// Package pkg provides the libraries behind Stickerboard.
//
// # Overview
//
// Stickerboard scatters decorative stickers over a viewport so that no two
// sit too close, lets the user drag them anywhere, and keeps every sticker at
// the same relative position when the viewport is resized. The pkg directory
// is organized into three areas:
//
//  1. Engine - geometry, sizing, placement and the board session
//  2. Output - snapshot renderers (JSON, SVG, DOT/Graphviz)
//  3. Support - configuration, asset preloading, caching, errors, hooks
//
// # Architecture
//
// The typical data flow through a board:
//
//	asset readiness (assets.Preloader)
//	         ↓
//	    [board.Session.Initialize] (placement.Solver per sticker)
//	         ↓
//	    drag commits and debounced resizes (coords.Mapper)
//	         ↓
//	    [board.Snapshot] → sink (JSON, SVG, DOT)
//
// # Quick Start
//
//	sess := board.New(board.DefaultOptions())
//	defer sess.Close()
//
//	placed, err := sess.Initialize(geom.Size{Width: 1280, Height: 800}, assets.DefaultStickers)
//	if err != nil {
//	    return err
//	}
//
//	sess.OnDragCommitted("sticker-0", 400, 300)
//	sess.ScheduleResize(1920, 1080) // applied after the debounce window
//
//	svg := sink.RenderSVG(sess.Snapshot())
//
// # Main Packages
//
// ## Engine
//
// [geom] - Points, sizes and clamping.
//
// [coords] - Ratio coordinates: positions relative to the space left over
// once a sticker's size is subtracted from the viewport.
//
// [sizing] - Width breakpoints mapping a viewport to a sticker size, and the
// minimum center distance derived from it.
//
// [placement] - Rejection sampling of sticker positions under a minimum
// distance and an attempt budget.
//
// [debounce] - Trailing-edge coalescing of resize bursts.
//
// [board] - The Session that owns one view's stickers through its lifecycle
// (uninitialized, initializing, ready, closed).
//
// ## Output
//
// [sink] - Renderers for board snapshots. DOT output pins every sticker so
// that Graphviz neato reproduces the board exactly.
//
// ## Support
//
// [config] - TOML configuration with defaults and validation.
//
// [assets] - Sticker manifests and concurrent image preloading.
//
// [cache] - Render cache with memory, file and null backends.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hook interfaces for board, cache and HTTP events.
//
// [buildinfo] - Version information set at link time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/board/...    # Specific package
//	go test -run Example ./... # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/geom
// [coords]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/coords
// [sizing]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/sizing
// [placement]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/placement
// [debounce]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/debounce
// [board]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/board
// [board.Session.Initialize]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/board#Session.Initialize
// [board.Snapshot]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/board#Snapshot
// [sink]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/sink
// [config]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/config
// [assets]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/assets
// [cache]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/stickerboard/pkg/buildinfo
package pkg
