package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stickerboard/pkg/board"
	"github.com/matzehuels/stickerboard/pkg/cache"
	"github.com/matzehuels/stickerboard/pkg/errors"
	"github.com/matzehuels/stickerboard/pkg/sink"
)

const (
	formatTable = "table"

	// renderTTL bounds the age of cached Graphviz renders.
	renderTTL = 7 * 24 * time.Hour
)

type outputFlags struct {
	format   string
	graphviz bool
	output   string
	noCache  bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", formatTable, "output format: table, json, svg or dot")
	cmd.Flags().BoolVar(&f.graphviz, "graphviz", false, "render svg through Graphviz (neato, pinned positions)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the render cache")
}

func (f *outputFlags) validate() error {
	if f.format == formatTable {
		if f.graphviz {
			return errors.New(errors.ErrCodeInvalidInput, "--graphviz requires --format svg")
		}
		return nil
	}
	format, err := sink.ParseFormat(f.format)
	if err != nil {
		return err
	}
	if f.graphviz && format != sink.FormatSVG {
		return errors.New(errors.ErrCodeInvalidInput, "--graphviz requires --format svg")
	}
	return nil
}

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	var bf boardFlags
	var of outputFlags

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Scatter stickers over a viewport and print the layout",
		Long: `Place runs one initial placement: every sticker gets a random position that
keeps a minimum distance from the stickers placed before it. Stickers that
find no room within the attempt budget are left out.`,
		Example: `  stickerboard place --width 1920 --height 1080
  stickerboard place -n 5 --seed 42 -f json
  stickerboard place -f svg --graphviz -o board.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := of.validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			sess, requested, placed, err := c.newReadyBoard(ctx, &bf, nil)
			if err != nil {
				return err
			}
			defer sess.Close()
			prog.done(fmt.Sprintf("Placed %d of %d stickers", placed, requested))

			snap := sess.Snapshot()
			if of.format == formatTable {
				printPlacement(requested, placed, snap)
				fmt.Fprintln(cmd.OutOrStdout(), itemsTable(snap))
				printNextStep("Try it live", appName+" play")
				return nil
			}
			return writeSnapshot(ctx, cmd.OutOrStdout(), snap, &of)
		},
	}

	bf.register(cmd)
	of.register(cmd)
	return cmd
}

// writeSnapshot renders snap in the requested format to the output file or w.
func writeSnapshot(ctx context.Context, w io.Writer, snap board.Snapshot, of *outputFlags) error {
	data, err := renderSnapshot(ctx, snap, of)
	if err != nil {
		return err
	}
	if of.output == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(of.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", of.output)
	}
	printSuccess("Wrote %s", of.format)
	printFile(of.output)
	return nil
}

func renderSnapshot(ctx context.Context, snap board.Snapshot, of *outputFlags) ([]byte, error) {
	switch sink.Format(of.format) {
	case sink.FormatJSON:
		return sink.RenderJSON(snap)
	case sink.FormatDOT:
		return []byte(sink.ToDOT(snap)), nil
	case sink.FormatSVG:
		if of.graphviz {
			return renderGraphviz(ctx, snap, newCache(of.noCache))
		}
		return sink.RenderSVG(snap), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", of.format)
}

// renderGraphviz renders through neato, reusing cached output for identical
// DOT source.
func renderGraphviz(ctx context.Context, snap board.Snapshot, c cache.Cache) ([]byte, error) {
	defer c.Close()
	logger := loggerFromContext(ctx)

	dot := sink.ToDOT(snap)
	key := cache.Key("graphviz", dot)
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		logger.Debug("graphviz render cached")
		return data, nil
	}

	spinner := startSpinner(ctx, os.Stderr, "Rendering with Graphviz...")
	data, err := sink.RenderGraphviz(ctx, dot)
	spinner.Stop()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "graphviz")
	}

	if err := c.Set(ctx, key, data, renderTTL); err != nil {
		logger.Warn("cache graphviz render", "err", err)
	}
	return data, nil
}
