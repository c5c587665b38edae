package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stickerboard/pkg/errors"
)

// resizeCommand creates the resize command.
func (c *CLI) resizeCommand() *cobra.Command {
	var bf boardFlags
	var of outputFlags
	var drags, sizes []string

	cmd := &cobra.Command{
		Use:   "resize",
		Short: "Replay drags and resizes against a placed board",
		Long: `Resize places stickers for the starting viewport, commits every --drag in
order, then applies every --to size in order. Each sticker keeps its position
relative to the free space, so a sticker dragged to the middle stays in the
middle at any size.

Drags are stored exactly as given, even outside the viewport; the next
resize clamps them back inside.`,
		Example: `  stickerboard resize --width 1000 --height 800 --drag sticker-0=100,100 --to 2000x800
  stickerboard resize --to 375x812 --to 1440x900 -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := of.validate(); err != nil {
				return err
			}
			parsedDrags := make([]drag, len(drags))
			for i, d := range drags {
				pd, err := parseDrag(d)
				if err != nil {
					return err
				}
				parsedDrags[i] = pd
			}
			targets := make([]struct{ w, h float64 }, len(sizes))
			for i, s := range sizes {
				sz, err := parseSize(s)
				if err != nil {
					return err
				}
				targets[i].w, targets[i].h = sz.Width, sz.Height
			}
			if len(parsedDrags) == 0 && len(targets) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "nothing to replay: pass --drag or --to")
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			sess, requested, placed, err := c.newReadyBoard(ctx, &bf, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			for _, d := range parsedDrags {
				if !sess.OnDragCommitted(d.id, d.to.X, d.to.Y) {
					logger.Warn("no such sticker, drag ignored", "id", d.id)
					continue
				}
				logger.Info("dragged", "id", d.id, "x", d.to.X, "y", d.to.Y)
			}
			for _, t := range targets {
				sess.ScheduleResize(t.w, t.h)
				sess.FlushResize()
				logger.Info("resized", "width", t.w, "height", t.h, "item_size", sess.ItemSize())
			}

			snap := sess.Snapshot()
			if of.format == formatTable {
				printPlacement(requested, placed, snap)
				fmt.Fprintln(cmd.OutOrStdout(), itemsTable(snap))
				return nil
			}
			return writeSnapshot(ctx, cmd.OutOrStdout(), snap, &of)
		},
	}

	bf.register(cmd)
	of.register(cmd)
	cmd.Flags().StringArrayVar(&drags, "drag", nil, "commit a drag, ID=X,Y (repeatable)")
	cmd.Flags().StringArrayVar(&sizes, "to", nil, "resize to WIDTHxHEIGHT (repeatable)")
	return cmd
}
