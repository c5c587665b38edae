package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stickerboard/pkg/assets"
	"github.com/matzehuels/stickerboard/pkg/board"
	"github.com/matzehuels/stickerboard/pkg/config"
	"github.com/matzehuels/stickerboard/pkg/errors"
)

// boardFlags are shared by commands that create a board.
type boardFlags struct {
	width  float64
	height float64
	count  int
	seed   uint64
	assets string
}

func (f *boardFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 1280, "viewport width in pixels")
	cmd.Flags().Float64Var(&f.height, "height", 800, "viewport height in pixels")
	cmd.Flags().IntVarP(&f.count, "count", "n", -1, "number of stickers (default: every configured sticker)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (0 uses the config seed, or a random one)")
	cmd.Flags().StringVar(&f.assets, "assets", "", "directory to preload sticker images from (default: stickers.dir)")
}

// stickerNames picks the asset names for a board: the configured names,
// truncated or cycled to count when count is set.
func (f *boardFlags) stickerNames(cfg config.Config) ([]string, error) {
	names := cfg.Assets()
	if f.count < 0 {
		return names, nil
	}
	if err := errors.ValidateCount(f.count); err != nil {
		return nil, err
	}
	return assets.Take(names, f.count), nil
}

func (f *boardFlags) options(cfg config.Config) board.Options {
	opts := cfg.BoardOptions(nil)
	if f.seed != 0 {
		opts.Seed = f.seed
	}
	return opts
}

// preload waits for every sticker image to settle when an asset directory is
// configured. Broken images are reported but never block the board.
func (f *boardFlags) preload(ctx context.Context, cfg config.Config, names []string) error {
	dir := f.assets
	if dir == "" {
		dir = cfg.Stickers.Dir
	}
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "sticker dir")
	}

	logger := loggerFromContext(ctx)
	spinner := startSpinner(ctx, os.Stderr, fmt.Sprintf("Loading %d stickers...", len(names)))

	p := assets.NewPreloader(os.DirFS(dir), &assets.PreloaderOptions{Logger: logger})
	report, err := p.Preload(ctx, names)
	spinner.Stop()
	if err != nil {
		return err
	}

	for _, st := range report.Failed() {
		printWarning("%s failed to load: %v", st.Name, st.Err)
	}
	logger.Debug("stickers ready", "loaded", len(report.Loaded()), "failed", len(report.Failed()), "elapsed", report.Duration)
	return nil
}

// prepareBoard loads config, picks and preloads the stickers, and returns an
// uninitialized board.
func (c *CLI) prepareBoard(ctx context.Context, f *boardFlags, onChange func(board.Snapshot)) (*board.Session, []string, error) {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	names, err := f.stickerNames(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := f.preload(ctx, cfg, names); err != nil {
		return nil, nil, err
	}

	opts := f.options(cfg)
	opts.OnChange = onChange
	return board.New(opts), names, nil
}

// newReadyBoard prepares a board and initializes it for the flag viewport.
func (c *CLI) newReadyBoard(ctx context.Context, f *boardFlags, onChange func(board.Snapshot)) (*board.Session, int, int, error) {
	sess, names, err := c.prepareBoard(ctx, f, onChange)
	if err != nil {
		return nil, 0, 0, err
	}
	placed, err := sess.Initialize(viewportOf(f.width, f.height), names)
	if err != nil {
		sess.Close()
		return nil, 0, 0, err
	}
	return sess, len(names), placed, nil
}
