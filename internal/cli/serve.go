package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stickerboard/internal/server"
	"github.com/matzehuels/stickerboard/pkg/cache"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		assetBase string
		cacheSize int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sticker boards over HTTP",
		Long: `Serve hosts one board per client. Clients create a board for their
viewport, then post resize and drag events and fetch renders.

Boards live in memory and expire after server.session_ttl of inactivity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig(ctx)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			srv := server.New(server.Options{
				Board:       cfg.BoardOptions(nil),
				Assets:      cfg.Assets(),
				AssetBase:   assetBase,
				SessionTTL:  cfg.Server.SessionTTL.Duration,
				MaxSessions: cfg.Server.MaxSessions,
				Cache:       cache.NewMemoryCache(cacheSize),
				Logger:      loggerFromContext(ctx),
			})

			printInfo("Serving boards on %s", StyleValue.Render(addr))
			printDetail("%d stickers, up to %d sessions, idle TTL %s",
				len(cfg.Assets()), cfg.Server.MaxSessions, cfg.Server.SessionTTL.Duration)
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return err
			}
			printSuccess("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr)")
	cmd.Flags().StringVar(&assetBase, "asset-base", "", "URL prefix for sticker images in SVG renders")
	cmd.Flags().IntVar(&cacheSize, "cache-size", cache.DefaultMaxEntries, "maximum cached renders")
	return cmd
}
