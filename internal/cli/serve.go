package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API.

Renders are cached with the configured cache backend (a redis cache is
recommended when several instances share the work) and recorded in the
configured history store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Addr()
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg := server.Config{
				Runner:   runner,
				Defaults: c.Config.Options(),
				Logger:   c.Logger,
			}
			if !noHistory {
				store, err := c.newHistory(ctx, ".")
				if err != nil {
					return err
				}
				defer store.Close(ctx)
				cfg.History = store
			}

			printInfo("Listening on %s", StyleHighlight.Render(addr))
			return server.New(cfg).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record renders")
	return cmd
}
