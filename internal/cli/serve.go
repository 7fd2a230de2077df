package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowboard/pkg/observability/prom"
	"github.com/matzehuels/flowboard/pkg/server"
)

// serveCommand creates the HTTP editing shell command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve editing sessions over HTTP",
		Long: `Start the HTTP shell. Clients create sessions, post input events and
fetch diagrams in any supported format. Prometheus metrics are exposed at
/metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prom.Register()
			srv := server.New(server.Config{
				Catalog:        cfg.BuildCatalog(),
				Runner:         runner,
				Logger:         c.Logger,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				Theme:          cfg.Render.Theme,
			})

			printInfo("Listening on %s", StyleHighlight.Render(addr))
			printKeyValue("Cache", cfg.Cache.Backend)
			printKeyValue("Node types", describe(cfg.BuildCatalog().Len(), "type"))
			printNextStep("Create a session", "curl -X POST http://localhost"+addr+"/sessions")
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
