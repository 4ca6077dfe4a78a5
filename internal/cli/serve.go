package cli

import (
	"github.com/spf13/cobra"

	"github.com/paupedrejon/conceptmap/internal/server"
	"github.com/paupedrejon/conceptmap/pkg/notify"
	"github.com/paupedrejon/conceptmap/pkg/observability"
	"github.com/paupedrejon/conceptmap/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning API over HTTP",
		Long: `Serve the planning API over HTTP.

Endpoints:
  POST /v1/plan     plan a model answer (JSON {"text": ...} or text/plain)
  POST /v1/render   render it (?format=svg|dot|json&engine=native|graphviz)
  GET  /v1/events   server-sent events for every planned diagram
  GET  /v1/stats    pipeline and cache counters
  GET  /healthz     liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counters := observability.NewCounters()
			n := notify.New(0)

			runner, err := c.newRunner(cmd.Context(),
				pipeline.WithHooks(counters.Hooks()),
				pipeline.WithPublisher(n))
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg := c.Config
			printInfo("Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
			printKeyValue("cache", cfg.Cache.Backend)
			if cfg.File != "" {
				printKeyValue("config", cfg.File)
			}

			srv := server.New(server.Config{
				Addr:            cfg.Server.Addr,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
				Layout:          cfg.Layout,
				Runner:          runner,
				Notifier:        n,
				Counters:        counters,
				Logger:          c.Logger,
			})
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	return cmd
}
