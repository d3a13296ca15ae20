package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/bnema/rural-health-connect/internal/adapters/storage/memory"
	"github.com/bnema/rural-health-connect/internal/adapters/web"
	"github.com/spf13/cobra"
)

func newServeCmd(app *app) *cobra.Command {
	var (
		addr      string
		ephemeral bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portal over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if ephemeral {
				app.attachStore(ctx, memory.NewStore())
			}
			if addr == "" {
				addr = app.cfg.Server.Addr
			}

			e := web.NewServer(web.Deps{
				Sessions:    app.sessions,
				Guard:       app.guard,
				Doctors:     app.doctors,
				Bookings:    app.bookings,
				Locales:     app.locales,
				NewWorkflow: app.newWorkflow,
				Logger:      app.logger.With().Str("component", "http").Logger(),
			})

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving Rural Health Connect on http://%s\n", addr)
			return web.Serve(ctx, e, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "Keep session and language in memory only")

	return cmd
}
