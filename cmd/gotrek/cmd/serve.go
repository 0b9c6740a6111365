package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gotrek/gotrek/internal/api"
	"github.com/gotrek/gotrek/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the accounts API over HTTP",
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (defaults to $PORT)")

	cmd.RunE = a.run(func(cmd *cobra.Command, _ []string) error {
		if port == "" {
			port = a.cfg.Port
		}

		e := api.NewRouter(api.Deps{
			Sessions: a.sessions,
			Store:    a.store,
			Backend:  a.cfg.Store.Backend,
			Log:      logger.Component("http"),
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		done := make(chan error, 1)
		go func() {
			a.log.Info().Str("port", port).Str("backend", a.cfg.Store.Backend).Msg("listening")
			if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- err
				return
			}
			done <- nil
		}()

		select {
		case <-ctx.Done():
			a.log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		case err := <-done:
			return err
		}
	})
	return cmd
}
