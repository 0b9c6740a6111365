package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gotrek/gotrek/internal/api/handler"
	"github.com/gotrek/gotrek/internal/core/domain"
	"github.com/gotrek/gotrek/internal/core/forms"
	"github.com/gotrek/gotrek/internal/core/ports"
	"github.com/gotrek/gotrek/internal/core/service"
	"github.com/gotrek/gotrek/internal/infrastructure/db"
	"github.com/gotrek/gotrek/internal/pkg/config"
	"github.com/gotrek/gotrek/pkg/logger"
)

// app is the per-invocation wiring shared by every subcommand.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	store    db.Backend
	sessions *service.SessionService
	forms    *forms.Validator
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gotrek",
		Short: "GoTrek accounts: sign up, sign in and see your dashboard",
		Long: `gotrek keeps GoTrek accounts and the signed-in user in a local profile
store (a bbolt or sqlite file by default) and can serve the same store over HTTP.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(a),
		newSignupCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context, nav ports.Navigator) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})

	store, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	a.store = store

	credentials := service.NewCredentialStore(store, domain.CorruptPolicy(cfg.Store.CorruptPolicy), logger.Component("credentials"))
	a.sessions = service.NewSessionService(credentials, nil, nav, logger.Component("session"))
	a.forms = forms.NewValidator()

	if err := a.sessions.Restore(ctx); err != nil {
		_ = a.close()
		return err
	}
	return nil
}

// run wraps a subcommand so the store is opened only for commands that use it
// and closed however they exit. The bbolt file stays locked while open.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var nav ports.Navigator = printNavigator{out: cmd.OutOrStdout()}
		if cmd.Name() == "serve" {
			// HTTP callers learn the route from the response body.
			nav = handler.ContextNavigator{}
		}
		if err := a.open(cmd.Context(), nav); err != nil {
			return err
		}
		defer func() {
			if err := a.close(); err != nil {
				a.log.Warn().Err(err).Msg("closing store")
			}
		}()
		return fn(cmd, args)
	}
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// printNavigator tells the terminal user where the web UI would go next.
type printNavigator struct {
	out io.Writer
}

func (n printNavigator) Navigate(_ context.Context, route string) {
	fmt.Fprintf(n.out, "→ %s\n", route)
}
