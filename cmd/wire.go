package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bnema/rural-health-connect/internal/adapters/fixtures"
	tomlrepo "github.com/bnema/rural-health-connect/internal/adapters/repo/toml"
	filestore "github.com/bnema/rural-health-connect/internal/adapters/storage/file"
	"github.com/bnema/rural-health-connect/internal/application"
	"github.com/bnema/rural-health-connect/internal/config"
	"github.com/bnema/rural-health-connect/internal/observability"
	"github.com/bnema/rural-health-connect/internal/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const dotEnvFile = ".env"

type app struct {
	cfg        *config.Config
	logger     zerolog.Logger
	clock      ports.Clock
	identities *fixtures.Identities
	doctors    *fixtures.Doctors
	bookings   *application.BookingService

	sessions *application.SessionStore
	guard    *application.RouteGuard
	locales  *application.LocaleService
}

// errWriter resolves the command's stderr on every write so output
// redirected after wiring still receives log lines.
type errWriter struct {
	cmd *cobra.Command
}

func (w errWriter) Write(p []byte) (int, error) {
	return w.cmd.ErrOrStderr().Write(p)
}

func wireApp(logOutput io.Writer) (*app, error) {
	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := config.Load(homeDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(logOutput, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	identities, err := fixtures.LoadIdentities()
	if err != nil {
		return nil, fmt.Errorf("load identities: %w", err)
	}

	doctors, err := fixtures.LoadDoctors()
	if err != nil {
		return nil, fmt.Errorf("load doctors: %w", err)
	}

	repo, err := tomlrepo.NewRepository(cfg.Viper())
	if err != nil {
		return nil, fmt.Errorf("wire booking repository: %w", err)
	}

	a := &app{
		cfg:        cfg,
		logger:     logger,
		clock:      ports.SystemClock{},
		identities: identities,
		doctors:    doctors,
	}
	a.bookings = application.NewBookingService(repo, a.clock, logger.With().Str("component", "bookings").Logger())
	a.attachStore(context.Background(), filestore.NewStore(cfg.Storage.Path))

	return a, nil
}

// attachStore rebuilds the session-scoped services on top of store and
// rehydrates the session from it.
func (a *app) attachStore(ctx context.Context, store ports.KeyValueStore) {
	a.sessions = application.NewSessionStore(store, a.identities,
		application.WithRoleSwitch(a.cfg.Session.AllowRoleSwitch),
		application.WithSessionLogger(a.logger.With().Str("component", "session").Logger()),
	)
	a.sessions.Initialize(ctx)

	a.guard = application.NewRouteGuard(a.sessions,
		application.WithStrictRoles(a.cfg.Guard.StrictRoles),
		application.WithGuardLogger(a.logger.With().Str("component", "guard").Logger()),
	)
	a.locales = application.NewLocaleService(store, a.logger.With().Str("component", "locale").Logger())
}

func (a *app) newWorkflow() *application.BookingWorkflow {
	return application.NewBookingWorkflow(a.doctors, a.sessions, a.clock,
		application.WithRequiredSymptomNotes(a.cfg.Booking.RequireSymptomNotes),
		application.WithWorkflowLogger(a.logger.With().Str("component", "booking").Logger()),
	)
}
