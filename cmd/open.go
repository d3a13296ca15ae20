package cmd

import (
	"fmt"

	"github.com/bnema/rural-health-connect/internal/adapters/render/portal"
	"github.com/bnema/rural-health-connect/internal/application"
	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/spf13/cobra"
)

func newOpenCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open [path]",
		Short: "Open a portal view, following login and landing redirects",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := domain.LandingPath
			if len(args) == 1 {
				path = args[0]
			}

			decision := app.guard.Decide(path)
			switch decision.Outcome {
			case application.OutcomeForbidden:
				return fmt.Errorf("%s: %w for role %s (home: %s)", decision.View.Path, errForbidden, app.sessions.Current().Role(), decision.Location)
			case application.OutcomeRedirectLogin, application.OutcomeRedirectLanding:
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "redirected to %s\n", decision.Location)
				decision = app.guard.Decide(loginTarget(app, decision))
			}

			return renderView(cmd, app, decision.View)
		},
	}
}

// loginTarget sends /login to the entry point of the last known role.
func loginTarget(app *app, decision application.Decision) string {
	if decision.Outcome != application.OutcomeRedirectLogin {
		return decision.Location
	}

	role := app.sessions.Current().Role()
	if !role.Valid() {
		role = domain.RolePatient
	}

	return domain.LoginPathFor(role)
}

func renderView(cmd *cobra.Command, app *app, view domain.View) error {
	ctx := cmd.Context()
	session := app.sessions.Current()
	page := portal.Page{View: view, Session: session}

	if identity, ok := session.Identity(); ok && identity.Role == domain.RolePatient && view.Path == domain.HomePath(domain.RolePatient) {
		upcoming, err := app.bookings.Upcoming(ctx, identity.ID)
		if err != nil {
			return err
		}
		page.Upcoming = upcoming
	}

	rendered, err := portal.RenderPage(page, portal.RenderOptions{Locale: app.locales.Current(ctx)})
	if err != nil {
		return fmt.Errorf("render view: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
