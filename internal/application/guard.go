package application

import (
	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/rs/zerolog"
)

type Outcome string

const (
	OutcomeRender          Outcome = "render"
	OutcomeRedirectLogin   Outcome = "redirect_login"
	OutcomeRedirectLanding Outcome = "redirect_landing"
	OutcomeForbidden       Outcome = "forbidden"
)

// Decision is the guard's answer for one navigation. Location is set for
// redirects and, on forbidden, points at the acting role's home.
type Decision struct {
	Outcome  Outcome
	View     domain.View
	Location string
}

type SessionReader interface {
	Current() domain.Session
}

type GuardOption func(*RouteGuard)

// WithStrictRoles makes the guard refuse views that belong to another role.
func WithStrictRoles(strict bool) GuardOption {
	return func(g *RouteGuard) {
		g.strictRoles = strict
	}
}

func WithGuardLogger(logger zerolog.Logger) GuardOption {
	return func(g *RouteGuard) {
		g.logger = logger
	}
}

type RouteGuard struct {
	sessions    SessionReader
	strictRoles bool
	logger      zerolog.Logger
}

func NewRouteGuard(sessions SessionReader, opts ...GuardOption) *RouteGuard {
	g := &RouteGuard{sessions: sessions, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Decide reads the session once per call. By default any signed-in
// identity may open any protected view.
func (g *RouteGuard) Decide(path string) Decision {
	view, ok := domain.LookupView(path)
	if !ok {
		g.logger.Debug().Str("path", path).Msg("unknown view")
		return Decision{Outcome: OutcomeRedirectLanding, Location: domain.LandingPath}
	}
	if view.Public {
		return Decision{Outcome: OutcomeRender, View: view}
	}

	session := g.sessions.Current()
	if !session.IsAuthenticated() {
		g.logger.Debug().Str("path", view.Path).Msg("redirecting to login")
		return Decision{Outcome: OutcomeRedirectLogin, View: view, Location: domain.LoginPath}
	}

	if g.strictRoles && view.RequiredRole != "" && session.Role() != view.RequiredRole {
		g.logger.Info().
			Str("path", view.Path).
			Str("role", string(session.Role())).
			Str("required_role", string(view.RequiredRole)).
			Msg("view forbidden for role")
		return Decision{Outcome: OutcomeForbidden, View: view, Location: domain.HomePath(session.Role())}
	}

	return Decision{Outcome: OutcomeRender, View: view}
}

func (g *RouteGuard) StrictRoles() bool {
	return g.strictRoles
}
