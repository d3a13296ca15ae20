package application

import (
	"testing"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/stretchr/testify/assert"
)

type staticSession domain.Session

func (s staticSession) Current() domain.Session {
	return domain.Session(s)
}

func signedIn(role domain.Role) staticSession {
	return staticSession(domain.NewSession(domain.Identity{ID: "X1", DisplayName: "Tester", Role: role}))
}

func TestRouteGuardUnauthenticatedProtectedViewsRedirectToLogin(t *testing.T) {
	guard := NewRouteGuard(staticSession{})

	for _, view := range domain.Views {
		if view.Public {
			continue
		}
		decision := guard.Decide(view.Path)
		assert.Equal(t, OutcomeRedirectLogin, decision.Outcome, view.Path)
		assert.Equal(t, domain.LoginPath, decision.Location, view.Path)
	}
}

func TestRouteGuardAuthenticatedRendersEveryViewRegardlessOfRole(t *testing.T) {
	for _, role := range domain.Roles {
		guard := NewRouteGuard(signedIn(role))

		for _, view := range domain.Views {
			decision := guard.Decide(view.Path)
			assert.Equal(t, OutcomeRender, decision.Outcome, "%s on %s", role, view.Path)
			assert.Equal(t, view, decision.View)
		}
	}
}

func TestRouteGuardPublicViewsAlwaysRender(t *testing.T) {
	guard := NewRouteGuard(staticSession{}, WithStrictRoles(true))

	for _, path := range []string{"/", "/login", "/login/patient", "/login/admin/"} {
		assert.Equal(t, OutcomeRender, guard.Decide(path).Outcome, path)
	}
}

func TestRouteGuardUnknownPathRedirectsToLanding(t *testing.T) {
	sessions := []staticSession{{}, signedIn(domain.RoleAdmin)}

	for _, session := range sessions {
		decision := NewRouteGuard(session).Decide("/patient/unknown")
		assert.Equal(t, OutcomeRedirectLanding, decision.Outcome)
		assert.Equal(t, domain.LandingPath, decision.Location)
	}
}

func TestRouteGuardStrictRolesForbidsOtherRolesViews(t *testing.T) {
	guard := NewRouteGuard(signedIn(domain.RolePatient), WithStrictRoles(true))

	assert.Equal(t, OutcomeRender, guard.Decide("/patient/book").Outcome)

	decision := guard.Decide("/admin/users")
	assert.Equal(t, OutcomeForbidden, decision.Outcome)
	assert.Equal(t, "/patient", decision.Location)
	assert.Equal(t, domain.RoleAdmin, decision.View.RequiredRole)
	assert.True(t, guard.StrictRoles())
}

func TestRouteGuardStrictRolesStillRedirectsAnonymousToLogin(t *testing.T) {
	guard := NewRouteGuard(staticSession{}, WithStrictRoles(true))

	assert.Equal(t, OutcomeRedirectLogin, guard.Decide("/doctor").Outcome)
}
