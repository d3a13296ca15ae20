// Package web serves the portal over HTTP. Every page goes through the
// same route guard the CLI uses.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bnema/rural-health-connect/internal/application"
	"github.com/bnema/rural-health-connect/internal/ports"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

type Deps struct {
	Sessions *application.SessionStore
	Guard    *application.RouteGuard
	Doctors  ports.DoctorDirectory
	Bookings *application.BookingService
	Locales  *application.LocaleService
	// NewWorkflow returns a fresh booking workflow for one request.
	NewWorkflow func() *application.BookingWorkflow
	Logger      zerolog.Logger
}

type handler struct {
	deps Deps
}

func NewServer(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(RequestID())
	e.Use(Logger(deps.Logger))
	e.Use(Recovery(deps.Logger))

	h := &handler{deps: deps}

	e.POST("/login/:role", h.login)
	e.POST("/logout", h.logout)
	e.POST("/switch-role/:role", h.switchRole)

	api := e.Group("/api")
	api.GET("/session", h.session)
	api.GET("/doctors", h.doctors)
	api.GET("/bookings", h.listBookings, RequireView(deps.Guard, "/patient"))
	api.POST("/bookings", h.createBooking, RequireView(deps.Guard, "/patient/book"))
	api.GET("/locale", h.locale)
	api.PUT("/locale", h.setLocale)

	e.GET("/*", h.page)

	return e
}

// Serve runs e on addr until ctx is canceled, then shuts it down.
func Serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
