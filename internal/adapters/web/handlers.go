package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bnema/rural-health-connect/internal/adapters/render/portal"
	"github.com/bnema/rural-health-connect/internal/application"
	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/labstack/echo/v4"
)

func (h *handler) page(c echo.Context) error {
	decision := h.deps.Guard.Decide(c.Request().URL.Path)

	switch decision.Outcome {
	case application.OutcomeRedirectLogin, application.OutcomeRedirectLanding:
		return c.Redirect(http.StatusFound, decision.Location)
	case application.OutcomeForbidden:
		return echo.NewHTTPError(http.StatusForbidden, "this page belongs to the "+string(decision.View.RequiredRole)+" role")
	}

	ctx := c.Request().Context()
	session := h.deps.Sessions.Current()
	page := portal.Page{View: decision.View, Session: session}

	if identity, ok := session.Identity(); ok && identity.Role == domain.RolePatient && decision.View.Path == domain.HomePath(domain.RolePatient) {
		upcoming, err := h.deps.Bookings.Upcoming(ctx, identity.ID)
		if err != nil {
			return err
		}
		page.Upcoming = upcoming
	}

	body, err := portal.RenderPage(page, portal.RenderOptions{Locale: h.deps.Locales.Current(ctx)})
	if err != nil {
		return err
	}

	return c.String(http.StatusOK, body+"\n")
}

func (h *handler) login(c echo.Context) error {
	role, err := domain.ParseRole(c.Param("role"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid login request")
	}

	if !application.ValidContactHandle(req.ContactHandle) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "contact handle must have at least 10 characters")
	}

	ok, err := h.deps.Sessions.Login(c.Request().Context(), req.ContactHandle, req.Code, role)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid code")
	}

	return c.JSON(http.StatusOK, toSessionResponse(h.deps.Sessions.Current()))
}

func (h *handler) logout(c echo.Context) error {
	if err := h.deps.Sessions.Logout(c.Request().Context()); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSessionResponse(h.deps.Sessions.Current()))
}

func (h *handler) switchRole(c echo.Context) error {
	role, err := domain.ParseRole(c.Param("role"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	if err := h.deps.Sessions.SwitchRole(c.Request().Context(), role); err != nil {
		if errors.Is(err, domain.ErrRoleSwitchDisabled) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusOK, toSessionResponse(h.deps.Sessions.Current()))
}

func (h *handler) session(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.deps.Sessions.Current()))
}

func (h *handler) doctors(c echo.Context) error {
	locale := h.deps.Locales.Current(c.Request().Context())
	doctors := h.deps.Doctors.List()

	resp := make([]doctorResponse, 0, len(doctors))
	for _, doctor := range doctors {
		resp = append(resp, toDoctorResponse(doctor, locale))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *handler) listBookings(c echo.Context) error {
	ctx := c.Request().Context()
	identity, _ := h.deps.Sessions.Current().Identity()

	records, err := h.deps.Bookings.History(ctx, identity.ID)
	if err != nil {
		return err
	}

	locale := h.deps.Locales.Current(ctx)
	resp := make([]bookingResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, toBookingResponse(record, locale))
	}

	return c.JSON(http.StatusOK, resp)
}

// createBooking drives a fresh workflow through every stage in one request.
// The first refused step is reported with the stage it was refused in.
func (h *handler) createBooking(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking request")
	}

	consultation := domain.ConsultationType(strings.ToLower(strings.TrimSpace(req.ConsultationType)))
	if consultation == "" {
		consultation = domain.ConsultationVideo
	}

	workflow := h.deps.NewWorkflow()
	if !workflow.SelectDoctor(domain.DoctorID(req.DoctorID)) {
		return rejectBooking(c, workflow, "doctor is unknown or offline")
	}
	if !workflow.SelectSlot(req.Date, req.Time) {
		return rejectBooking(c, workflow, "slot is not offered")
	}
	if !workflow.Confirm(consultation, req.SymptomNotes) {
		return rejectBooking(c, workflow, "booking details are incomplete")
	}

	record, _ := workflow.Record()
	ctx := c.Request().Context()
	if err := h.deps.Bookings.Save(ctx, record); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toBookingResponse(record, h.deps.Locales.Current(ctx)))
}

func rejectBooking(c echo.Context, workflow *application.BookingWorkflow, message string) error {
	return c.JSON(http.StatusUnprocessableEntity, bookingRejection{
		Message: message,
		Stage:   string(workflow.Stage()),
	})
}

func (h *handler) locale(c echo.Context) error {
	return c.JSON(http.StatusOK, localeRequest{Locale: string(h.deps.Locales.Current(c.Request().Context()))})
}

func (h *handler) setLocale(c echo.Context) error {
	var req localeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid locale request")
	}

	locale, err := domain.ParseLocale(req.Locale)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.deps.Locales.Set(c.Request().Context(), locale); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, localeRequest{Locale: string(locale)})
}
