// Package portal renders portal pages, doctor lists and booking records as
// terminal text.
package portal

import (
	"fmt"
	"strings"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/i18n"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Locale domain.Locale
}

func (o RenderOptions) translator() i18n.Translator {
	locale := o.Locale
	if !locale.Valid() {
		locale = domain.DefaultLocale
	}

	return i18n.Translator{Locale: locale}
}

// Page is everything needed to draw one view.
type Page struct {
	View     domain.View
	Session  domain.Session
	Upcoming []domain.BookingRecord
}

func RenderPage(page Page, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderPage(page, opts, s)
	})
}

func renderPage(page Page, opts RenderOptions, s styles) string {
	tr := opts.translator()
	lines := []string{s.title.Render(ViewTitle(page.View, tr))}

	if identity, ok := page.Session.Identity(); ok {
		lines = append(lines, s.header.Render(fmt.Sprintf("%s, %s", tr.T("common.welcome"), s.identity.Render(identity.DisplayName))))
		lines = append(lines, s.header.Render(fmt.Sprintf("role: %s", identity.Role)))
	}

	if page.View.Description != "" {
		lines = append(lines, s.detail.Render(page.View.Description))
	}

	switch {
	case page.View.Path == domain.LandingPath:
		lines = append(lines, s.section.Render(renderLoginEntries(s)))
	case strings.HasPrefix(page.View.Path, domain.LoginPath):
		lines = append(lines, s.section.Render(renderLoginHint(tr, s)))
	}

	if page.Session.IsAuthenticated() && !page.View.Public {
		lines = append(lines, s.section.Render(renderMenu(page.Session.Role(), page.View.Path, tr, s)))
	}

	if page.View.Path == domain.HomePath(domain.RolePatient) && page.Session.Role() == domain.RolePatient {
		lines = append(lines, s.section.Render(renderUpcoming(page.Upcoming, tr, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// ViewTitle prefers the translated title key and falls back to the fixed
// title.
func ViewTitle(view domain.View, tr i18n.Translator) string {
	if view.TitleKey != "" {
		return tr.T(view.TitleKey)
	}
	if view.Title != "" {
		return view.Title
	}

	return view.Path
}

func renderLoginEntries(s styles) string {
	lines := make([]string, 0, len(domain.Roles))
	for _, role := range domain.Roles {
		lines = append(lines, s.menuItem.Render(fmt.Sprintf("  %-14s %s", role.LoginTitle(), domain.LoginPathFor(role))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderLoginHint(tr i18n.Translator, s styles) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		s.detail.Render(fmt.Sprintf("1. %s (10+ digits)", tr.T("patient.phoneNumber"))),
		s.detail.Render(fmt.Sprintf("2. %s (4 digits)", tr.T("patient.enterOTP"))),
	)
}

func renderMenu(role domain.Role, activePath string, tr i18n.Translator, s styles) string {
	items := domain.MenuFor(role)
	lines := make([]string, 0, len(items))
	for _, item := range items {
		label := item.Label
		if item.LabelKey != "" {
			label = tr.T(item.LabelKey)
		}

		line := fmt.Sprintf("  %s  %s", label, item.Path)
		if item.Path == activePath {
			lines = append(lines, s.menuActive.Render("›"+line[1:]))
			continue
		}
		lines = append(lines, s.menuItem.Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderUpcoming(records []domain.BookingRecord, tr i18n.Translator, s styles) string {
	lines := []string{s.title.Render(tr.T("patient.upcomingAppointments"))}
	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No upcoming appointments."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		lines = append(lines, s.detail.Render(fmt.Sprintf(
			"  %s %s  %s  %s",
			record.Date,
			record.Time,
			record.DoctorName.In(tr.Locale),
			record.ConsultationType.Label(),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
