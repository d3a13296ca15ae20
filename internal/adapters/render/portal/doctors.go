package portal

import (
	"fmt"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/i18n"
	"github.com/charmbracelet/lipgloss"
)

func RenderDoctors(doctors []domain.Doctor, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderDoctors(doctors, opts.translator(), s)
	})
}

func renderDoctors(doctors []domain.Doctor, tr i18n.Translator, s styles) string {
	lines := []string{
		s.title.Render(tr.T("patient.selectDoctor")),
		s.header.Render(fmt.Sprintf("doctors: %d", len(doctors))),
	}

	if len(doctors) == 0 {
		lines = append(lines, s.empty.Render("No doctors available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, doctor := range doctors {
		lines = append(lines, s.section.Render(renderDoctor(doctor, tr, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderDoctor(doctor domain.Doctor, tr i18n.Translator, s styles) string {
	badge := s.online.Render("Online")
	if !doctor.IsOnline {
		badge = s.offline.Render("Offline")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		s.identity.Render(fmt.Sprintf("%s (%s)", doctor.Name.In(tr.Locale), doctor.ID))+" "+badge,
		s.detail.Render(fmt.Sprintf("%s · %s", doctor.Specialty.In(tr.Locale), doctor.Qualification)),
		s.meta.Render(fmt.Sprintf(
			"rating %.1f · %d years experience · %d consultations",
			doctor.RatingScore,
			doctor.ExperienceYears,
			doctor.TotalConsultations,
		)),
		s.fee.Render(formatFee(doctor.FeeAmount)),
	)
}

func formatFee(amount int) string {
	return fmt.Sprintf("₹%d", amount)
}
