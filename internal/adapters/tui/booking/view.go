package booking

import (
	"fmt"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var lines []string
	switch m.workflow.Stage() {
	case domain.StageSelectingDoctor:
		lines = m.doctorsView()
	case domain.StageSelectingSlot:
		lines = m.slotsView()
	case domain.StageEnteringDetails:
		lines = m.detailsView()
	case domain.StageConfirmed:
		lines = m.confirmedView()
	}

	if m.message != "" {
		lines = append(lines, "", m.styles.warning.Render(m.message))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m Model) doctorsView() []string {
	lines := []string{
		m.styles.title.Render(m.tr.T("patient.bookConsultation")),
		m.styles.subtitle.Render(m.tr.T("patient.selectDoctor")),
		"",
	}

	for i, doctor := range m.doctors {
		status := "online"
		if !doctor.IsOnline {
			status = "offline"
		}
		line := fmt.Sprintf("%s · %s · ₹%d · %s",
			doctor.Name.In(m.tr.Locale),
			doctor.Specialty.In(m.tr.Locale),
			doctor.FeeAmount,
			status,
		)
		lines = append(lines, m.row(i, line, doctor.IsOnline))
	}

	return append(lines, "", m.styles.muted.Render("↑/↓ move · enter select · q quit"))
}

func (m Model) slotsView() []string {
	draft := m.workflow.Draft()
	lines := []string{
		m.styles.title.Render(m.tr.T("patient.selectTimeSlot")),
		m.styles.subtitle.Render(doctorLine(draft.Doctor, m.tr.Locale)),
		"",
	}

	for i, option := range m.slots {
		lines = append(lines, m.row(i, fmt.Sprintf("%-9s %s %s", option.day.Label, option.day.Date, option.time), true))
	}

	return append(lines, "", m.styles.muted.Render("↑/↓ move · enter select · esc back"))
}

func (m Model) detailsView() []string {
	draft := m.workflow.Draft()
	video, phone := "( )", "( )"
	if m.consultation == domain.ConsultationVideo {
		video = "(•)"
	} else {
		phone = "(•)"
	}

	return []string{
		m.styles.title.Render(m.tr.T("patient.confirmBooking")),
		m.styles.subtitle.Render(doctorLine(draft.Doctor, m.tr.Locale)),
		m.styles.item.Render(fmt.Sprintf("%s at %s", draft.Date, draft.Time)),
		"",
		m.styles.item.Render(fmt.Sprintf("%s %s   %s %s", video, domain.ConsultationVideo.Label(), phone, domain.ConsultationPhone.Label())),
		"",
		m.notes.View(),
		"",
		m.styles.muted.Render("tab switch type · enter confirm · esc back"),
	}
}

func (m Model) confirmedView() []string {
	record, _ := m.workflow.Record()

	return []string{
		m.styles.success.Render("Booking Confirmed!"),
		m.styles.item.Render(record.DoctorName.In(m.tr.Locale)),
		m.styles.item.Render(fmt.Sprintf("%s at %s", record.Date, record.Time)),
		m.styles.item.Render(fmt.Sprintf("Type: %s", record.ConsultationType.Label())),
		"",
		m.styles.muted.Render("enter done · n book another"),
	}
}

func (m Model) row(i int, text string, enabled bool) string {
	if i == m.cursor {
		return m.styles.cursor.Render("› " + text)
	}
	if !enabled {
		return m.styles.muted.Render("  " + text)
	}

	return m.styles.item.Render("  " + text)
}

func doctorLine(doctor *domain.Doctor, locale domain.Locale) string {
	if doctor == nil {
		return ""
	}

	return fmt.Sprintf("%s · %s · ₹%d", doctor.Name.In(locale), doctor.Specialty.In(locale), doctor.FeeAmount)
}
