package portal

import (
	"fmt"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/i18n"
	"github.com/charmbracelet/lipgloss"
)

// RenderConfirmation draws the summary shown once a booking is confirmed.
func RenderConfirmation(record domain.BookingRecord, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		tr := opts.translator()
		return lipgloss.JoinVertical(
			lipgloss.Left,
			s.success.Render("Booking Confirmed!"),
			s.detail.Render("Your consultation has been successfully booked"),
			s.section.Render(renderRecord(record, tr, s)),
		)
	})
}

func RenderBookings(records []domain.BookingRecord, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderBookings(records, opts.translator(), s)
	})
}

func renderBookings(records []domain.BookingRecord, tr i18n.Translator, s styles) string {
	lines := []string{
		s.title.Render(tr.T("patient.upcomingAppointments")),
		s.header.Render(fmt.Sprintf("bookings: %d", len(records))),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No bookings yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		lines = append(lines, s.section.Render(renderRecord(record, tr, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRecord(record domain.BookingRecord, tr i18n.Translator, s styles) string {
	lines := []string{
		s.identity.Render(record.DoctorName.In(tr.Locale)),
		s.detail.Render(fmt.Sprintf("%s · %s", record.DoctorSpecialty.In(tr.Locale), formatFee(record.FeeAmount))),
		s.detail.Render(fmt.Sprintf("%s at %s", record.Date, record.Time)),
		s.detail.Render(fmt.Sprintf("Type: %s", record.ConsultationType.Label())),
	}
	if record.SymptomNotes != "" {
		lines = append(lines, s.meta.Render(fmt.Sprintf("Symptoms: %s", record.SymptomNotes)))
	}
	lines = append(lines, s.meta.Render(fmt.Sprintf("booking %s", record.ID)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
