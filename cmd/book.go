package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/rural-health-connect/internal/adapters/render/portal"
	bookingtui "github.com/bnema/rural-health-connect/internal/adapters/tui/booking"
	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/spf13/cobra"
)

var errBookingRejected = errors.New("booking rejected")

func newDoctorsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "List doctors available for consultation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doctors := app.doctors.List()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(doctors)
			}

			rendered, err := portal.RenderDoctors(doctors, portal.RenderOptions{Locale: app.locales.Current(cmd.Context())})
			if err != nil {
				return fmt.Errorf("render doctors: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return withView(cmd, "/patient/book")
}

type bookFlags struct {
	doctorID     string
	date         string
	time         string
	consultation string
	notes        string
	interactive  bool
}

func newBookCmd(app *app) *cobra.Command {
	var flags bookFlags

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a consultation with an online doctor",
		Long:  "Book a consultation. Pass --doctor, --date and --time, or use -i for the interactive wizard. --date accepts YYYY-MM-DD, tomorrow or day-after.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.interactive {
				return runBookingWizard(cmd, app)
			}
			if flags.doctorID == "" || flags.date == "" || flags.time == "" {
				return errors.New("--doctor, --date and --time are required unless -i is set")
			}
			return runBooking(cmd, app, flags)
		},
	}

	cmd.Flags().StringVar(&flags.doctorID, "doctor", "", "Doctor ID (see `rhc doctors`)")
	cmd.Flags().StringVar(&flags.date, "date", "", "Consultation date: YYYY-MM-DD, tomorrow or day-after")
	cmd.Flags().StringVar(&flags.time, "time", "", "Half-hour slot, e.g. 09:30")
	cmd.Flags().StringVar(&flags.consultation, "type", string(domain.ConsultationVideo), "Consultation type (video, phone)")
	cmd.Flags().StringVar(&flags.notes, "notes", "", "Symptom notes")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Book with the interactive wizard")

	return withView(cmd, "/patient/book")
}

func runBooking(cmd *cobra.Command, app *app, flags bookFlags) error {
	workflow := app.newWorkflow()

	if !workflow.SelectDoctor(domain.DoctorID(flags.doctorID)) {
		if _, ok := app.doctors.GetByID(domain.DoctorID(flags.doctorID)); !ok {
			return fmt.Errorf("%w: %w: %s", errBookingRejected, domain.ErrDoctorNotFound, flags.doctorID)
		}
		return fmt.Errorf("%w: doctor %s is offline", errBookingRejected, flags.doctorID)
	}

	date := resolveDay(workflow.Days(), flags.date)
	if !workflow.SelectSlot(date, flags.time) {
		return fmt.Errorf("%w: %s %s is not an offered slot", errBookingRejected, flags.date, flags.time)
	}

	consultation := domain.ConsultationType(strings.ToLower(strings.TrimSpace(flags.consultation)))
	notes := strings.TrimSpace(flags.notes)
	if !workflow.Confirm(consultation, notes) {
		if !consultation.Valid() {
			return fmt.Errorf("%w: consultation type %q is not video or phone", errBookingRejected, flags.consultation)
		}
		return fmt.Errorf("%w: symptom notes are required", errBookingRejected)
	}

	record, _ := workflow.Record()
	return saveAndConfirm(cmd, app, record)
}

// resolveDay maps the tomorrow and day-after shorthands onto offered days.
func resolveDay(days []domain.SlotDay, raw string) string {
	shorthand := strings.ToLower(strings.TrimSpace(raw))
	for i, name := range []string{"tomorrow", "day-after"} {
		if shorthand == name && i < len(days) {
			return days[i].Date
		}
	}

	return raw
}

func runBookingWizard(cmd *cobra.Command, app *app) error {
	locale := app.locales.Current(cmd.Context())

	model, err := bookingtui.Run(app.newWorkflow(), locale, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("booking wizard: %w", err)
	}

	records := model.Confirmed()
	if len(records) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No booking made")
		return nil
	}

	for _, record := range records {
		if err := saveAndConfirm(cmd, app, record); err != nil {
			return err
		}
	}

	return nil
}

func saveAndConfirm(cmd *cobra.Command, app *app, record domain.BookingRecord) error {
	if err := app.bookings.Save(cmd.Context(), record); err != nil {
		return err
	}

	rendered, err := portal.RenderConfirmation(record, portal.RenderOptions{Locale: app.locales.Current(cmd.Context())})
	if err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func newBookingsCmd(app *app) *cobra.Command {
	var (
		upcoming bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List your confirmed consultations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, _ := app.sessions.Current().Identity()

			list := app.bookings.History
			if upcoming {
				list = app.bookings.Upcoming
			}

			records, err := list(cmd.Context(), identity.ID)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			rendered, err := portal.RenderBookings(records, portal.RenderOptions{Locale: app.locales.Current(cmd.Context())})
			if err != nil {
				return fmt.Errorf("render bookings: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "Only bookings dated today or later")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return withView(cmd, "/patient")
}
