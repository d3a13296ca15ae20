package domain

import (
	"slices"
	"time"
)

type Stage string

const (
	StageSelectingDoctor Stage = "selecting_doctor"
	StageSelectingSlot   Stage = "selecting_slot"
	StageEnteringDetails Stage = "entering_details"
	StageConfirmed       Stage = "confirmed"
)

type ConsultationType string

const (
	ConsultationVideo ConsultationType = "video"
	ConsultationPhone ConsultationType = "phone"
)

func (c ConsultationType) Valid() bool {
	return c == ConsultationVideo || c == ConsultationPhone
}

func (c ConsultationType) Label() string {
	switch c {
	case ConsultationVideo:
		return "Video Call"
	case ConsultationPhone:
		return "Phone Call"
	default:
		return string(c)
	}
}

// DateLayout is the calendar-day format used for slot dates.
const DateLayout = "2006-01-02"

// SlotTimes is the canonical set of half-hour marks offered on every day.
// There is no lunch-hour block.
var SlotTimes = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

type SlotDay struct {
	Label string
	Date  string
}

// OfferedDays returns tomorrow and the day after, relative to now.
func OfferedDays(now time.Time) []SlotDay {
	return []SlotDay{
		{Label: "Tomorrow", Date: now.AddDate(0, 0, 1).Format(DateLayout)},
		{Label: "Day After", Date: now.AddDate(0, 0, 2).Format(DateLayout)},
	}
}

// BookingStage is one step of the booking wizard. Only the types in this
// file implement it.
type BookingStage interface {
	Stage() Stage
	bookingStage()
}

type SelectingDoctor struct{}

type SelectingSlot struct {
	doctor Doctor
	days   []SlotDay
	date   string
	time   string
}

type EnteringDetails struct {
	doctor           Doctor
	date             string
	time             string
	consultationType ConsultationType
	symptomNotes     string
}

type Confirmed struct {
	doctor Doctor
	record BookingRecord
}

func (SelectingDoctor) Stage() Stage { return StageSelectingDoctor }
func (SelectingSlot) Stage() Stage   { return StageSelectingSlot }
func (EnteringDetails) Stage() Stage { return StageEnteringDetails }
func (Confirmed) Stage() Stage       { return StageConfirmed }

func (SelectingDoctor) bookingStage() {}
func (SelectingSlot) bookingStage()   {}
func (EnteringDetails) bookingStage() {}
func (Confirmed) bookingStage()       {}

// ChooseDoctor moves to slot selection. Offline doctors are refused.
func (SelectingDoctor) ChooseDoctor(doctor Doctor, now time.Time) (SelectingSlot, bool) {
	if doctor.ID == "" || !doctor.IsOnline {
		return SelectingSlot{}, false
	}

	return SelectingSlot{doctor: doctor, days: OfferedDays(now)}, true
}

func (s SelectingSlot) Doctor() Doctor { return s.doctor }

func (s SelectingSlot) Days() []SlotDay { return slices.Clone(s.days) }

// Preselected reports the date and time kept from a step back, if any.
func (s SelectingSlot) Preselected() (string, string, bool) {
	return s.date, s.time, s.date != "" && s.time != ""
}

// ChooseSlot accepts only an offered day and a canonical time mark. No
// check is made against other bookings.
func (s SelectingSlot) ChooseSlot(date, clock string) (EnteringDetails, bool) {
	if !s.offers(date) || !slices.Contains(SlotTimes, clock) {
		return EnteringDetails{}, false
	}

	return EnteringDetails{doctor: s.doctor, date: date, time: clock}, true
}

func (s SelectingSlot) Back() SelectingDoctor {
	return SelectingDoctor{}
}

func (s SelectingSlot) offers(date string) bool {
	for _, day := range s.days {
		if day.Date == date {
			return true
		}
	}

	return false
}

func (d EnteringDetails) Doctor() Doctor                     { return d.doctor }
func (d EnteringDetails) Date() string                       { return d.date }
func (d EnteringDetails) Time() string                       { return d.time }
func (d EnteringDetails) ConsultationType() ConsultationType { return d.consultationType }
func (d EnteringDetails) SymptomNotes() string               { return d.symptomNotes }

func (d EnteringDetails) WithConsultationType(c ConsultationType) (EnteringDetails, bool) {
	if !c.Valid() {
		return d, false
	}

	d.consultationType = c
	return d, true
}

func (d EnteringDetails) WithSymptomNotes(notes string) EnteringDetails {
	d.symptomNotes = notes
	return d
}

// Back returns to slot selection with the chosen date and time kept and
// the entered details dropped. Offered days are recomputed from now.
func (d EnteringDetails) Back(now time.Time) SelectingSlot {
	return SelectingSlot{
		doctor: d.doctor,
		days:   OfferedDays(now),
		date:   d.date,
		time:   d.time,
	}
}

// BookingTicket carries the bookkeeping attached to a confirmation.
type BookingTicket struct {
	ID          string
	PatientID   IdentityID
	PatientName string
	BookedAt    time.Time
}

func (d EnteringDetails) Confirm(c ConsultationType, notes string, ticket BookingTicket) (Confirmed, bool) {
	if !c.Valid() || d.doctor.ID == "" || d.date == "" || d.time == "" {
		return Confirmed{}, false
	}

	return Confirmed{doctor: d.doctor, record: BookingRecord{
		ID:               ticket.ID,
		PatientID:        ticket.PatientID,
		PatientName:      ticket.PatientName,
		DoctorID:         d.doctor.ID,
		DoctorName:       d.doctor.Name,
		DoctorSpecialty:  d.doctor.Specialty,
		FeeAmount:        d.doctor.FeeAmount,
		Date:             d.date,
		Time:             d.time,
		ConsultationType: c,
		SymptomNotes:     notes,
		BookedAt:         ticket.BookedAt,
	}}, true
}

func (c Confirmed) Record() BookingRecord { return c.record }

func (c Confirmed) Restart() SelectingDoctor {
	return SelectingDoctor{}
}

// BookingRecord is a finalized consultation request.
type BookingRecord struct {
	ID               string
	PatientID        IdentityID
	PatientName      string
	DoctorID         DoctorID
	DoctorName       LocalizedText
	DoctorSpecialty  LocalizedText
	FeeAmount        int
	Date             string
	Time             string
	ConsultationType ConsultationType
	SymptomNotes     string
	BookedAt         time.Time
}

// BookingDraft is a flattened, read-only view of a stage.
type BookingDraft struct {
	Stage            Stage
	Doctor           *Doctor
	Date             string
	Time             string
	ConsultationType ConsultationType
	SymptomNotes     string
}

func DraftOf(stage BookingStage) BookingDraft {
	switch s := stage.(type) {
	case SelectingSlot:
		doctor := s.doctor
		return BookingDraft{Stage: StageSelectingSlot, Doctor: &doctor, Date: s.date, Time: s.time}
	case EnteringDetails:
		doctor := s.doctor
		return BookingDraft{
			Stage:            StageEnteringDetails,
			Doctor:           &doctor,
			Date:             s.date,
			Time:             s.time,
			ConsultationType: s.consultationType,
			SymptomNotes:     s.symptomNotes,
		}
	case Confirmed:
		doctor := s.doctor
		return BookingDraft{
			Stage:            StageConfirmed,
			Doctor:           &doctor,
			Date:             s.record.Date,
			Time:             s.record.Time,
			ConsultationType: s.record.ConsultationType,
			SymptomNotes:     s.record.SymptomNotes,
		}
	default:
		return BookingDraft{Stage: StageSelectingDoctor}
	}
}
