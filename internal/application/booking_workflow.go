package application

import (
	"strings"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type WorkflowOption func(*BookingWorkflow)

// WithRequiredSymptomNotes refuses confirmations whose notes are blank.
func WithRequiredSymptomNotes(required bool) WorkflowOption {
	return func(w *BookingWorkflow) {
		w.requireNotes = required
	}
}

func WithIDGenerator(newID func() string) WorkflowOption {
	return func(w *BookingWorkflow) {
		if newID != nil {
			w.newID = newID
		}
	}
}

func WithWorkflowLogger(logger zerolog.Logger) WorkflowOption {
	return func(w *BookingWorkflow) {
		w.logger = logger
	}
}

// BookingWorkflow drives one consultation booking from doctor choice to
// confirmation. It performs no I/O; a confirmed record is handed to
// BookingService by the caller. A workflow is not safe for concurrent use.
type BookingWorkflow struct {
	doctors      ports.DoctorDirectory
	sessions     SessionReader
	clock        ports.Clock
	newID        func() string
	requireNotes bool
	logger       zerolog.Logger

	stage domain.BookingStage
}

func NewBookingWorkflow(doctors ports.DoctorDirectory, sessions SessionReader, clock ports.Clock, opts ...WorkflowOption) *BookingWorkflow {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	w := &BookingWorkflow{
		doctors:  doctors,
		sessions: sessions,
		clock:    clock,
		newID:    uuid.NewString,
		logger:   zerolog.Nop(),
		stage:    domain.SelectingDoctor{},
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *BookingWorkflow) Stage() domain.Stage {
	return w.stage.Stage()
}

// Doctors lists every doctor, online or not, in directory order.
func (w *BookingWorkflow) Doctors() []domain.Doctor {
	return w.doctors.List()
}

// Days returns the offered days while a slot is being chosen.
func (w *BookingWorkflow) Days() []domain.SlotDay {
	slot, ok := w.stage.(domain.SelectingSlot)
	if !ok {
		return nil
	}

	return slot.Days()
}

func (w *BookingWorkflow) SelectDoctor(id domain.DoctorID) bool {
	current, ok := w.stage.(domain.SelectingDoctor)
	if !ok {
		return w.reject("select doctor")
	}

	doctor, found := w.doctors.GetByID(id)
	if !found {
		w.logger.Info().Str("doctor", string(id)).Msg("doctor not found")
		return false
	}

	next, ok := current.ChooseDoctor(doctor, w.clock.Now())
	if !ok {
		w.logger.Info().Str("doctor", string(id)).Msg("doctor is offline")
		return false
	}

	return w.advance(next)
}

func (w *BookingWorkflow) SelectSlot(date, clock string) bool {
	current, ok := w.stage.(domain.SelectingSlot)
	if !ok {
		return w.reject("select slot")
	}

	next, ok := current.ChooseSlot(date, clock)
	if !ok {
		w.logger.Info().Str("date", date).Str("time", clock).Msg("slot not offered")
		return false
	}

	return w.advance(next)
}

func (w *BookingWorkflow) SetConsultationType(c domain.ConsultationType) bool {
	current, ok := w.stage.(domain.EnteringDetails)
	if !ok {
		return w.reject("set consultation type")
	}

	next, ok := current.WithConsultationType(c)
	if !ok {
		return false
	}
	w.stage = next
	return true
}

func (w *BookingWorkflow) SetSymptomNotes(notes string) bool {
	current, ok := w.stage.(domain.EnteringDetails)
	if !ok {
		return w.reject("set symptom notes")
	}

	w.stage = current.WithSymptomNotes(notes)
	return true
}

// Confirm finalizes the booking for the acting identity. Notes may be
// empty unless required symptom notes are switched on.
func (w *BookingWorkflow) Confirm(c domain.ConsultationType, notes string) bool {
	current, ok := w.stage.(domain.EnteringDetails)
	if !ok {
		return w.reject("confirm")
	}
	if w.requireNotes && strings.TrimSpace(notes) == "" {
		w.logger.Info().Msg("confirmation rejected: symptom notes required")
		return false
	}

	ticket := domain.BookingTicket{ID: w.newID(), BookedAt: w.clock.Now()}
	if w.sessions != nil {
		if identity, ok := w.sessions.Current().Identity(); ok {
			ticket.PatientID = identity.ID
			ticket.PatientName = identity.DisplayName
		}
	}

	next, ok := current.Confirm(c, notes, ticket)
	if !ok {
		w.logger.Info().Str("type", string(c)).Msg("confirmation rejected")
		return false
	}

	return w.advance(next)
}

func (w *BookingWorkflow) Back() bool {
	switch current := w.stage.(type) {
	case domain.SelectingSlot:
		return w.advance(current.Back())
	case domain.EnteringDetails:
		return w.advance(current.Back(w.clock.Now()))
	default:
		return w.reject("back")
	}
}

// Restart begins a fresh booking once the current one is confirmed.
func (w *BookingWorkflow) Restart() bool {
	current, ok := w.stage.(domain.Confirmed)
	if !ok {
		return w.reject("restart")
	}

	return w.advance(current.Restart())
}

func (w *BookingWorkflow) Draft() domain.BookingDraft {
	return domain.DraftOf(w.stage)
}

func (w *BookingWorkflow) Record() (domain.BookingRecord, bool) {
	confirmed, ok := w.stage.(domain.Confirmed)
	if !ok {
		return domain.BookingRecord{}, false
	}

	return confirmed.Record(), true
}

func (w *BookingWorkflow) advance(next domain.BookingStage) bool {
	w.logger.Debug().Str("from", string(w.stage.Stage())).Str("to", string(next.Stage())).Msg("booking stage changed")
	w.stage = next
	return true
}

func (w *BookingWorkflow) reject(op string) bool {
	w.logger.Info().Str("op", op).Str("stage", string(w.stage.Stage())).Msg("not allowed in current stage")
	return false
}
