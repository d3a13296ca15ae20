package application

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/ports"
	"github.com/rs/zerolog"
)

// BookingService keeps the history of confirmed bookings.
type BookingService struct {
	repo   ports.BookingRepository
	clock  ports.Clock
	logger zerolog.Logger
}

func NewBookingService(repo ports.BookingRepository, clock ports.Clock, logger zerolog.Logger) *BookingService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &BookingService{repo: repo, clock: clock, logger: logger}
}

func (s *BookingService) Save(ctx context.Context, record domain.BookingRecord) error {
	if record.ID == "" {
		return errors.New("booking record has no id")
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return fmt.Errorf("save booking: %w", err)
	}

	s.logger.Info().
		Str("booking", record.ID).
		Str("patient", string(record.PatientID)).
		Str("doctor", string(record.DoctorID)).
		Str("date", record.Date).
		Str("time", record.Time).
		Msg("booking saved")
	return nil
}

func (s *BookingService) Get(ctx context.Context, id string) (domain.BookingRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("get booking: %w", err)
	}

	return record, nil
}

// History lists every booking made by patient, oldest first.
func (s *BookingService) History(ctx context.Context, patient domain.IdentityID) ([]domain.BookingRecord, error) {
	records, err := s.repo.ListByPatient(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return records, nil
}

// Upcoming lists the patient's bookings dated today or later, soonest
// first.
func (s *BookingService) Upcoming(ctx context.Context, patient domain.IdentityID) ([]domain.BookingRecord, error) {
	records, err := s.History(ctx, patient)
	if err != nil {
		return nil, err
	}

	today := s.clock.Now().Format(domain.DateLayout)
	upcoming := make([]domain.BookingRecord, 0, len(records))
	for _, record := range records {
		if record.Date >= today {
			upcoming = append(upcoming, record)
		}
	}

	slices.SortStableFunc(upcoming, func(a, b domain.BookingRecord) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Time, b.Time)
	})

	return upcoming, nil
}
