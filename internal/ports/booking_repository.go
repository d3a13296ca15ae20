package ports

import (
	"context"

	"github.com/bnema/rural-health-connect/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id string) (domain.BookingRecord, error)
	ListByPatient(ctx context.Context, patientID domain.IdentityID) ([]domain.BookingRecord, error)
	Save(ctx context.Context, record domain.BookingRecord) error
}
