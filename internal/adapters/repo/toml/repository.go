package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	BookingsPathKey    = "bookings.path"
	bookingsFileMode   = 0o600
	bookingsDirMode    = 0o700
	bookingsConfigDir  = ".rhc"
	bookingsConfigFile = "bookings.toml"
	tempFilePattern    = ".bookings-*.toml.tmp"
)

type Repository struct {
	bookingsPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.BookingRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(BookingsPathKey, filepath.Join(homeDir, bookingsConfigDir, bookingsConfigFile))

	bookingsPath := cfg.GetString(BookingsPathKey)
	if bookingsPath == "" {
		return nil, errors.New("bookings path is empty")
	}
	bookingsPath, err = normalizeBookingsPath(bookingsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{bookingsPath: bookingsPath, mu: lockForPath(bookingsPath)}, nil
}

func (r *Repository) Path() string {
	return r.bookingsPath
}

// Save appends record, or replaces the entry already stored under its ID.
func (r *Repository) Save(ctx context.Context, record domain.BookingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.ID == "" {
		return errors.New("booking id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(record)
	updated := false
	for i := range file.Bookings {
		if file.Bookings[i].ID == encoded.ID {
			file.Bookings[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Bookings = append(file.Bookings, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id string) (domain.BookingRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.BookingRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.BookingRecord{}, err
	}

	for _, entry := range file.Bookings {
		if entry.ID == id {
			return fromSchema(entry)
		}
	}

	return domain.BookingRecord{}, fmt.Errorf("booking %q: %w", id, domain.ErrBookingNotFound)
}

// ListByPatient returns the patient's bookings in the order they were made.
func (r *Repository) ListByPatient(ctx context.Context, patientID domain.IdentityID) ([]domain.BookingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.BookingRecord, 0, len(file.Bookings))
	for _, entry := range file.Bookings {
		if entry.PatientID != string(patientID) {
			continue
		}
		record, err := fromSchema(entry)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.bookingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read bookings file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode bookings file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeBookingsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve bookings path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.bookingsPath), bookingsDirMode); err != nil {
		return fmt.Errorf("create bookings directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode bookings file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.bookingsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp bookings file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp bookings file: %w", err)
	}
	if err := tempFile.Chmod(bookingsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp bookings file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp bookings file: %w", err)
	}
	if err := os.Rename(tempName, r.bookingsPath); err != nil {
		return fmt.Errorf("replace bookings file: %w", err)
	}
	cleanup = false

	return nil
}

func toSchema(record domain.BookingRecord) bookingSchema {
	return bookingSchema{
		ID:               record.ID,
		PatientID:        string(record.PatientID),
		PatientName:      record.PatientName,
		DoctorID:         string(record.DoctorID),
		DoctorName:       toTextSchema(record.DoctorName),
		DoctorSpecialty:  toTextSchema(record.DoctorSpecialty),
		Fee:              record.FeeAmount,
		Date:             record.Date,
		Time:             record.Time,
		ConsultationType: string(record.ConsultationType),
		SymptomNotes:     record.SymptomNotes,
		BookedAt:         record.BookedAt.UTC().Format(time.RFC3339),
	}
}

func fromSchema(entry bookingSchema) (domain.BookingRecord, error) {
	bookedAt, err := time.Parse(time.RFC3339, entry.BookedAt)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("parse booked_at for booking %q: %w", entry.ID, err)
	}

	return domain.BookingRecord{
		ID:               entry.ID,
		PatientID:        domain.IdentityID(entry.PatientID),
		PatientName:      entry.PatientName,
		DoctorID:         domain.DoctorID(entry.DoctorID),
		DoctorName:       fromTextSchema(entry.DoctorName),
		DoctorSpecialty:  fromTextSchema(entry.DoctorSpecialty),
		FeeAmount:        entry.Fee,
		Date:             entry.Date,
		Time:             entry.Time,
		ConsultationType: domain.ConsultationType(entry.ConsultationType),
		SymptomNotes:     entry.SymptomNotes,
		BookedAt:         bookedAt,
	}, nil
}

func toTextSchema(text domain.LocalizedText) textSchema {
	return textSchema{
		Default: text.Default,
		Hi:      text.ByLocale[domain.LocaleHindi],
		Pa:      text.ByLocale[domain.LocalePunjabi],
	}
}

func fromTextSchema(text textSchema) domain.LocalizedText {
	out := domain.LocalizedText{Default: text.Default}
	if text.Hi == "" && text.Pa == "" {
		return out
	}

	out.ByLocale = map[domain.Locale]string{}
	if text.Hi != "" {
		out.ByLocale[domain.LocaleHindi] = text.Hi
	}
	if text.Pa != "" {
		out.ByLocale[domain.LocalePunjabi] = text.Pa
	}

	return out
}
