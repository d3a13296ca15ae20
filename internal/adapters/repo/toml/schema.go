package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Bookings []bookingSchema `toml:"bookings"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported bookings schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type bookingSchema struct {
	ID               string     `toml:"id"`
	PatientID        string     `toml:"patient_id"`
	PatientName      string     `toml:"patient_name"`
	DoctorID         string     `toml:"doctor_id"`
	DoctorName       textSchema `toml:"doctor_name"`
	DoctorSpecialty  textSchema `toml:"doctor_specialty"`
	Fee              int        `toml:"fee"`
	Date             string     `toml:"date"`
	Time             string     `toml:"time"`
	ConsultationType string     `toml:"consultation_type"`
	SymptomNotes     string     `toml:"symptom_notes,omitempty"`
	BookedAt         string     `toml:"booked_at"`
}

type textSchema struct {
	Default string `toml:"default"`
	Hi      string `toml:"hi,omitempty"`
	Pa      string `toml:"pa,omitempty"`
}
