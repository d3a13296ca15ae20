// Package fixtures serves the canned identities and the doctor list that
// ship inside the binary.
package fixtures

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/ports"
	"github.com/pelletier/go-toml/v2"
)

var (
	//go:embed data/identities.toml
	identitiesTOML []byte

	//go:embed data/doctors.toml
	doctorsTOML []byte
)

type identitiesSchema struct {
	Identities []identityRecord `toml:"identities"`
}

type identityRecord struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Role  string `toml:"role"`
	Phone string `toml:"phone,omitempty"`
	Email string `toml:"email,omitempty"`
}

type doctorsSchema struct {
	Doctors []doctorRecord `toml:"doctors"`
}

type doctorRecord struct {
	ID                 string  `toml:"id"`
	Name               string  `toml:"name"`
	NameHi             string  `toml:"name_hi,omitempty"`
	NamePa             string  `toml:"name_pa,omitempty"`
	Specialty          string  `toml:"specialty"`
	SpecialtyHi        string  `toml:"specialty_hi,omitempty"`
	SpecialtyPa        string  `toml:"specialty_pa,omitempty"`
	Qualification      string  `toml:"qualification"`
	Fee                int     `toml:"fee"`
	Rating             float64 `toml:"rating"`
	Online             bool    `toml:"online"`
	ExperienceYears    int     `toml:"experience_years"`
	TotalConsultations int     `toml:"total_consultations"`
}

type Identities struct {
	byRole map[domain.Role]domain.Identity
}

var _ ports.IdentityDirectory = (*Identities)(nil)

// LoadIdentities parses the embedded identity list.
func LoadIdentities() (*Identities, error) {
	return parseIdentities(identitiesTOML)
}

func parseIdentities(data []byte) (*Identities, error) {
	var schema identitiesSchema
	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&schema); err != nil {
		return nil, fmt.Errorf("decode identities: %w", err)
	}

	byRole := make(map[domain.Role]domain.Identity, len(schema.Identities))
	for _, record := range schema.Identities {
		role, err := domain.ParseRole(record.Role)
		if err != nil {
			return nil, fmt.Errorf("identity %q: %w", record.ID, err)
		}
		if _, exists := byRole[role]; exists {
			return nil, fmt.Errorf("duplicate identity for role %q", role)
		}

		identity := domain.Identity{
			ID:            domain.IdentityID(record.ID),
			DisplayName:   record.Name,
			Role:          role,
			ContactHandle: record.Phone,
			Email:         record.Email,
		}
		if !identity.WellFormed() {
			return nil, fmt.Errorf("identity %q is incomplete", record.ID)
		}
		byRole[role] = identity
	}

	for _, role := range domain.Roles {
		if _, ok := byRole[role]; !ok {
			return nil, fmt.Errorf("no identity for role %q", role)
		}
	}

	return &Identities{byRole: byRole}, nil
}

func (d *Identities) ForRole(role domain.Role) (domain.Identity, bool) {
	identity, ok := d.byRole[role]
	return identity, ok
}

type Doctors struct {
	doctors []domain.Doctor
	byID    map[domain.DoctorID]int
}

var _ ports.DoctorDirectory = (*Doctors)(nil)

// LoadDoctors parses the embedded doctor list.
func LoadDoctors() (*Doctors, error) {
	return parseDoctors(doctorsTOML)
}

func parseDoctors(data []byte) (*Doctors, error) {
	var schema doctorsSchema
	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&schema); err != nil {
		return nil, fmt.Errorf("decode doctors: %w", err)
	}

	doctors := make([]domain.Doctor, 0, len(schema.Doctors))
	byID := make(map[domain.DoctorID]int, len(schema.Doctors))
	for _, record := range schema.Doctors {
		if record.ID == "" || record.Name == "" {
			return nil, errors.New("doctor entry is missing id or name")
		}
		id := domain.DoctorID(record.ID)
		if _, exists := byID[id]; exists {
			return nil, fmt.Errorf("duplicate doctor id %q", record.ID)
		}
		if record.Fee < 0 {
			return nil, fmt.Errorf("doctor %q has a negative fee", record.ID)
		}

		byID[id] = len(doctors)
		doctors = append(doctors, domain.Doctor{
			ID:                 id,
			Name:               localized(record.Name, record.NameHi, record.NamePa),
			Specialty:          localized(record.Specialty, record.SpecialtyHi, record.SpecialtyPa),
			Qualification:      record.Qualification,
			FeeAmount:          record.Fee,
			RatingScore:        record.Rating,
			IsOnline:           record.Online,
			ExperienceYears:    record.ExperienceYears,
			TotalConsultations: record.TotalConsultations,
		})
	}

	return &Doctors{doctors: doctors, byID: byID}, nil
}

func localized(def, hi, pa string) domain.LocalizedText {
	text := domain.LocalizedText{Default: def}
	if hi == "" && pa == "" {
		return text
	}

	text.ByLocale = make(map[domain.Locale]string, 2)
	if hi != "" {
		text.ByLocale[domain.LocaleHindi] = hi
	}
	if pa != "" {
		text.ByLocale[domain.LocalePunjabi] = pa
	}

	return text
}

// List returns the doctors in file order. The slice is a copy.
func (d *Doctors) List() []domain.Doctor {
	out := make([]domain.Doctor, len(d.doctors))
	copy(out, d.doctors)
	return out
}

func (d *Doctors) GetByID(id domain.DoctorID) (domain.Doctor, bool) {
	idx, ok := d.byID[id]
	if !ok {
		return domain.Doctor{}, false
	}

	return d.doctors[idx], true
}
