package web

import (
	"time"

	"github.com/bnema/rural-health-connect/internal/domain"
)

type loginRequest struct {
	ContactHandle string `json:"contact_handle" form:"contact_handle"`
	Code          string `json:"code" form:"code"`
}

type bookingRequest struct {
	DoctorID         string `json:"doctor_id"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	ConsultationType string `json:"consultation_type"`
	SymptomNotes     string `json:"symptom_notes"`
}

type localeRequest struct {
	Locale string `json:"locale" form:"locale"`
}

type identityResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type sessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	Identity      *identityResponse `json:"identity,omitempty"`
	Location      string            `json:"location,omitempty"`
}

type doctorResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Specialty          string  `json:"specialty"`
	Qualification      string  `json:"qualification"`
	Fee                int     `json:"fee"`
	Rating             float64 `json:"rating"`
	Online             bool    `json:"online"`
	ExperienceYears    int     `json:"experience_years"`
	TotalConsultations int     `json:"total_consultations"`
}

type bookingResponse struct {
	ID               string    `json:"id"`
	PatientID        string    `json:"patient_id"`
	PatientName      string    `json:"patient_name"`
	DoctorID         string    `json:"doctor_id"`
	DoctorName       string    `json:"doctor_name"`
	DoctorSpecialty  string    `json:"doctor_specialty"`
	Fee              int       `json:"fee"`
	Date             string    `json:"date"`
	Time             string    `json:"time"`
	ConsultationType string    `json:"consultation_type"`
	SymptomNotes     string    `json:"symptom_notes,omitempty"`
	BookedAt         time.Time `json:"booked_at"`
}

type bookingRejection struct {
	Message string `json:"message"`
	Stage   string `json:"stage"`
}

func toSessionResponse(session domain.Session) sessionResponse {
	identity, ok := session.Identity()
	if !ok {
		return sessionResponse{}
	}

	return sessionResponse{
		Authenticated: true,
		Identity: &identityResponse{
			ID:    string(identity.ID),
			Name:  identity.DisplayName,
			Role:  string(identity.Role),
			Phone: identity.ContactHandle,
			Email: identity.Email,
		},
		Location: domain.HomePath(identity.Role),
	}
}

func toDoctorResponse(doctor domain.Doctor, locale domain.Locale) doctorResponse {
	return doctorResponse{
		ID:                 string(doctor.ID),
		Name:               doctor.Name.In(locale),
		Specialty:          doctor.Specialty.In(locale),
		Qualification:      doctor.Qualification,
		Fee:                doctor.FeeAmount,
		Rating:             doctor.RatingScore,
		Online:             doctor.IsOnline,
		ExperienceYears:    doctor.ExperienceYears,
		TotalConsultations: doctor.TotalConsultations,
	}
}

func toBookingResponse(record domain.BookingRecord, locale domain.Locale) bookingResponse {
	return bookingResponse{
		ID:               record.ID,
		PatientID:        string(record.PatientID),
		PatientName:      record.PatientName,
		DoctorID:         string(record.DoctorID),
		DoctorName:       record.DoctorName.In(locale),
		DoctorSpecialty:  record.DoctorSpecialty.In(locale),
		Fee:              record.FeeAmount,
		Date:             record.Date,
		Time:             record.Time,
		ConsultationType: string(record.ConsultationType),
		SymptomNotes:     record.SymptomNotes,
		BookedAt:         record.BookedAt,
	}
}
