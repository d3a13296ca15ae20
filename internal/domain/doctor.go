package domain

type DoctorID string

type Doctor struct {
	ID                 DoctorID
	Name               LocalizedText
	Specialty          LocalizedText
	Qualification      string
	FeeAmount          int
	RatingScore        float64
	IsOnline           bool
	ExperienceYears    int
	TotalConsultations int
}
