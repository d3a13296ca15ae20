package ports

import "github.com/bnema/rural-health-connect/internal/domain"

// IdentityDirectory maps a role to its canned identity.
type IdentityDirectory interface {
	ForRole(role domain.Role) (domain.Identity, bool)
}

// DoctorDirectory is the fixed, ordered list of doctors offered for booking.
type DoctorDirectory interface {
	List() []domain.Doctor
	GetByID(id domain.DoctorID) (domain.Doctor, bool)
}
