package domain

import (
	"fmt"
	"strings"
)

type Role string

const (
	RolePatient  Role = "patient"
	RoleDoctor   Role = "doctor"
	RolePharmacy Role = "pharmacy"
	RoleAdmin    Role = "admin"
)

// Roles lists every role in menu order.
var Roles = []Role{RolePatient, RoleDoctor, RolePharmacy, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RolePharmacy, RoleAdmin:
		return true
	default:
		return false
	}
}

func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}

	return role, nil
}

// LoginTitle is the heading shown on the role's login entry point.
func (r Role) LoginTitle() string {
	switch r {
	case RolePatient:
		return "Patient Login"
	case RoleDoctor:
		return "Doctor Login"
	case RolePharmacy:
		return "Pharmacy Login"
	case RoleAdmin:
		return "Admin Login"
	default:
		return "Login"
	}
}
