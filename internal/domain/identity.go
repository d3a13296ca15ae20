package domain

import "strings"

type IdentityID string

// Identity is replaced as a whole; nothing updates it field by field.
type Identity struct {
	ID            IdentityID
	DisplayName   string
	Role          Role
	ContactHandle string
	Email         string
}

func (i Identity) WellFormed() bool {
	return strings.TrimSpace(string(i.ID)) != "" &&
		strings.TrimSpace(i.DisplayName) != "" &&
		i.Role.Valid()
}
