package domain

// Session is a snapshot of who is acting. The zero value is unauthenticated.
type Session struct {
	identity *Identity
}

func NewSession(identity Identity) Session {
	return Session{identity: &identity}
}

func (s Session) Identity() (Identity, bool) {
	if s.identity == nil {
		return Identity{}, false
	}

	return *s.identity, true
}

func (s Session) IsAuthenticated() bool {
	return s.identity != nil
}

// Role returns the acting role, or "" when nobody is signed in.
func (s Session) Role() Role {
	if s.identity == nil {
		return ""
	}

	return s.identity.Role
}
