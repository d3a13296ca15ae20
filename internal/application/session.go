package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/ports"
	"github.com/rs/zerolog"
)

// Durable keys shared with earlier releases of the portal.
const (
	UserKey     = "telemedicine-user"
	RoleKey     = "telemedicine-role"
	LanguageKey = "telemedicine-language"
)

const (
	loginCodeLength       = 4
	minContactHandleChars = 10
)

type identityRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type SessionOption func(*SessionStore)

// WithRoleSwitch toggles the demo shortcut that swaps identities without a
// code.
func WithRoleSwitch(allowed bool) SessionOption {
	return func(s *SessionStore) {
		s.allowRoleSwitch = allowed
	}
}

func WithSessionLogger(logger zerolog.Logger) SessionOption {
	return func(s *SessionStore) {
		s.logger = logger
	}
}

// SessionStore owns the current identity and keeps it in lockstep with
// durable storage.
type SessionStore struct {
	store           ports.KeyValueStore
	identities      ports.IdentityDirectory
	logger          zerolog.Logger
	allowRoleSwitch bool

	mu      sync.RWMutex
	current domain.Session
}

func NewSessionStore(store ports.KeyValueStore, identities ports.IdentityDirectory, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		store:           store,
		identities:      identities,
		logger:          zerolog.Nop(),
		allowRoleSwitch: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Initialize restores a previously persisted session. Anything missing or
// malformed leaves the session signed out.
func (s *SessionStore) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = domain.Session{}

	rawUser, err := s.store.Get(ctx, UserKey)
	if err != nil {
		s.logMissing(err, UserKey)
		return
	}
	rawRole, err := s.store.Get(ctx, RoleKey)
	if err != nil {
		s.logMissing(err, RoleKey)
		return
	}

	identity, err := decodeIdentity(rawUser)
	if err != nil {
		s.logger.Warn().Err(err).Msg("ignoring stored identity")
		return
	}
	role, err := domain.ParseRole(rawRole)
	if err != nil || role != identity.Role {
		s.logger.Warn().Str("role", rawRole).Str("identity_role", string(identity.Role)).Msg("ignoring stored session with mismatched role")
		return
	}

	s.current = domain.NewSession(identity)
	s.logger.Debug().Str("identity", string(identity.ID)).Str("role", string(role)).Msg("session restored")
}

func (s *SessionStore) logMissing(err error, key string) {
	if errors.Is(err, domain.ErrKeyNotFound) {
		s.logger.Debug().Str("key", key).Msg("no stored session")
		return
	}
	s.logger.Warn().Err(err).Str("key", key).Msg("read stored session")
}

// Login accepts any code of exactly four ASCII digits. The contact handle
// is not checked against the identity. The error is reserved for storage
// failures; a rejected code or role returns false and a nil error.
func (s *SessionStore) Login(ctx context.Context, contactHandle, code string, role domain.Role) (bool, error) {
	if !ValidLoginCode(code) {
		s.logger.Info().Str("role", string(role)).Msg("login rejected: malformed code")
		return false, nil
	}
	if !role.Valid() {
		s.logger.Info().Str("role", string(role)).Msg("login rejected: unknown role")
		return false, nil
	}

	identity, ok := s.identities.ForRole(role)
	if !ok {
		s.logger.Info().Str("role", string(role)).Msg("login rejected: no identity for role")
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, identity); err != nil {
		return false, fmt.Errorf("persist session: %w", err)
	}
	s.current = domain.NewSession(identity)

	s.logger.Debug().
		Str("identity", string(identity.ID)).
		Str("role", string(role)).
		Bool("contact_handle_given", strings.TrimSpace(contactHandle) != "").
		Msg("logged in")
	return true, nil
}

// SwitchRole replaces the current identity with the canned one for role
// without asking for a code.
func (s *SessionStore) SwitchRole(ctx context.Context, role domain.Role) error {
	if !s.allowRoleSwitch {
		return domain.ErrRoleSwitchDisabled
	}
	if !role.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}

	identity, ok := s.identities.ForRole(role)
	if !ok {
		return fmt.Errorf("%w: no identity for %q", domain.ErrUnknownRole, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, identity); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.current = domain.NewSession(identity)

	s.logger.Debug().Str("identity", string(identity.ID)).Str("role", string(role)).Msg("role switched")
	return nil
}

// Logout is a no-op when already signed out. Once the identity record is
// gone the session counts as signed out even if clearing the role tag
// fails.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("delete stored identity: %w", err)
	}
	s.current = domain.Session{}

	if err := s.store.Delete(ctx, RoleKey); err != nil {
		return fmt.Errorf("delete stored role: %w", err)
	}

	s.logger.Debug().Msg("logged out")
	return nil
}

func (s *SessionStore) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

func (s *SessionStore) RoleSwitchAllowed() bool {
	return s.allowRoleSwitch
}

// persist writes the identity record then the role tag. If the role tag
// cannot be written the identity key is restored to its previous value.
// Callers hold s.mu.
func (s *SessionStore) persist(ctx context.Context, identity domain.Identity) error {
	encoded, err := encodeIdentity(identity)
	if err != nil {
		return err
	}

	if err := s.store.Put(ctx, UserKey, encoded); err != nil {
		return fmt.Errorf("store identity: %w", err)
	}

	if err := s.store.Put(ctx, RoleKey, string(identity.Role)); err != nil {
		if rollbackErr := s.restoreUserKey(ctx); rollbackErr != nil {
			return fmt.Errorf("store role and rollback identity: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("store role: %w", err)
	}

	return nil
}

func (s *SessionStore) restoreUserKey(ctx context.Context) error {
	previous, ok := s.current.Identity()
	if !ok {
		return s.store.Delete(ctx, UserKey)
	}

	encoded, err := encodeIdentity(previous)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, UserKey, encoded)
}

func encodeIdentity(identity domain.Identity) (string, error) {
	data, err := json.Marshal(identityRecord{
		ID:    string(identity.ID),
		Name:  identity.DisplayName,
		Role:  string(identity.Role),
		Phone: identity.ContactHandle,
		Email: identity.Email,
	})
	if err != nil {
		return "", fmt.Errorf("encode identity: %w", err)
	}

	return string(data), nil
}

func decodeIdentity(raw string) (domain.Identity, error) {
	var record identityRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return domain.Identity{}, fmt.Errorf("decode identity: %w", err)
	}

	identity := domain.Identity{
		ID:            domain.IdentityID(record.ID),
		DisplayName:   record.Name,
		Role:          domain.Role(record.Role),
		ContactHandle: record.Phone,
		Email:         record.Email,
	}
	if !identity.WellFormed() {
		return domain.Identity{}, errors.New("stored identity is incomplete")
	}

	return identity, nil
}

// ValidLoginCode reports whether code is exactly four ASCII digits.
func ValidLoginCode(code string) bool {
	if len(code) != loginCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}

	return true
}

// ValidContactHandle gates the code step: the handle must carry at least
// ten characters once surrounding spaces are removed.
func ValidContactHandle(handle string) bool {
	return len([]rune(strings.TrimSpace(handle))) >= minContactHandleChars
}
