package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/rural-health-connect/internal/adapters/fixtures"
	"github.com/bnema/rural-health-connect/internal/adapters/storage/memory"
	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/ports/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocaleServiceDefaultsToEnglish(t *testing.T) {
	service := NewLocaleService(memory.NewStore(), zerolog.Nop())

	assert.Equal(t, domain.LocaleEnglish, service.Current(context.Background()))
}

func TestLocaleServiceSetPersistsAndSurvivesLogout(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	identities, err := fixtures.LoadIdentities()
	require.NoError(t, err)

	locales := NewLocaleService(store, zerolog.Nop())
	sessions := NewSessionStore(store, identities)

	require.NoError(t, locales.Set(ctx, domain.LocalePunjabi))
	ok, err := sessions.Login(ctx, "", "1234", domain.RolePatient)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, sessions.Logout(ctx))

	assert.Equal(t, domain.LocalePunjabi, NewLocaleService(store, zerolog.Nop()).Current(ctx))
}

func TestLocaleServiceRejectsUnknownLocale(t *testing.T) {
	service := NewLocaleService(memory.NewStore(), zerolog.Nop())

	err := service.Set(context.Background(), domain.Locale("fr"))
	require.ErrorIs(t, err, domain.ErrUnknownLocale)
}

func TestLocaleServiceFallsBackOnBadStoredValueOrReadError(t *testing.T) {
	ctx := context.Background()

	store := memory.NewStore()
	require.NoError(t, store.Put(ctx, LanguageKey, "klingon"))
	assert.Equal(t, domain.DefaultLocale, NewLocaleService(store, zerolog.Nop()).Current(ctx))

	failing := mocks.NewMockKeyValueStore(t)
	failing.EXPECT().Get(mockAnyContext(), LanguageKey).Return("", errors.New("io error"))
	assert.Equal(t, domain.DefaultLocale, NewLocaleService(failing, zerolog.Nop()).Current(ctx))
}
