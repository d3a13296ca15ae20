package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/ports"
	"github.com/rs/zerolog"
)

// LocaleService persists the preferred display language. The preference is
// independent of the session and survives logout.
type LocaleService struct {
	store  ports.KeyValueStore
	logger zerolog.Logger
}

func NewLocaleService(store ports.KeyValueStore, logger zerolog.Logger) *LocaleService {
	return &LocaleService{store: store, logger: logger}
}

// Current never fails: anything unreadable falls back to the default
// locale.
func (s *LocaleService) Current(ctx context.Context) domain.Locale {
	raw, err := s.store.Get(ctx, LanguageKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Warn().Err(err).Msg("read locale preference")
		}
		return domain.DefaultLocale
	}

	locale, err := domain.ParseLocale(raw)
	if err != nil {
		s.logger.Warn().Str("locale", raw).Msg("ignoring stored locale")
		return domain.DefaultLocale
	}

	return locale
}

func (s *LocaleService) Set(ctx context.Context, locale domain.Locale) error {
	if !locale.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownLocale, locale)
	}

	if err := s.store.Put(ctx, LanguageKey, string(locale)); err != nil {
		return fmt.Errorf("store locale: %w", err)
	}

	s.logger.Debug().Str("locale", string(locale)).Msg("locale changed")
	return nil
}
