package domain

import (
	"fmt"
	"strings"
)

type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleHindi   Locale = "hi"
	LocalePunjabi Locale = "pa"

	DefaultLocale = LocaleEnglish
)

var Locales = []Locale{LocaleEnglish, LocaleHindi, LocalePunjabi}

func (l Locale) Valid() bool {
	switch l {
	case LocaleEnglish, LocaleHindi, LocalePunjabi:
		return true
	default:
		return false
	}
}

func ParseLocale(raw string) (Locale, error) {
	locale := Locale(strings.ToLower(strings.TrimSpace(raw)))
	if !locale.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, raw)
	}

	return locale, nil
}

// LocalizedText holds a default string plus optional per-locale variants.
type LocalizedText struct {
	Default  string
	ByLocale map[Locale]string
}

// In returns the variant for locale, falling back to the default text.
func (t LocalizedText) In(locale Locale) string {
	if v, ok := t.ByLocale[locale]; ok && v != "" {
		return v
	}

	return t.Default
}
