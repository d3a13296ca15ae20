// Package i18n resolves static translation keys for the portal's three
// locales. Lookup never fails: an unknown key or locale yields the key.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"github.com/bnema/rural-health-connect/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

//go:embed catalogs/*.toml
var catalogFS embed.FS

var catalogs = mustLoadCatalogs()

func mustLoadCatalogs() map[domain.Locale]map[string]string {
	loaded := make(map[domain.Locale]map[string]string, len(domain.Locales))
	for _, locale := range domain.Locales {
		data, err := catalogFS.ReadFile("catalogs/" + string(locale) + ".toml")
		if err != nil {
			panic(fmt.Sprintf("read %s catalog: %v", locale, err))
		}

		entries := map[string]string{}
		if err := toml.Unmarshal(data, &entries); err != nil {
			panic(fmt.Sprintf("decode %s catalog: %v", locale, err))
		}
		loaded[locale] = entries
	}

	return loaded
}

// Translate returns the string for key in locale, or key itself.
func Translate(locale domain.Locale, key string) string {
	if text, ok := catalogs[locale][key]; ok && text != "" {
		return text
	}

	return key
}

// TranslateWith translates key and substitutes the first "{{name}}"
// placeholder for each entry in vars.
func TranslateWith(locale domain.Locale, key string, vars map[string]string) string {
	text := Translate(locale, key)
	for name, value := range vars {
		text = strings.Replace(text, "{{"+name+"}}", value, 1)
	}

	return text
}

// Keys lists the keys known for locale.
func Keys(locale domain.Locale) []string {
	entries := catalogs[locale]
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}

	return keys
}

// Translator binds a locale for repeated lookups.
type Translator struct {
	Locale domain.Locale
}

func (t Translator) T(key string) string {
	return Translate(t.Locale, key)
}
