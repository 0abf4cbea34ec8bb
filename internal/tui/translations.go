package tui

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

const defaultLocale = "en-US"

//go:embed translations/*.yml
var translationFiles embed.FS

// Translations maps message keys sent by the API to display strings
type Translations map[string]string

func loadLocale(locale string) (Translations, error) {
	t := make(Translations)
	file := fmt.Sprintf("translations/%v.yml", locale)

	b, err := translationFiles.ReadFile(file)
	if err != nil {
		return t, fmt.Errorf("failed to load file %v: %w", file, err)
	}

	if err := yaml.Unmarshal(b, &t); err != nil {
		return t, fmt.Errorf("failed to unmarshal file %v: %w", file, err)
	}

	return t, nil
}

// LoadTranslations loads the default locale and overlays locale on top of
// it, so untranslated keys still show text. An unknown locale is not an
// error.
func LoadTranslations(locale string) (Translations, error) {
	t, err := loadLocale(defaultLocale)
	if err != nil {
		return t, fmt.Errorf("failed to load default translations %v: %w", defaultLocale, err)
	}

	if locale == "" || locale == defaultLocale {
		return t, nil
	}

	overlay, err := loadLocale(locale)
	if err != nil {
		return t, nil
	}

	for k, v := range overlay {
		t[k] = v
	}

	return t, nil
}

// T returns the translation for key, or the key itself when missing
func (t Translations) T(key string) string {
	if v, ok := t[key]; ok {
		return v
	}
	return key
}
