package entities

import "strings"

// Locale identifies one supported translation language (e.g. "en").
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleSpanish Locale = "es"
)

func (l Locale) String() string {
	return string(l)
}

// Label is the short upper-case code shown on the language toggle.
func (l Locale) Label() string {
	return strings.ToUpper(string(l))
}

// LocalizedText holds one string per locale, as found in site content.
type LocalizedText map[Locale]string

// In returns the text for locale, or the fallback locale's text when the
// locale has no entry.
func (t LocalizedText) In(locale, fallback Locale) string {
	if v, ok := t[locale]; ok && v != "" {
		return v
	}
	if v, ok := t[fallback]; ok && v != "" {
		return v
	}
	return ""
}
