package output

import "kashbill/internal/domain/entities"

// T renders templated messages (placeholders, plural forms).
// Implementations must return key unchanged when the message cannot be rendered.
type T interface {
	// T renders the message identified by key for the given locale.
	// data is an optional map used for template placeholders (may be nil).
	T(locale, key string, data map[string]any) string
}

// TranslationSource supplies one immutable translation table per locale.
type TranslationSource interface {
	Table(locale entities.Locale) (*entities.TranslationTable, bool)
}
