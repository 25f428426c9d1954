package i18n

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"kashbill/internal/ports/output"
)

// Ensure Translator implements the output.T port.
var _ output.T = (*Translator)(nil)

// Translator is a thin wrapper around go-i18n's Localizer for messages with
// placeholders or plural forms.
type Translator struct {
	bundle *i18n.Bundle
	logger *zap.Logger
}

// NewTranslator renders messages from the catalog's bundle.
func NewTranslator(catalog *Catalog, logger *zap.Logger) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{bundle: catalog.Bundle(), logger: logger}
}

// T renders the message identified by key for the given locale. A "Count"
// entry in data selects the plural form. If the message cannot be rendered
// the key itself is returned.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	localizer := i18n.NewLocalizer(t.bundle, locale)
	cfg := &i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	}
	if count, ok := data["Count"]; ok {
		cfg.PluralCount = count
	}
	msg, err := localizer.Localize(cfg)
	if err != nil {
		t.logger.Debug("i18n: localize failed", zap.String("key", key), zap.String("locale", locale), zap.Error(err))
		return key
	}
	return msg
}
