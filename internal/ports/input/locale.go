package input

import (
	"context"

	"kashbill/internal/domain/entities"
)

type LocaleUseCase interface {
	Init(ctx context.Context, hint string) entities.Locale
	ActiveLocale() entities.Locale
	SetLocale(ctx context.Context, locale entities.Locale) error
	Toggle(ctx context.Context) entities.Locale
	Supported() []entities.Locale
	Resolve(keyPath string) string
	ResolveFor(locale entities.Locale, keyPath string) string
	Render(keyPath string, data map[string]any) string
}
