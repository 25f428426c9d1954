package tui

import (
	"errors"

	"kashbill/internal/domain"
)

// errorKey maps a domain error to the translation key of its on-screen
// notice. Errors without a notice of their own get the generic one.
func errorKey(err error) string {
	switch {
	case errors.Is(err, domain.ErrRouteNotFound):
		return "notFound.body"
	case errors.Is(err, domain.ErrPadNotFound):
		return "errors.pad"
	case errors.Is(err, domain.ErrUnknownCategory):
		return "errors.category"
	case errors.Is(err, domain.ErrUnsupportedLocale):
		return "errors.locale"
	default:
		return "errors.generic"
	}
}

// errorNotice renders the notice for err, or "" when err is nil.
func (m Model) errorNotice(err error, data map[string]any) string {
	if err == nil {
		return ""
	}
	return m.deps.Locale.Render(errorKey(err), data)
}
