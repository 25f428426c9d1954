package domain

import "errors"

// Domain errors.
var (
	ErrUnsupportedLocale   = errors.New("locale not supported")
	ErrRouteNotFound       = errors.New("no route matches path")
	ErrInvalidRouteTable   = errors.New("invalid route table")
	ErrPreferenceNotFound  = errors.New("preference not found")
	ErrTranslationsMissing = errors.New("translation document missing")
	ErrPadNotFound         = errors.New("sound pad not found")
	ErrUnknownCategory     = errors.New("unknown project category")
)

// PreferenceLocaleKey is the durable store key holding the locale preference.
const PreferenceLocaleKey = "kashbill_lang"
