package i18n

import (
	"os"
	"strings"
)

// localeEnv lists the POSIX variables consulted for the platform hint, in
// precedence order.
var localeEnv = []string{"LC_ALL", "LC_MESSAGES", "LANG", "LANGUAGE"}

// PlatformHint returns the process locale as a BCP 47 tag list suitable for
// Accept-Language parsing, or "" when none is set.
func PlatformHint() string {
	return PlatformHintFrom(os.Getenv)
}

// PlatformHintFrom is PlatformHint over an arbitrary environment lookup.
func PlatformHintFrom(getenv func(string) string) string {
	for _, name := range localeEnv {
		value := strings.TrimSpace(getenv(name))
		if value == "" {
			continue
		}
		if hint := NormalizePOSIX(value); hint != "" {
			return hint
		}
	}
	return ""
}

// NormalizePOSIX turns "es_ES.UTF-8@euro" into "es-ES". LANGUAGE style lists
// ("es_ES:en") become comma separated. "C" and "POSIX" yield "".
func NormalizePOSIX(value string) string {
	var tags []string
	for _, part := range strings.Split(value, ":") {
		part = strings.TrimSpace(part)
		if i := strings.IndexAny(part, ".@"); i >= 0 {
			part = part[:i]
		}
		if part == "" || part == "C" || part == "POSIX" {
			continue
		}
		tags = append(tags, strings.ReplaceAll(part, "_", "-"))
	}
	return strings.Join(tags, ",")
}
