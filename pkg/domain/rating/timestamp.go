package rating

import (
	"strings"
	"time"
)

// DefaultLocale matches the studio's site language.
const DefaultLocale = "he-IL"

// localeLayouts mirror the date-time rendering browsers use for each locale.
var localeLayouts = map[string]string{
	"he-il": "2.1.2006, 15:04:05",
	"de-de": "2.1.2006, 15:04:05",
	"ru-ru": "02.01.2006, 15:04:05",
	"en-us": "1/2/2006, 3:04:05 PM",
	"en-gb": "02/01/2006, 15:04:05",
	"fr-fr": "02/01/2006 15:04:05",
}

// fallbackLayout is used for locales without a known layout.
const fallbackLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders t the way the given locale displays a local
// date and time. Locale tags are matched case-insensitively and accept
// either '-' or '_' as separator.
func FormatTimestamp(t time.Time, locale string) string {
	key := strings.ToLower(strings.ReplaceAll(locale, "_", "-"))
	if key == "" {
		key = strings.ToLower(DefaultLocale)
	}
	layout, ok := localeLayouts[key]
	if !ok {
		layout = fallbackLayout
	}
	return t.Format(layout)
}

// KnownLocale reports whether FormatTimestamp has a dedicated layout.
func KnownLocale(locale string) bool {
	_, ok := localeLayouts[strings.ToLower(strings.ReplaceAll(locale, "_", "-"))]
	return ok
}
