package message

import (
	"strings"
	"time"
)

// Macro tokens substituted verbatim into templates and message text.
const (
	MacroName                = "%NAME%"
	MacroDescription         = "%DESCRIPTION%"
	MacroURL                 = "%URL%"
	MacroCalendarDownloadURL = "%CALENDAR_DOWNLOAD_URL%"
	MacroImageURL            = "%IMAGE_URL%"
	MacroDate                = "%DATE%"
	MacroCalendarName        = "%CALENDAR_NAME%"
	MacroPlural              = "%PLURAL%"
)

// dateFormat is the long form used for %DATE%.
const dateFormat = "Monday, 2 January 2006"

// Replacement is one (token, value) pair.
type Replacement struct {
	Token string
	Value string
}

// Substitute applies replacements to s in order, as literal string
// substitution. No templating engine involved.
func Substitute(s string, reps []Replacement) string {
	for _, rep := range reps {
		s = strings.ReplaceAll(s, rep.Token, rep.Value)
	}
	return s
}

// FormatDate renders the target date for the %DATE% macro.
func FormatDate(t time.Time) string {
	return t.Format(dateFormat)
}

// PluralSuffix resolves %PLURAL%: empty for exactly one event, "s" for more.
func PluralSuffix(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
