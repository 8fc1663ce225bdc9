// Package calendar holds the parsed calendar model for herald.
//
// A Calendar is one fetched iCalendar feed tagged with the URL it came from.
// Events keep a back-reference to their owning calendar so the formatter can
// render "download calendar" links with the feed's display name.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// Calendar is a parsed iCalendar feed.
type Calendar struct {
	Name      string // X-WR-CALNAME, empty when the feed does not declare one
	SourceURL string // URL the feed was fetched from
	Events    []*Event
}

// Event is a single VEVENT. Immutable once parsed.
type Event struct {
	Summary     string
	Description string
	URL         string
	Start       time.Time
	AllDay      bool
	Calendar    *Calendar // owning calendar
}

// Parse reads an iCalendar document and tags the result with its source URL.
// Events without a parseable DTSTART are skipped.
func Parse(r io.Reader, sourceURL string) (*Calendar, error) {
	parsed, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse icalendar: %w", err)
	}

	cal := &Calendar{SourceURL: sourceURL}
	for _, prop := range parsed.CalendarProperties {
		if prop.IANAToken == string(ics.PropertyXWRCalName) {
			cal.Name = unescapeText(prop.Value)
			break
		}
	}

	for _, ev := range parsed.Events() {
		dtstart := ev.GetProperty(ics.ComponentPropertyDtStart)
		if dtstart == nil {
			continue
		}

		// Holiday feeds commonly use DATE-valued DTSTART.
		allDay := isDateValue(dtstart)
		var start time.Time
		var err error
		if allDay {
			start, err = ev.GetAllDayStartAt()
		} else {
			start, err = ev.GetStartAt()
		}
		if err != nil {
			continue
		}

		cal.Events = append(cal.Events, &Event{
			Summary:     propertyValue(ev, ics.ComponentPropertySummary),
			Description: propertyValue(ev, ics.ComponentPropertyDescription),
			URL:         propertyValue(ev, ics.ComponentPropertyUrl),
			Start:       start,
			AllDay:      allDay,
			Calendar:    cal,
		})
	}

	return cal, nil
}

func isDateValue(prop *ics.IANAProperty) bool {
	for _, v := range prop.ICalParameters["VALUE"] {
		if v == "DATE" {
			return true
		}
	}
	return len(prop.Value) == 8
}

func propertyValue(ev *ics.VEvent, name ics.ComponentProperty) string {
	prop := ev.GetProperty(name)
	if prop == nil {
		return ""
	}
	return unescapeText(prop.Value)
}

// unescapeText reverses RFC 5545 TEXT escaping.
func unescapeText(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		case '\\', ',', ';':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
