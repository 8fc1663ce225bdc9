// Package selection picks the events to announce for a target date.
//
// Comparisons are date-only: an event starting at any time of day on a
// matching date is selected. Output order follows calendar order, then
// in-calendar event order.
package selection

import (
	"time"

	"github.com/abelbrown/herald/internal/calendar"
	"github.com/abelbrown/herald/internal/config"
)

// Selector filters events against a reference date.
type Selector struct {
	Mode       string // config.ModeExact or config.ModeWindow
	OffsetDays int    // window mode only
}

// New creates a Selector from the selection configuration.
func New(sel config.Selection) Selector {
	return Selector{Mode: sel.Mode, OffsetDays: sel.OffsetDays}
}

// Select returns the events whose start date matches the target date under
// the configured mode. An empty result is a normal outcome.
func (s Selector) Select(cals []*calendar.Calendar, target time.Time) []*calendar.Event {
	var matched []*calendar.Event
	for _, cal := range cals {
		for _, ev := range cal.Events {
			if s.matches(ev.Start, target) {
				matched = append(matched, ev)
			}
		}
	}
	return matched
}

func (s Selector) matches(start, target time.Time) bool {
	diff := dayDiff(start, target)
	if s.Mode == config.ModeWindow {
		// Open two-day interval (target+offset, target+offset+2).
		return s.OffsetDays < diff && diff < s.OffsetDays+2
	}
	return diff == 0
}

// dayDiff returns the whole number of days from target's date to t's date,
// ignoring time of day.
func dayDiff(t, target time.Time) int {
	a := midnightUTC(t)
	b := midnightUTC(target)
	return int(a.Sub(b).Hours() / 24)
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
