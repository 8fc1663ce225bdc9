package calendar

import (
	"strings"
	"testing"
)

func icsDoc(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

func TestParseCalendar(t *testing.T) {
	feed := icsDoc(
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//test//EN",
		"X-WR-CALNAME:Public Holidays",
		"BEGIN:VEVENT",
		"UID:1@test",
		"DTSTAMP:20260101T000000Z",
		"DTSTART:20260704T090000Z",
		"SUMMARY:Independence Day",
		"DESCRIPTION:Fireworks\\, parades\\nand more",
		"URL:https://example.com/july4",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:2@test",
		"DTSTAMP:20260101T000000Z",
		"DTSTART;VALUE=DATE:20261225",
		"SUMMARY:Christmas",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	cal, err := Parse(strings.NewReader(feed), "https://example.com/cal.ics")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cal.Name != "Public Holidays" {
		t.Errorf("expected calendar name 'Public Holidays', got %q", cal.Name)
	}
	if cal.SourceURL != "https://example.com/cal.ics" {
		t.Errorf("unexpected source URL: %q", cal.SourceURL)
	}
	if len(cal.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(cal.Events))
	}

	first := cal.Events[0]
	if first.Summary != "Independence Day" {
		t.Errorf("unexpected summary: %q", first.Summary)
	}
	if first.Description != "Fireworks, parades\nand more" {
		t.Errorf("description not unescaped: %q", first.Description)
	}
	if first.URL != "https://example.com/july4" {
		t.Errorf("unexpected URL: %q", first.URL)
	}
	if y, m, d := first.Start.Date(); y != 2026 || int(m) != 7 || d != 4 {
		t.Errorf("unexpected start: %v", first.Start)
	}
	if first.Calendar != cal {
		t.Error("event missing back-reference to its calendar")
	}

	second := cal.Events[1]
	if !second.AllDay {
		t.Error("DATE-valued DTSTART should be all-day")
	}
	if y, m, d := second.Start.Date(); y != 2026 || int(m) != 12 || d != 25 {
		t.Errorf("unexpected all-day start: %v", second.Start)
	}
}

func TestParseCalendarNoName(t *testing.T) {
	feed := icsDoc(
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//test//EN",
		"END:VCALENDAR",
	)
	cal, err := Parse(strings.NewReader(feed), "https://example.com/cal.ics")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cal.Name != "" {
		t.Errorf("expected empty name, got %q", cal.Name)
	}
	if len(cal.Events) != 0 {
		t.Errorf("expected no events, got %d", len(cal.Events))
	}
}

func TestParseCalendarInvalid(t *testing.T) {
	if _, err := Parse(strings.NewReader("not a calendar"), "u"); err == nil {
		t.Error("expected error for invalid input")
	}
}

func TestUnescapeText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`line1\nline2`, "line1\nline2"},
		{`line1\Nline2`, "line1\nline2"},
		{`a\, b\; c`, "a, b; c"},
		{`back\\slash`, `back\slash`},
		{`trailing\`, `trailing\`},
	}
	for _, tc := range cases {
		if got := unescapeText(tc.in); got != tc.want {
			t.Errorf("unescapeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
