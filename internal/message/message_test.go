package message

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/herald/internal/calendar"
)

func TestSubstitute(t *testing.T) {
	got := Substitute("Hello %NAME%, see %URL%", []Replacement{
		{MacroName, "World"},
		{MacroURL, "https://example.com"},
	})
	if got != "Hello World, see https://example.com" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestSubstituteUnknownTokensUntouched(t *testing.T) {
	got := Substitute("keep %UNKNOWN% alone", []Replacement{{MacroName, "x"}})
	if got != "keep %UNKNOWN% alone" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestPluralSuffix(t *testing.T) {
	if got := PluralSuffix(1); got != "" {
		t.Errorf("expected empty suffix for one event, got %q", got)
	}
	if got := PluralSuffix(2); got != "s" {
		t.Errorf("expected 's' for two events, got %q", got)
	}
	if got := PluralSuffix(5); got != "s" {
		t.Errorf("expected 's' for five events, got %q", got)
	}
}

func TestNormalizeDescription(t *testing.T) {
	in := "First paragraph.\n\n\n\nSecond paragraph.\n\nSent from my calendar\n"
	got := NormalizeDescription(in, "Sent from my calendar")
	if got != "First paragraph.\nSecond paragraph." {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestNormalizeDescriptionNoSignature(t *testing.T) {
	got := NormalizeDescription("  hello  ", "")
	if got != "hello" {
		t.Errorf("unexpected result: %q", got)
	}
}

func testEvents() []*calendar.Event {
	cal := &calendar.Calendar{
		Name:      "Holidays",
		SourceURL: "https://example.com/cal.ics",
	}
	events := []*calendar.Event{
		{
			Summary:     "Independence Day",
			Description: "Fireworks",
			URL:         "https://example.com/july4",
			Start:       time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
			Calendar:    cal,
		},
		{
			Summary:  "Company Picnic",
			URL:      "https://example.com/picnic",
			Start:    time.Date(2026, 7, 4, 12, 0, 0, 0, time.UTC),
			Calendar: cal,
		},
	}
	cal.Events = events
	return events
}

func TestBuilderBuild(t *testing.T) {
	b := Builder{
		Username:     "herald",
		IconURL:      "https://example.com/icon.png",
		Text:         "Upcoming event%PLURAL% on %DATE%:",
		DefaultImage: "https://example.com/default.png",
	}
	events := testEvents()
	target := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)

	msg := b.Build(events, []string{"https://cdn.example.com/july4.png", ""}, target)

	if msg.Username != "herald" {
		t.Errorf("unexpected username: %q", msg.Username)
	}
	if msg.Text != "Upcoming events on Saturday, 4 July 2026:" {
		t.Errorf("unexpected text: %q", msg.Text)
	}
	if len(msg.Attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(msg.Attachments))
	}

	first := msg.Attachments[0]
	if first.Title != "Independence Day" || first.TitleLink != "https://example.com/july4" {
		t.Errorf("unexpected first attachment: %+v", first)
	}
	if first.ImageURL != "https://cdn.example.com/july4.png" {
		t.Errorf("expected resolved image, got %q", first.ImageURL)
	}
	if len(first.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(first.Fields))
	}
	if first.Fields[0].Title != "Read more" || first.Fields[0].Value != "https://example.com/july4" {
		t.Errorf("unexpected read-more field: %+v", first.Fields[0])
	}
	if first.Fields[1].Value != "[Holidays](https://example.com/cal.ics)" {
		t.Errorf("unexpected calendar field: %+v", first.Fields[1])
	}

	// Second event had no resolved image: default applies.
	if msg.Attachments[1].ImageURL != "https://example.com/default.png" {
		t.Errorf("expected default image, got %q", msg.Attachments[1].ImageURL)
	}
}

func TestBuilderSingularText(t *testing.T) {
	b := Builder{Text: "Holiday%PLURAL% ahead"}
	events := testEvents()[:1]

	msg := b.Build(events, []string{"img"}, time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC))
	if msg.Text != "Holiday ahead" {
		t.Errorf("unexpected text: %q", msg.Text)
	}
}

func TestBuilderOmitsCalendarFieldWhenUnnamed(t *testing.T) {
	ev := &calendar.Event{
		Summary:  "Mystery",
		URL:      "https://example.com/x",
		Calendar: &calendar.Calendar{SourceURL: "https://example.com/cal.ics"},
	}
	msg := Builder{DefaultImage: "d"}.Build([]*calendar.Event{ev}, []string{""}, time.Now())
	if len(msg.Attachments[0].Fields) != 1 {
		t.Errorf("expected only the read-more field, got %+v", msg.Attachments[0].Fields)
	}
}

func TestLoadTemplateMissing(t *testing.T) {
	if _, err := LoadTemplate("does-not-exist.tmpl"); err == nil {
		t.Error("expected error for missing template")
	}
}

func TestTemplateRender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "event.tmpl")
	body := `{"text":"%NAME% on %DATE%%PLURAL%","image":"%IMAGE_URL%","cal":"%CALENDAR_NAME%","dl":"%CALENDAR_DOWNLOAD_URL%","desc":"%DESCRIPTION%","url":"%URL%"}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	tmpl, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate failed: %v", err)
	}

	ev := testEvents()[0]
	got := tmpl.Render(ev, "https://cdn.example.com/p.png", time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC), "s")

	for _, want := range []string{
		`"text":"Independence Day on Saturday, 4 July 2026s"`,
		`"image":"https://cdn.example.com/p.png"`,
		`"cal":"Holidays"`,
		`"dl":"https://example.com/cal.ics"`,
		`"desc":"Fireworks"`,
		`"url":"https://example.com/july4"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered template missing %s\ngot: %s", want, got)
		}
	}
}
