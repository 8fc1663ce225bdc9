package message

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abelbrown/herald/internal/calendar"
)

// Template is a loaded message template rendered once per event.
type Template struct {
	body      string
	Signature string
}

// LoadTemplate reads the template file. A bare filename resolves against a
// templates/ directory next to the executable, then against the working
// directory. A missing template is a fatal configuration error.
func LoadTemplate(name string) (*Template, error) {
	path, err := resolveTemplatePath(name)
	if err != nil {
		return nil, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	return &Template{body: string(body)}, nil
}

func resolveTemplatePath(name string) (string, error) {
	if filepath.IsAbs(name) || strings.ContainsRune(name, os.PathSeparator) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("template file %s: %w", name, err)
		}
		return name, nil
	}

	var tried []string
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "templates", name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		tried = append(tried, candidate)
	}
	for _, candidate := range []string{filepath.Join("templates", name), name} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		tried = append(tried, candidate)
	}
	return "", fmt.Errorf("template file %s not found (tried %s)", name, strings.Join(tried, ", "))
}

// Render substitutes all macros for a single event. plural and date are
// resolved once per run by the caller and passed in.
func (t *Template) Render(ev *calendar.Event, imageURL string, target time.Time, plural string) string {
	calName, calURL := "", ""
	if ev.Calendar != nil {
		calName = ev.Calendar.Name
		calURL = ev.Calendar.SourceURL
	}
	return Substitute(t.body, []Replacement{
		{MacroName, ev.Summary},
		{MacroDescription, NormalizeDescription(ev.Description, t.Signature)},
		{MacroURL, ev.URL},
		{MacroCalendarDownloadURL, calURL},
		{MacroImageURL, imageURL},
		{MacroDate, FormatDate(target)},
		{MacroCalendarName, calName},
		{MacroPlural, plural},
	})
}
