package message

import (
	"fmt"
	"time"

	"github.com/abelbrown/herald/internal/calendar"
)

// Builder assembles the structured notification message.
type Builder struct {
	Username     string
	IconURL      string
	Text         string // body text, macro-substituted once per run
	DefaultImage string // fallback when no preview image was resolved
	Signature    string // trailing fragment stripped from descriptions
}

// Build creates one message with an attachment per event, in selection
// order. images is aligned with events; an empty entry falls back to the
// configured default image so attachments never ship without one.
func (b Builder) Build(events []*calendar.Event, images []string, target time.Time) *Message {
	msg := &Message{
		Username: b.Username,
		IconURL:  b.IconURL,
		Text: Substitute(b.Text, []Replacement{
			{MacroDate, FormatDate(target)},
			{MacroPlural, PluralSuffix(len(events))},
		}),
		Attachments: make([]Attachment, 0, len(events)),
	}

	for i, ev := range events {
		image := ""
		if i < len(images) {
			image = images[i]
		}
		if image == "" {
			image = b.DefaultImage
		}
		msg.Attachments = append(msg.Attachments, b.attachment(ev, image))
	}

	return msg
}

func (b Builder) attachment(ev *calendar.Event, image string) Attachment {
	att := Attachment{
		Title:       ev.Summary,
		TitleLink:   ev.URL,
		ImageURL:    image,
		MessageLink: ev.URL,
		Text:        NormalizeDescription(ev.Description, b.Signature),
		Fields: []Field{
			{Short: true, Title: "Read more", Value: ev.URL},
		},
	}

	if ev.Calendar != nil && ev.Calendar.Name != "" {
		att.Fields = append(att.Fields, Field{
			Short: true,
			Title: "Download calendar",
			Value: fmt.Sprintf("[%s](%s)", ev.Calendar.Name, ev.Calendar.SourceURL),
		})
	}

	return att
}
