// Package app drives one herald invocation end to end:
// fetch -> select -> enrich -> format -> deliver.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/abelbrown/herald/internal/calendar"
	"github.com/abelbrown/herald/internal/config"
	"github.com/abelbrown/herald/internal/fetch"
	"github.com/abelbrown/herald/internal/logging"
	"github.com/abelbrown/herald/internal/message"
	"github.com/abelbrown/herald/internal/preview"
	"github.com/abelbrown/herald/internal/selection"
	"github.com/abelbrown/herald/internal/webhook"
)

// Summary reports what one run did.
type Summary struct {
	Sources   int // configured calendar sources
	Failed    int // sources that could not be fetched or parsed
	Matched   int // events selected for the target date
	Delivered int // events delivered to the webhook
}

// Run executes the pipeline once for the target date. A run with no matching
// events is a successful no-op. Delivery failure is returned as an error.
func Run(ctx context.Context, cfg *config.Config, target time.Time) (Summary, error) {
	var summary Summary

	// Load the template before any network work so a missing file is fatal
	// even on runs with nothing to announce.
	var tmpl *message.Template
	if cfg.TemplateMode() {
		var err error
		tmpl, err = message.LoadTemplate(cfg.DataTemplate)
		if err != nil {
			return summary, err
		}
		tmpl.Signature = cfg.SignatureForRemoval
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	fetcher := fetch.New(client)

	results := fetcher.FetchAll(ctx, cfg.CalendarSources)
	summary.Sources = len(results)

	cals := make([]*calendar.Calendar, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			summary.Failed++
			continue
		}
		cals = append(cals, res.Calendar)
	}

	events := selection.New(cfg.Selection).Select(cals, target)
	summary.Matched = len(events)
	if len(events) == 0 {
		logging.Info("nothing to announce", "date", target.Format("2006-01-02"), "sources", summary.Sources, "failed", summary.Failed)
		return summary, nil
	}

	resolver := preview.New(client)
	images := make([]string, len(events))
	for i, ev := range events {
		images[i] = resolver.Resolve(ctx, ev.URL)
		if images[i] == "" {
			images[i] = cfg.DefaultImage
		}
	}

	dispatcher := webhook.New(client, cfg.WebhookURL)

	if tmpl != nil {
		// Template mode: one webhook call per matched event.
		plural := message.PluralSuffix(len(events))
		for i, ev := range events {
			body := tmpl.Render(ev, images[i], target, plural)
			if err := dispatcher.PostRaw(ctx, []byte(body)); err != nil {
				return summary, err
			}
			summary.Delivered++
		}
	} else {
		// Structured mode: one webhook call carrying all events.
		builder := message.Builder{
			Username:     cfg.Username,
			IconURL:      cfg.IconURL,
			Text:         cfg.Text,
			DefaultImage: cfg.DefaultImage,
			Signature:    cfg.SignatureForRemoval,
		}
		msg := builder.Build(events, images, target)
		if err := dispatcher.Post(ctx, msg); err != nil {
			return summary, err
		}
		summary.Delivered = len(events)
	}

	logging.Info("announcements delivered", "date", target.Format("2006-01-02"), "events", summary.Delivered, "sources", summary.Sources, "failed", summary.Failed)
	return summary, nil
}
