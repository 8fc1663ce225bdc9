// Package fetch retrieves remote iCalendar feeds.
//
// Sources are fetched sequentially, one request at a time. Each source
// succeeds or fails on its own; a failing source never aborts the batch.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/abelbrown/herald/internal/calendar"
	"github.com/abelbrown/herald/internal/logging"
)

// userAgent identifies herald to feed hosts.
const userAgent = "herald/1.0 (https://github.com/abelbrown/herald)"

// Result is the outcome of fetching one source: a parsed calendar or the
// reason it was skipped. Exactly one of Calendar and Err is set.
type Result struct {
	URL      string
	Calendar *calendar.Calendar
	Err      error
}

// Fetcher retrieves calendars from feed URLs.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a Fetcher using the given HTTP client. The client is shared
// across the run and injected so tests can point it at local servers.
func New(client *http.Client) *Fetcher {
	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// Fetch retrieves and parses a single calendar source.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*calendar.Calendar, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	cal, err := calendar.Parse(resp.Body, url)
	if err != nil {
		return nil, err
	}
	return cal, nil
}

// FetchAll fetches every source in order and returns one Result per source.
// An empty source list returns an empty slice without any network calls.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, 0, len(urls))
	for _, url := range urls {
		cal, err := f.Fetch(ctx, url)
		if err != nil {
			logging.Warn("calendar source failed", "url", url, "error", err)
			results = append(results, Result{URL: url, Err: err})
			continue
		}
		logging.Debug("fetched calendar", "url", url, "name", cal.Name, "events", len(cal.Events))
		results = append(results, Result{URL: url, Calendar: cal})
	}
	return results
}
