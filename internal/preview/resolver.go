// Package preview resolves a social preview image for an event page.
package preview

import (
	"context"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/abelbrown/herald/internal/logging"
)

const userAgent = "herald/1.0 (https://github.com/abelbrown/herald)"

// Resolver fetches event pages and extracts their Open Graph image.
type Resolver struct {
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a Resolver using the given HTTP client.
func New(client *http.Client) *Resolver {
	return &Resolver{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// Resolve returns the og:image URL declared by the page, or "" when the page
// cannot be fetched, parsed, or declares no image. The lookup is best-effort;
// callers substitute their configured default image on an empty result.
func (r *Resolver) Resolve(ctx context.Context, pageURL string) string {
	if pageURL == "" {
		return ""
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		logging.Debug("preview lookup skipped", "url", pageURL, "error", err)
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		logging.Debug("preview fetch failed", "url", pageURL, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logging.Debug("preview fetch failed", "url", pageURL, "status", resp.StatusCode)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		logging.Debug("preview parse failed", "url", pageURL, "error", err)
		return ""
	}

	image, _ := doc.Find(`head meta[property="og:image"]`).First().Attr("content")
	return image
}
