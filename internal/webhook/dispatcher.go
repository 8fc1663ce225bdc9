// Package webhook delivers formatted messages to the chat endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/abelbrown/herald/internal/message"
)

// Dispatcher posts JSON payloads to a single configured webhook URL.
// Delivery is one attempt per message; failures are never retried.
type Dispatcher struct {
	client *http.Client
	url    string
}

// New creates a Dispatcher for the given endpoint.
func New(client *http.Client, url string) *Dispatcher {
	return &Dispatcher{client: client, url: url}
}

// Post serializes the structured message and delivers it.
func (d *Dispatcher) Post(ctx context.Context, msg *message.Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	return d.PostRaw(ctx, body)
}

// PostRaw delivers a pre-rendered JSON body (template mode).
func (d *Dispatcher) PostRaw(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("call webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook call failed: %d %s", resp.StatusCode, resp.Status)
	}
	return nil
}
