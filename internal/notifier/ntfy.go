package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// NtfyNotifier posts notifications to an ntfy topic endpoint. The title
// travels in the Title header and the formatted body is the request payload.
type NtfyNotifier struct {
	url    string
	client *http.Client
}

// NtfyOption configures an NtfyNotifier.
type NtfyOption func(*NtfyNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) NtfyOption {
	return func(n *NtfyNotifier) { n.client = client }
}

// NewNtfy creates a notifier for the given server and topic.
func NewNtfy(server, topic string, opts ...NtfyOption) *NtfyNotifier {
	n := &NtfyNotifier{
		url:    strings.TrimRight(server, "/") + "/" + topic,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify posts one notification.
func (n *NtfyNotifier) Notify(ctx context.Context, title, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating notification request: %w", err)
	}
	req.Header.Set("Title", title)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting notification: %w", err)
	}
	defer resp.Body.Close()

	// Drain to allow connection reuse.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification rejected: status %d", resp.StatusCode)
	}
	return nil
}
