package notifier

import "context"

// Notifier delivers one formatted push notification. Delivery is
// best-effort: the run logs failures and moves on, it never retries.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
