package notifier

import (
	"context"
	"fmt"
	"io"
)

// DryRunNotifier prints what would be posted without calling the server.
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRun creates a dry-run notifier writing to out.
func NewDryRun(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Notify prints the notification that would have been sent.
func (n *DryRunNotifier) Notify(ctx context.Context, title, body string) error {
	fmt.Fprintf(n.out, "--- Notification (dry run) ---\nTitle: %s\n%s\n", title, body)
	return nil
}
