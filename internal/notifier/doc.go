// Package notifier provides the push-notification boundary for the events
// checker: an interface, an ntfy HTTP client, and a dry-run implementation
// that prints instead of posting.
package notifier
