// Package report formats notification bodies and the auxiliary output
// mirrors (Markdown listing and pretty-printed JSON) from event sets.
package report
