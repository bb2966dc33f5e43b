// Package cli wires one monitoring run end to end: configuration, state
// load, page materialization, extraction, diff, notification, persistence,
// and the final one-line status report.
package cli
