// Package storage provides JSON persistence for the event state snapshot.
//
// The state file lives at a fixed path and is owned exclusively by this
// package. Absent or corrupt state downgrades the run to first-run semantics
// rather than failing. The skip-write policy for unchanged content lives in
// the run flow, not here.
package storage
