package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uguryavuz/ath-events/internal/event"
	"github.com/uguryavuz/ath-events/internal/logger"
)

// appName tags the persisted document so it is recognizable on disk.
const appName = "ath-events"

// State is the persisted snapshot document. The hash covers the canonical
// serialization of Items only, never CheckedAt.
type State struct {
	App       string         `json:"app"`
	CheckedAt string         `json:"checked_at"`
	URL       string         `json:"url"`
	Hash      string         `json:"hash"`
	Items     []event.Record `json:"items"`
}

// Store owns reading and writing the state file. No other component
// persists it.
type Store struct {
	path string
}

// New creates a Store for the given state file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the previous run's state. An absent, unreadable, or corrupt
// file is treated as no prior state: the hash is empty and the run proceeds
// with first-run semantics. Individual records that fail validation are
// dropped rather than failing the load.
func (s *Store) Load() (hash string, byURL map[string]*event.Event) {
	byURL = make(map[string]*event.Event)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("state file unreadable, treating as first run", logger.Fields{
				"path": s.path,
			})
		}
		return "", byURL
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		logger.Warn("state file corrupt, treating as first run", logger.Fields{
			"path": s.path,
		})
		return "", byURL
	}

	for _, r := range st.Items {
		e, err := event.FromRecord(r)
		if err != nil {
			logger.Debug("dropping invalid state record", logger.Fields{"url": r.URL})
			continue
		}
		byURL[e.Key()] = e
	}
	return st.Hash, byURL
}

// Save writes the full snapshot, replacing any prior content. The write is
// atomic: a temp file in the same directory is renamed over the target, so
// a crash leaves either the old or the new state on disk.
func (s *Store) Save(checkedAt, sourceURL string, items []*event.Event, hash string) error {
	st := State{
		App:       appName,
		CheckedAt: checkedAt,
		URL:       sourceURL,
		Hash:      hash,
		Items:     event.Records(items),
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
