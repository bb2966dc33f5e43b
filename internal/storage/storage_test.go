package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/uguryavuz/ath-events/internal/event"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "state.json"))
}

func sampleEvents() []*event.Event {
	return []*event.Event{
		{
			URL:      "https://events.bostonathenaeum.org/en/poetry",
			Date:     event.Date{Year: 2026, Month: 2, Day: 25},
			TimeET:   "6:00 PM",
			Status:   "SOLD OUT",
			Title:    "An Evening of Poetry",
			Venue:    "Long Room",
			Keywords: []string{"Poetry"},
		},
		{
			URL:   "https://events.bostonathenaeum.org/en/tour",
			Date:  event.Date{Year: 2026, Month: 2, Day: 28},
			Title: "Art & Architecture Tour",
		},
	}
}

func TestLoadMissingFile(t *testing.T) {
	hash, byURL := tempStore(t).Load()
	if hash != "" {
		t.Errorf("hash = %q, want empty (first run)", hash)
	}
	if len(byURL) != 0 {
		t.Errorf("byURL has %d entries, want 0", len(byURL))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	store := tempStore(t)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt state: %v", err)
	}

	hash, byURL := store.Load()
	if hash != "" || len(byURL) != 0 {
		t.Errorf("corrupt state should mean first run, got hash=%q items=%d", hash, len(byURL))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := tempStore(t)
	events := sampleEvents()

	hash, err := event.ContentHash(events)
	if err != nil {
		t.Fatalf("ContentHash: %v", err)
	}
	if err := store.Save("2026-02-25T08:00:00", "https://events.bostonathenaeum.org/en/", events, hash); err != nil {
		t.Fatalf("Save: %v", err)
	}

	gotHash, byURL := store.Load()
	if gotHash != hash {
		t.Errorf("hash = %q, want %q", gotHash, hash)
	}
	if len(byURL) != len(events) {
		t.Fatalf("loaded %d events, want %d", len(byURL), len(events))
	}
	poetry := byURL["https://events.bostonathenaeum.org/en/poetry"]
	if poetry == nil {
		t.Fatal("poetry event missing after round trip")
	}
	if poetry.Status != "SOLD OUT" || poetry.TimeET != "6:00 PM" || poetry.Date != (event.Date{Year: 2026, Month: 2, Day: 25}) {
		t.Errorf("round trip mangled event: %+v", poetry)
	}
}

func TestSaveDocumentShape(t *testing.T) {
	store := tempStore(t)
	if err := store.Save("2026-02-25T08:00:00", "https://example.org/en/", sampleEvents(), "abc123"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("reading saved state: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("saved state is not valid JSON: %v", err)
	}
	for _, key := range []string{"app", "checked_at", "url", "hash", "items"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("saved document missing %q field", key)
		}
	}
}

func TestLoadDropsInvalidRecords(t *testing.T) {
	store := tempStore(t)
	state := State{
		App:       "ath-events",
		CheckedAt: "2026-02-25T08:00:00",
		Hash:      "somehash",
		Items: []event.Record{
			{URL: "https://x/en/good", Date: "FEBRUARY 25, 2026", Title: "Good"},
			{URL: "https://x/en/bad-date", Date: "not a date", Title: "Bad"},
			{URL: "", Date: "FEBRUARY 25, 2026", Title: "No URL"},
		},
	}
	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(store.Path(), data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	hash, byURL := store.Load()
	if hash != "somehash" {
		t.Errorf("hash = %q, want somehash (partial corruption keeps the hash)", hash)
	}
	if len(byURL) != 1 {
		t.Fatalf("loaded %d records, want 1 (invalid ones dropped)", len(byURL))
	}
	if byURL["https://x/en/good"] == nil {
		t.Error("valid record was dropped")
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := tempStore(t)
	if err := store.Save("t1", "u", sampleEvents(), "hash1"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save("t2", "u", nil, "hash2"); err != nil {
		t.Fatalf("second save: %v", err)
	}

	hash, byURL := store.Load()
	if hash != "hash2" || len(byURL) != 0 {
		t.Errorf("second save should fully replace: hash=%q items=%d", hash, len(byURL))
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only state.json in dir, found %d entries", len(entries))
	}
}
