package event

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Event represents one listing entry from the Athenaeum events page.
// Events are immutable once extracted; identity is the canonical URL.
type Event struct {
	URL      string
	Date     Date
	TimeET   string
	Status   string
	Title    string
	Venue    string
	Keywords []string
}

// Key returns the event's stable identity across runs.
func (e *Event) Key() string {
	return e.URL
}

// Record is the persisted JSON shape for a single event. The date is stored
// as the canonical "MONTH DAY, YEAR" string and re-parsed with the same
// strict pattern used during extraction.
type Record struct {
	URL      string   `json:"url"`
	Date     string   `json:"date"`
	TimeET   string   `json:"time_et"`
	Status   string   `json:"status"`
	Title    string   `json:"event_title"`
	Venue    string   `json:"venue"`
	Keywords []string `json:"keywords"`
}

// Record converts an event to its persisted shape.
func (e *Event) Record() Record {
	kw := e.Keywords
	if kw == nil {
		kw = []string{}
	}
	return Record{
		URL:      e.URL,
		Date:     e.Date.String(),
		TimeET:   e.TimeET,
		Status:   e.Status,
		Title:    e.Title,
		Venue:    e.Venue,
		Keywords: kw,
	}
}

// FromRecord rebuilds an event from its persisted shape. Records with an
// empty URL, an empty title, or a date that fails the strict re-parse are
// rejected; callers treat that as the record being absent.
func FromRecord(r Record) (*Event, error) {
	if Normalize(r.URL) == "" {
		return nil, fmt.Errorf("record has no url")
	}
	title := Normalize(r.Title)
	if title == "" {
		return nil, fmt.Errorf("record %s has no title", r.URL)
	}
	d, ok := ParseDateHeader(r.Date)
	if !ok {
		return nil, fmt.Errorf("record %s has unparsable date %q", r.URL, r.Date)
	}
	keywords := make([]string, 0, len(r.Keywords))
	for _, k := range r.Keywords {
		if k = Normalize(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return &Event{
		URL:      r.URL,
		Date:     d,
		TimeET:   Normalize(r.TimeET),
		Status:   Normalize(r.Status),
		Title:    title,
		Venue:    Normalize(r.Venue),
		Keywords: keywords,
	}, nil
}

// Records converts a slice of events to persisted shapes, preserving order.
func Records(events []*Event) []Record {
	out := make([]Record, 0, len(events))
	for _, e := range events {
		out = append(out, e.Record())
	}
	return out
}

// SortCanonical sorts events into the canonical order used everywhere
// downstream: (year, month, day, time label, lowercase title, url). The url
// is the final tiebreak so equal-looking records still order fully.
func SortCanonical(events []*Event) {
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Date.Year != b.Date.Year {
			return a.Date.Year < b.Date.Year
		}
		if a.Date.Month != b.Date.Month {
			return a.Date.Month < b.Date.Month
		}
		if a.Date.Day != b.Date.Day {
			return a.Date.Day < b.Date.Day
		}
		if a.TimeET != b.TimeET {
			return a.TimeET < b.TimeET
		}
		at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
		if at != bt {
			return at < bt
		}
		return a.URL < b.URL
	})
}

// ContentHash computes the SHA-256 hex digest of the canonical serialization
// of the given events. The timestamp of the run is deliberately excluded so
// state only counts as changed when event content changes.
func ContentHash(events []*Event) (string, error) {
	blob, err := json.MarshalIndent(Records(events), "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing events: %w", err)
	}
	return fmt.Sprintf("%x", sha256.Sum256(blob)), nil
}

// Normalize collapses runs of whitespace to single spaces and trims.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeStatus uppercases a raw status label and collapses known display
// variants, e.g. "Wait Listed" becomes "WAITLISTED".
func NormalizeStatus(s string) string {
	s = strings.ToUpper(Normalize(s))
	s = strings.ReplaceAll(s, "WAIT LISTED", "WAITLISTED")
	return s
}
