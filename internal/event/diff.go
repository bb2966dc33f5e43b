package event

import "strings"

// Transition records a tracked status change for one event across runs.
type Transition struct {
	Event     *Event
	OldStatus string
	NewStatus string
}

// Options control how a diff is interpreted.
type Options struct {
	// PreviousHash is the content hash loaded from state. Empty means no
	// usable prior state exists and this run is a first run.
	PreviousHash string
	// NotifyFirstRun fires a baseline notification on a first run.
	NotifyFirstRun bool
}

// Result describes what changed between the previous and current event sets
// and what the run should do about it.
type Result struct {
	// NewEvents are tracked events absent from the previous tracked set,
	// narrowed by the stricter notify-as-new predicate, in canonical order.
	NewEvents []*Event
	// Reopened are Saturday occurrences of the recurring tour whose status
	// flipped from exactly SOLD OUT to anything else, in canonical order.
	Reopened []Transition
	// FirstRun is true when no prior state hash could be loaded.
	FirstRun bool
	// ShouldNotify is true when a notification should be sent this run.
	ShouldNotify bool
	// Hash is the content hash of the current event set.
	Hash string
	// ShouldPersist is true when state should be rewritten: a first run, or
	// the hash differing from the loaded one. Equal hashes suppress the
	// write entirely.
	ShouldPersist bool
}

// Diff compares the current event set against the previous run's tracked map
// and produces the notification and persistence decision for this run.
func Diff(current []*Event, previous map[string]*Event, opts Options) (*Result, error) {
	hash, err := ContentHash(sortedCopy(current))
	if err != nil {
		return nil, err
	}

	res := &Result{
		FirstRun: opts.PreviousHash == "",
		Hash:     hash,
	}
	res.ShouldPersist = res.FirstRun || hash != opts.PreviousHash

	currentByKey := make(map[string]*Event, len(current))
	for _, e := range current {
		currentByKey[e.Key()] = e
	}

	previousTracked := make(map[string]*Event, len(previous))
	for k, e := range previous {
		if Tracked(e) {
			previousTracked[k] = e
		}
	}

	for k, e := range currentByKey {
		if !Tracked(e) || !NotifyAsNew(e) {
			continue
		}
		if _, seen := previousTracked[k]; !seen {
			res.NewEvents = append(res.NewEvents, e)
		}
	}
	SortCanonical(res.NewEvents)

	// The reopened rule fires only when the previous status was exactly
	// SOLD OUT; a WAITLISTED occurrence becoming available does not fire.
	for _, e := range sortedCopy(current) {
		if !IsArtArchTour(e) || !IsSaturday(e) {
			continue
		}
		prev, ok := previous[e.Key()]
		if !ok {
			continue
		}
		if strings.ToUpper(prev.Status) == "SOLD OUT" && strings.ToUpper(e.Status) != "SOLD OUT" {
			res.Reopened = append(res.Reopened, Transition{
				Event:     e,
				OldStatus: prev.Status,
				NewStatus: e.Status,
			})
		}
	}

	if res.FirstRun {
		res.ShouldNotify = opts.NotifyFirstRun
	} else {
		res.ShouldNotify = len(res.NewEvents) > 0 || len(res.Reopened) > 0
	}

	return res, nil
}

func sortedCopy(events []*Event) []*Event {
	out := make([]*Event, len(events))
	copy(out, events)
	SortCanonical(out)
	return out
}
