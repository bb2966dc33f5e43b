package event

import "strings"

// Predicate reports whether an event satisfies a single named condition.
// Predicates are small pure functions composed with And/Not; each one is
// independently testable.
type Predicate func(*Event) bool

// And returns a predicate satisfied only when all given predicates are.
func And(ps ...Predicate) Predicate {
	return func(e *Event) bool {
		for _, p := range ps {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(e *Event) bool {
		return !p(e)
	}
}

// IsOrientationTour matches the free weekly library orientation tours,
// by case-insensitive substring on the title.
func IsOrientationTour(e *Event) bool {
	return strings.Contains(strings.ToUpper(e.Title), "LIBRARY ORIENTATION TOUR")
}

// HasChildrenFamilyKeyword matches events tagged Children's/Family, in any case.
func HasChildrenFamilyKeyword(e *Event) bool {
	for _, k := range e.Keywords {
		if strings.EqualFold(strings.TrimSpace(k), "children's/family") {
			return true
		}
	}
	return false
}

// IsArtArchTour matches the recurring Art & Architecture Tour by exact
// normalized title.
func IsArtArchTour(e *Event) bool {
	return strings.EqualFold(Normalize(e.Title), "art & architecture tour")
}

// IsSaturday reports whether the event falls on a Saturday.
func IsSaturday(e *Event) bool {
	return e.Date.IsSaturday()
}

// Tracked selects the events retained in the baseline comparison set:
// everything except orientation tours, Children's/Family events, and
// non-Saturday occurrences of the Art & Architecture Tour.
var Tracked = And(
	Not(IsOrientationTour),
	Not(HasChildrenFamilyKeyword),
	Not(And(IsArtArchTour, Not(IsSaturday))),
)

// NotifyAsNew selects the tracked events whose first appearance warrants a
// push notification. Any occurrence of the recurring tour is excluded, even
// on a Saturday; those are only interesting when they reopen.
var NotifyAsNew = And(Tracked, Not(IsArtArchTour))

// FilterTracked returns the tracked subset of events, in canonical order.
func FilterTracked(events []*Event) []*Event {
	var out []*Event
	for _, e := range events {
		if Tracked(e) {
			out = append(out, e)
		}
	}
	SortCanonical(out)
	return out
}
