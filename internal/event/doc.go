// Package event provides the Event model for Boston Athenaeum listing
// entries, the strict calendar-date parsing shared by extraction and
// persistence, the named filter predicates, and the diff engine that decides
// what a run should notify about and whether state should be rewritten.
//
// An event's identity is its canonical URL. The canonical ordering used by
// every consumer is (year, month, day, time label, lowercase title, url).
package event
