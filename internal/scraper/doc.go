// Package scraper extracts normalized event records from a materialized
// snapshot of the Athenaeum listing page.
//
// The scraper walks the event cards in document order, resolves and checks
// each card's link against the site's path scheme, applies field-level
// fallbacks for missing data, and rejects candidates without a url, title,
// or resolvable date. Duplicate URLs are dropped first-seen-wins. Output is
// always in canonical event order.
package scraper
