// Package browser materializes the dynamically-rendered listing page: it
// drives a headless Chrome through "load more" clicks and scroll-triggered
// lazy loading until no new event cards appear, then exposes the expanded
// DOM as an HTML snapshot for the extractor.
//
// Every wait inside the expansion loops is bounded. Timeouts and transient
// failures mean "proceed with what is loaded"; only the initial navigation
// is allowed to fail the run.
package browser
