package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/uguryavuz/ath-events/internal/event"
)

// Notification titles for the two firing modes.
const (
	BaselineTitle = "Athenaeum events: baseline"
	UpdateTitle   = "Athenaeum events updated"
)

// FormatLine renders one event as a report line:
//
//	- FEBRUARY 25 (Wed) 6:00 PM ET -- [SOLD OUT] Some Title
//
// The time segment and ET suffix are omitted when there is no time label;
// the bracketed status prefix is omitted when there is no status. URLs are
// deliberately not included.
func FormatLine(e *event.Event) string {
	status := ""
	if e.Status != "" {
		status = fmt.Sprintf("[%s] ", e.Status)
	}
	return fmt.Sprintf("- %s -- %s%s", when(e), status, e.Title)
}

// FormatTransitionLine renders a reopened-tour transition, with the old and
// new status made explicit. An empty new status renders as AVAILABLE.
func FormatTransitionLine(t event.Transition) string {
	newStatus := t.NewStatus
	if newStatus == "" {
		newStatus = "AVAILABLE"
	}
	return fmt.Sprintf("- %s -- [%s -> %s] %s", when(t.Event), t.OldStatus, newStatus, t.Event.Title)
}

// when renders "FEBRUARY 25 (Wed)" plus " 6:00 PM ET" when a time label exists.
func when(e *event.Event) string {
	s := fmt.Sprintf("%s %d (%s)", e.Date.MonthName(), e.Date.Day, e.Date.Weekday())
	if e.TimeET != "" {
		s += " " + e.TimeET + " ET"
	}
	return s
}

// BaselineBody renders the first-run notification body: every currently
// tracked event, in canonical order.
func BaselineBody(tracked []*event.Event) string {
	lines := make([]string, 0, len(tracked)+1)
	lines = append(lines, fmt.Sprintf("Baseline (current matching events): %d", len(tracked)))
	for _, e := range tracked {
		lines = append(lines, FormatLine(e))
	}
	return strings.Join(lines, "\n")
}

// UpdateBody renders the update notification body: the new-events section,
// then the reopened-tour section, separated by a single blank line when both
// are present.
func UpdateBody(res *event.Result) string {
	var parts []string
	if len(res.NewEvents) > 0 {
		parts = append(parts, fmt.Sprintf("New events: %d", len(res.NewEvents)))
		for _, e := range res.NewEvents {
			parts = append(parts, FormatLine(e))
		}
	}
	if len(res.Reopened) > 0 {
		if len(parts) > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, fmt.Sprintf("Art & Architecture Tour reopened (Sat): %d", len(res.Reopened)))
		for _, t := range res.Reopened {
			parts = append(parts, FormatTransitionLine(t))
		}
	}
	return strings.Join(parts, "\n")
}

// Markdown renders the full event set (not just tracked) as the auxiliary
// Markdown mirror, with keyword annotations in parentheses.
func Markdown(events []*event.Event) string {
	lines := make([]string, 0, len(events)+1)
	lines = append(lines, "# Boston Athenaeum events\n")
	for _, e := range events {
		line := FormatLine(e)
		if len(e.Keywords) > 0 {
			line += fmt.Sprintf(" (%s)", strings.Join(e.Keywords, ", "))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n") + "\n"
}

// PrettyJSON renders the full event set as the auxiliary pretty-printed
// records array.
func PrettyJSON(events []*event.Event) ([]byte, error) {
	data, err := json.MarshalIndent(event.Records(events), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding events: %w", err)
	}
	return append(data, '\n'), nil
}
