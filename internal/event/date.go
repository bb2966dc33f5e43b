package event

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a plain calendar date. Times on the source site are shown in US
// Eastern ("ET") and are carried as display labels only, so no timezone math
// is ever applied here.
type Date struct {
	Year  int
	Month int
	Day   int
}

var monthNames = [12]string{
	"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
	"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
}

// dateHeaderRe matches section headers like "FEBRUARY 25, 2026".
var dateHeaderRe = regexp.MustCompile(`(?i)^(JANUARY|FEBRUARY|MARCH|APRIL|MAY|JUNE|JULY|AUGUST|SEPTEMBER|OCTOBER|NOVEMBER|DECEMBER) (\d{1,2}), (\d{4})$`)

// MonthNumber returns the 1-based month for an uppercase month name,
// or 0 if the name is not one of the twelve.
func MonthNumber(name string) int {
	for i, m := range monthNames {
		if m == name {
			return i + 1
		}
	}
	return 0
}

// ParseDateHeader parses a partition header such as "FEBRUARY 25, 2026".
// The input is whitespace-normalized before matching. Returns false for
// anything that does not match the strict pattern or does not name a real
// calendar date.
func ParseDateHeader(s string) (Date, bool) {
	m := dateHeaderRe.FindStringSubmatch(Normalize(s))
	if m == nil {
		return Date{}, false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return Date{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return Date{}, false
	}
	d := Date{Year: year, Month: MonthNumber(strings.ToUpper(m[1])), Day: day}
	if !d.Valid() {
		return Date{}, false
	}
	return d, true
}

// Valid reports whether the date names a real calendar day.
func (d Date) Valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Year < 1 {
		return false
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && int(t.Month()) == d.Month && t.Day() == d.Day
}

// MonthName returns the uppercase month name, or "" for an out-of-range month.
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	return monthNames[d.Month-1]
}

// String renders the canonical persisted form, e.g. "FEBRUARY 25, 2026".
// ParseDateHeader on the result reproduces the date exactly.
func (d Date) String() string {
	return fmt.Sprintf("%s %d, %d", d.MonthName(), d.Day, d.Year)
}

// Weekday returns the three-letter weekday abbreviation (Mon..Sun) computed
// from the calendar date, or "?" if the date is invalid.
func (d Date) Weekday() string {
	if !d.Valid() {
		return "?"
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Format("Mon")
}

// IsSaturday reports whether the date falls on a Saturday.
// Invalid dates are never Saturdays.
func (d Date) IsSaturday() bool {
	if !d.Valid() {
		return false
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Weekday() == time.Saturday
}
