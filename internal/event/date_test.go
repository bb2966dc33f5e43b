package event

import (
	"fmt"
	"testing"
)

func TestParseDateHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Date
		ok    bool
	}{
		{
			name:  "canonical header",
			input: "FEBRUARY 25, 2026",
			want:  Date{2026, 2, 25},
			ok:    true,
		},
		{
			name:  "lowercase month",
			input: "february 25, 2026",
			want:  Date{2026, 2, 25},
			ok:    true,
		},
		{
			name:  "surrounding whitespace",
			input: "  MARCH  7,   2026 ",
			want:  Date{2026, 3, 7},
			ok:    true,
		},
		{
			name:  "single digit day",
			input: "JULY 4, 2026",
			want:  Date{2026, 7, 4},
			ok:    true,
		},
		{
			name:  "month abbreviation rejected",
			input: "FEB 25, 2026",
			ok:    false,
		},
		{
			name:  "missing year rejected",
			input: "FEBRUARY 25",
			ok:    false,
		},
		{
			name:  "two digit year rejected",
			input: "FEBRUARY 25, 26",
			ok:    false,
		},
		{
			name:  "trailing text rejected",
			input: "FEBRUARY 25, 2026 6:00 PM",
			ok:    false,
		},
		{
			name:  "impossible day rejected",
			input: "FEBRUARY 31, 2026",
			ok:    false,
		},
		{
			name:  "non-leap february 29 rejected",
			input: "FEBRUARY 29, 2026",
			ok:    false,
		},
		{
			name:  "leap february 29 accepted",
			input: "FEBRUARY 29, 2024",
			want:  Date{2024, 2, 29},
			ok:    true,
		},
		{
			name:  "empty string",
			input: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDateHeader(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDateHeader(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseDateHeader(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateRoundTrip(t *testing.T) {
	// Serializing then re-parsing must reproduce the exact date for every
	// month in the supported table.
	days := []int{1, 9, 15, 28}
	for month := 1; month <= 12; month++ {
		for _, day := range days {
			d := Date{Year: 2026, Month: month, Day: day}
			got, ok := ParseDateHeader(d.String())
			if !ok {
				t.Fatalf("ParseDateHeader(%q) failed for %+v", d.String(), d)
			}
			if got != d {
				t.Errorf("round trip of %+v via %q = %+v", d, d.String(), got)
			}
		}
	}
}

func TestDateString(t *testing.T) {
	d := Date{Year: 2026, Month: 2, Day: 25}
	if got, want := d.String(), "FEBRUARY 25, 2026"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDateWeekday(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{Date{2026, 2, 28}, "Sat"},
		{Date{2026, 2, 25}, "Wed"},
		{Date{2026, 3, 1}, "Sun"},
		{Date{2025, 12, 25}, "Thu"},
		{Date{2026, 2, 31}, "?"},
		{Date{}, "?"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-%d-%d", tt.date.Year, tt.date.Month, tt.date.Day), func(t *testing.T) {
			if got := tt.date.Weekday(); got != tt.want {
				t.Errorf("Weekday() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsSaturday(t *testing.T) {
	if !(Date{2026, 2, 28}).IsSaturday() {
		t.Error("2026-02-28 should be a Saturday")
	}
	if (Date{2026, 2, 25}).IsSaturday() {
		t.Error("2026-02-25 should not be a Saturday")
	}
	if (Date{2026, 2, 31}).IsSaturday() {
		t.Error("invalid dates are never Saturdays")
	}
}

func TestMonthNumber(t *testing.T) {
	if got := MonthNumber("JANUARY"); got != 1 {
		t.Errorf("MonthNumber(JANUARY) = %d, want 1", got)
	}
	if got := MonthNumber("DECEMBER"); got != 12 {
		t.Errorf("MonthNumber(DECEMBER) = %d, want 12", got)
	}
	if got := MonthNumber("MAR"); got != 0 {
		t.Errorf("MonthNumber(MAR) = %d, want 0 (abbreviations are not in the table)", got)
	}
	if got := MonthNumber("january"); got != 0 {
		t.Errorf("MonthNumber(january) = %d, want 0 (table is uppercase)", got)
	}
}
