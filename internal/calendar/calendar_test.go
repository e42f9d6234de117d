package calendar

import (
	"errors"
	"testing"
	"time"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", s, err)
	}
	return d
}

func TestWeekBounds_Properties(t *testing.T) {
	start := date(t, "2023-12-25")
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)
		ws, we := WeekBounds(d)
		if ws.After(d) || we.Before(d) {
			t.Fatalf("%s not inside [%s, %s]", FormatDate(d), FormatDate(ws), FormatDate(we))
		}
		if got := we.Sub(ws); got != 6*24*time.Hour {
			t.Fatalf("%s: window spans %v, want 6 days", FormatDate(d), got)
		}
		if ws.Weekday() != time.Monday {
			t.Fatalf("%s: week starts on %s", FormatDate(d), ws.Weekday())
		}
		if WeekOf(ws) != WeekOf(d) || WeekOf(we) != WeekOf(d) {
			t.Fatalf("%s: week key disagrees with bounds", FormatDate(d))
		}
	}
}

func TestWeekBounds_Examples(t *testing.T) {
	tests := []struct {
		in, start, end string
	}{
		{"2024-06-05", "2024-06-03", "2024-06-09"}, // Wednesday
		{"2024-06-03", "2024-06-03", "2024-06-09"}, // Monday
		{"2024-06-09", "2024-06-03", "2024-06-09"}, // Sunday
		{"2025-01-01", "2024-12-30", "2025-01-05"}, // crosses year
	}
	for _, tt := range tests {
		ws, we := WeekBounds(date(t, tt.in))
		if FormatDate(ws) != tt.start || FormatDate(we) != tt.end {
			t.Errorf("WeekBounds(%s) = %s..%s, want %s..%s", tt.in, FormatDate(ws), FormatDate(we), tt.start, tt.end)
		}
	}
}

func TestWeekBounds_IgnoresTimeOfDay(t *testing.T) {
	ws, _ := WeekBounds(time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC))
	if FormatDate(ws) != "2024-06-03" {
		t.Errorf("got %s", FormatDate(ws))
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 6, 5, 15, 4, 5, 0, time.UTC)

	got, err := ParseDate("", now)
	if err != nil || FormatDate(got) != "2024-06-05" || got.Hour() != 0 {
		t.Errorf("empty date: got %v, %v", got, err)
	}

	got, err = ParseDate("2024-02-29", now)
	if err != nil || FormatDate(got) != "2024-02-29" {
		t.Errorf("valid date: got %v, %v", got, err)
	}

	for _, bad := range []string{"2024-13-01", "05/06/2024", "2023-02-29", "yesterday"} {
		if _, err := ParseDate(bad, now); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) err = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestSecondSaturday(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.June, 8},       // starts on Saturday
		{2024, time.September, 14}, // starts on Sunday
		{2025, time.March, 8},      // starts on Saturday
		{2025, time.June, 14},      // starts on Sunday
		{2024, time.May, 11},       // starts on Wednesday
		{2024, time.July, 13},      // starts on Monday
		{2026, time.February, 14},  // starts on Sunday, 28 days
	}
	for _, tt := range tests {
		if got := SecondSaturday(tt.year, tt.month); got != tt.want {
			t.Errorf("SecondSaturday(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestIsSecondSaturday_OnlyOneDayPerMonth(t *testing.T) {
	months := []struct {
		first string
		want  int
	}{
		{"2024-06-01", 8},  // day 1 is a Saturday
		{"2024-09-01", 14}, // day 1 is a Sunday
	}
	for _, m := range months {
		first := date(t, m.first)
		for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
			got := IsSecondSaturday(d)
			if got != (d.Day() == m.want) {
				t.Errorf("IsSecondSaturday(%s) = %v", FormatDate(d), got)
			}
		}
	}
}

func TestWeekString(t *testing.T) {
	tests := map[string]string{
		"2024-12-30": "2025-W01",
		"2024-06-05": "2024-W23",
		"2021-01-03": "2020-W53",
	}
	for in, want := range tests {
		if got := WeekOf(date(t, in)).String(); got != want {
			t.Errorf("WeekOf(%s).String() = %q, want %q", in, got, want)
		}
	}
}
