// Package calendar holds the date rules shared by booking and billing:
// Monday-start week windows, ISO week keys and the competition date rule.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Week identifies an ISO week.
type Week struct {
	Year   int `json:"year"`
	Number int `json:"number"`
}

// String renders the week as e.g. "2024-W23".
func (w Week) String() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Number)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string. An empty string means the calendar
// date of now.
func ParseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return Day(now), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekBounds returns the Monday and Sunday of the week containing d. Both
// ends are inclusive calendar dates at midnight UTC.
func WeekBounds(d time.Time) (start, end time.Time) {
	day := Day(d)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	start = day.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// WeekOf returns the ISO week of d. Every date between the WeekBounds of d
// maps to the same Week.
func WeekOf(d time.Time) Week {
	year, number := Day(d).ISOWeek()
	return Week{Year: year, Number: number}
}
