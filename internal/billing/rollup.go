// Package billing aggregates session and competition rows into weekly
// rollups and fee totals. Everything here is pure: callers load the rows.
package billing

import (
	"sort"
	"time"

	"alcyxob/gym-tally/internal/calendar"
	"alcyxob/gym-tally/internal/domain"
)

// WeeklyRollup aggregates the sessions of one Monday..Sunday week.
type WeeklyRollup struct {
	Week      calendar.Week
	WeekStart time.Time
	WeekEnd   time.Time
	Sessions  int
	TotalFees float64 // Coaching only; always 0 for training rollups
}

type rollupEntry struct {
	date time.Time
	fee  float64
}

// rollup groups entries by ISO week. Start and end come from the same week
// computation the eligibility checks use, so both agree on what a week is.
func rollup(entries []rollupEntry) []WeeklyRollup {
	byWeek := make(map[calendar.Week]*WeeklyRollup)
	for _, e := range entries {
		week := calendar.WeekOf(e.date)
		r, ok := byWeek[week]
		if !ok {
			start, end := calendar.WeekBounds(e.date)
			r = &WeeklyRollup{Week: week, WeekStart: start, WeekEnd: end}
			byWeek[week] = r
		}
		r.Sessions++
		r.TotalFees += e.fee
	}

	out := make([]WeeklyRollup, 0, len(byWeek))
	for _, r := range byWeek {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	return out
}

// RollupTrainingSessions returns one record per week with at least one
// training session, oldest week first.
func RollupTrainingSessions(sessions []domain.TrainingSession) []WeeklyRollup {
	entries := make([]rollupEntry, len(sessions))
	for i, s := range sessions {
		entries[i] = rollupEntry{date: s.Date}
	}
	return rollup(entries)
}

// RollupCoachingSessions is RollupTrainingSessions for coaching, with the
// per-session tuition fees summed into TotalFees.
func RollupCoachingSessions(sessions []domain.CoachingSession) []WeeklyRollup {
	entries := make([]rollupEntry, len(sessions))
	for i, s := range sessions {
		entries[i] = rollupEntry{date: s.Date, fee: s.TuitionFees}
	}
	return rollup(entries)
}
