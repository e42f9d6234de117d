package billing

import (
	"encoding/csv"
	"io"
	"strconv"

	"alcyxob/gym-tally/internal/calendar"
)

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteCSV renders the statement as a flat CSV document, one line per billed
// item followed by the section totals.
func WriteCSV(w io.Writer, s *Statement) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"athlete", s.Athlete.FullName},
		{"plan", s.Plan.Name},
		{"section", "week", "week_start", "week_end", "sessions", "amount"},
	}
	for _, wk := range s.Training {
		rows = append(rows, []string{
			"training",
			wk.Week.String(),
			calendar.FormatDate(wk.WeekStart),
			calendar.FormatDate(wk.WeekEnd),
			strconv.Itoa(wk.Sessions),
			money(s.Plan.Price),
		})
	}
	for _, wk := range s.Coaching {
		rows = append(rows, []string{
			"coaching",
			wk.Week.String(),
			calendar.FormatDate(wk.WeekStart),
			calendar.FormatDate(wk.WeekEnd),
			strconv.Itoa(wk.Sessions),
			money(wk.TotalFees),
		})
	}
	for _, c := range s.Competitions {
		rows = append(rows, []string{"competition", c.Name, calendar.FormatDate(c.Date), "", "", money(c.EntryFee)})
	}
	rows = append(rows,
		[]string{"total", "training", "", "", "", money(s.TrainingFees)},
		[]string{"total", "coaching", "", "", "", money(s.CoachingFees)},
		[]string{"total", "competitions", "", "", "", money(s.CompetitionFees)},
		[]string{"total", "payment", "", "", "", money(s.Total())},
	)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
