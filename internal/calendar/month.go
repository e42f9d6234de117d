package calendar

import "time"

// saturdayColumn is Saturday's index in a Monday-first week row.
const saturdayColumn = 5

// monthRows lays the month out as Monday-first week rows. Cells outside the
// month hold 0.
func monthRows(year int, month time.Month) [][7]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := (int(first.Weekday()) + 6) % 7

	var rows [][7]int
	var row [7]int
	col := lead
	for day := 1; day <= daysInMonth; day++ {
		row[col] = day
		col++
		if col == 7 {
			rows = append(rows, row)
			row = [7]int{}
			col = 0
		}
	}
	if col != 0 {
		rows = append(rows, row)
	}
	return rows
}

// SecondSaturday returns the day of month of the second Saturday. When the
// first row has no Saturday (the month starts on a Sunday) the first Saturday
// sits in row two, so the second one is in row three.
func SecondSaturday(year int, month time.Month) int {
	rows := monthRows(year, month)
	if rows[0][saturdayColumn] != 0 {
		return rows[1][saturdayColumn]
	}
	return rows[2][saturdayColumn]
}

// IsSecondSaturday reports whether d is the second Saturday of its month.
func IsSecondSaturday(d time.Time) bool {
	return d.Day() == SecondSaturday(d.Year(), d.Month())
}
