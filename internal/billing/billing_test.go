package billing

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"alcyxob/gym-tally/internal/calendar"
	"alcyxob/gym-tally/internal/domain"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(calendar.DateLayout, s)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", s, err)
	}
	return d
}

func trainingOn(t *testing.T, dates ...string) []domain.TrainingSession {
	out := make([]domain.TrainingSession, len(dates))
	for i, d := range dates {
		out[i] = domain.TrainingSession{Date: day(t, d)}
	}
	return out
}

func TestRollupTrainingSessions_GroupsByMondayWeek(t *testing.T) {
	sessions := trainingOn(t,
		"2024-06-10", // week 24
		"2024-06-03", "2024-06-05", "2024-06-09", // week 23, Monday..Sunday
		"2024-06-16", // Sunday of week 24
	)

	got := RollupTrainingSessions(sessions)
	if len(got) != 2 {
		t.Fatalf("expected 2 weeks, got %d: %+v", len(got), got)
	}
	if got[0].Week != (calendar.Week{Year: 2024, Number: 23}) || got[0].Sessions != 3 {
		t.Errorf("first week = %+v", got[0])
	}
	if calendar.FormatDate(got[0].WeekStart) != "2024-06-03" || calendar.FormatDate(got[0].WeekEnd) != "2024-06-09" {
		t.Errorf("first week bounds = %s..%s", calendar.FormatDate(got[0].WeekStart), calendar.FormatDate(got[0].WeekEnd))
	}
	if got[1].Week.Number != 24 || got[1].Sessions != 2 {
		t.Errorf("second week = %+v", got[1])
	}
}

func TestRollupTrainingSessions_YearBoundary(t *testing.T) {
	// 2024-12-30 and 2025-01-05 share ISO week 2025-W01.
	got := RollupTrainingSessions(trainingOn(t, "2024-12-30", "2025-01-05", "2024-12-29"))
	if len(got) != 2 {
		t.Fatalf("expected 2 weeks, got %+v", got)
	}
	if got[1].Week != (calendar.Week{Year: 2025, Number: 1}) || got[1].Sessions != 2 {
		t.Errorf("boundary week = %+v", got[1])
	}
}

func TestRollupTrainingSessions_Empty(t *testing.T) {
	if got := RollupTrainingSessions(nil); len(got) != 0 {
		t.Errorf("expected no rollups, got %+v", got)
	}
}

func TestTrainingFees_PerActiveWeek(t *testing.T) {
	plan := &domain.TrainingPlan{Name: "intermediate", Price: 300}
	sessions := trainingOn(t,
		"2024-06-03",
		"2024-06-10", "2024-06-11", "2024-06-12", "2024-06-13", "2024-06-14",
		"2024-07-01", "2024-07-02",
	)
	if got := TrainingFees(RollupTrainingSessions(sessions), plan); got != 900 {
		t.Errorf("TrainingFees = %v, want 900", got)
	}
}

func TestRollupCoachingSessions_SumsTuition(t *testing.T) {
	sessions := []domain.CoachingSession{
		{Date: day(t, "2024-06-03"), TuitionFees: 40},
		{Date: day(t, "2024-06-04"), TuitionFees: 35.5},
		{Date: day(t, "2024-06-20"), TuitionFees: 60},
	}
	weeks := RollupCoachingSessions(sessions)
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %+v", weeks)
	}
	if weeks[0].Sessions != 2 || weeks[0].TotalFees != 75.5 {
		t.Errorf("first week = %+v", weeks[0])
	}
	if got := CoachingFees(weeks); got != 135.5 {
		t.Errorf("CoachingFees = %v, want 135.5", got)
	}
}

func TestCompetitionFees_CountsDuplicateRegistrations(t *testing.T) {
	cup := domain.Competition{Name: "Spring Cup", EntryFee: 25}
	open := domain.Competition{Name: "City Open", EntryFee: 40}
	if got := CompetitionFees([]domain.Competition{cup, open, cup}); got != 90 {
		t.Errorf("CompetitionFees = %v, want 90", got)
	}
}

func TestStatement_TotalIsSumOfParts(t *testing.T) {
	plan := domain.TrainingPlan{Name: "elite", Price: 350}
	stmt := NewStatement(
		domain.Athlete{FullName: "Dana Cruz"},
		plan,
		trainingOn(t, "2024-06-03", "2024-06-04", "2024-06-12"),
		[]domain.CoachingSession{{Date: day(t, "2024-06-05"), TuitionFees: 50}},
		[]domain.Competition{{Name: "Cup", Date: day(t, "2024-06-08"), EntryFee: 30}},
	)

	if stmt.TrainingFees != 700 || stmt.CoachingFees != 50 || stmt.CompetitionFees != 30 {
		t.Fatalf("unexpected parts: %+v", stmt)
	}
	if stmt.Total() != 780 {
		t.Errorf("Total = %v, want 780", stmt.Total())
	}
}

func TestWriteCSV(t *testing.T) {
	stmt := NewStatement(
		domain.Athlete{FullName: "Dana Cruz"},
		domain.TrainingPlan{Name: "beginner", Price: 250},
		trainingOn(t, "2024-06-03"),
		nil,
		[]domain.Competition{{Name: "Cup, North", Date: day(t, "2024-06-08"), EntryFee: 30}},
	)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, stmt); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"athlete,Dana Cruz",
		"training,2024-W23,2024-06-03,2024-06-09,1,250.00",
		`competition,"Cup, North",2024-06-08,,,30.00`,
		"total,payment,,,,280.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("CSV missing %q:\n%s", want, out)
		}
	}
}
