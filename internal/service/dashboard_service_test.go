package service

import (
	"context"
	"testing"
	"time"
)

func TestDashboardCounts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	plan := f.addPlan(intermediatePlan)
	category := f.addCategory(lightweight)
	a := f.addAthlete("A", 70, plan.ID)
	f.addAthlete("B", 80, plan.ID)

	booking := f.bookingService()
	if _, _, err := booking.BookTraining(ctx, a.ID, day(2024, time.June, 3)); err != nil {
		t.Fatalf("BookTraining failed: %v", err)
	}
	if _, _, err := booking.BookCoaching(ctx, a.ID, day(2024, time.June, 4), 40); err != nil {
		t.Fatalf("BookCoaching failed: %v", err)
	}
	if _, err := f.competitionService().Create(ctx, CompetitionInput{Name: "Cup", Date: day(2024, time.June, 8), WeightCategoryID: category.ID}); err != nil {
		t.Fatalf("Create competition failed: %v", err)
	}

	counts, err := NewDashboardService(f.athletes, f.sessions, f.competitions).Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	want := DashboardCounts{Athletes: 2, Competitions: 1, TrainingSessions: 1, CoachingSessions: 1}
	if *counts != want {
		t.Fatalf("expected %+v, got %+v", want, *counts)
	}
}
