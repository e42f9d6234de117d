package service

import (
	"alcyxob/gym-tally/internal/domain"
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var lightweight = domain.WeightCategory{Name: "lightweight", MinWeight: 66, MaxWeight: 73}

func TestCreateCompetition_DateRule(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	category := f.addCategory(lightweight)
	svc := f.competitionService()

	tests := []struct {
		name    string
		date    time.Time
		wantErr error
	}{
		{"second saturday June 2024", day(2024, time.June, 8), nil},
		{"second saturday September 2024", day(2024, time.September, 14), nil},
		{"first saturday", day(2024, time.June, 1), ErrInvalidCompetitionDate},
		{"third saturday", day(2024, time.June, 15), ErrInvalidCompetitionDate},
		{"a friday", day(2024, time.June, 7), ErrInvalidCompetitionDate},
		{"missing date", time.Time{}, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := svc.Create(ctx, CompetitionInput{Name: "Cup", Date: tt.date, WeightCategoryID: category.ID, EntryFee: 20})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && !c.Date.Equal(tt.date) {
				t.Fatalf("unexpected date %v", c.Date)
			}
		})
	}

	if _, err := svc.Create(ctx, CompetitionInput{Name: "Cup", Date: day(2024, time.June, 8), WeightCategoryID: primitive.NewObjectID()}); !errors.Is(err, ErrWeightCategoryNotFound) {
		t.Fatalf("expected ErrWeightCategoryNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, CompetitionInput{Name: " ", Date: day(2024, time.June, 8), WeightCategoryID: category.ID}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestCompetitionEligibilityAndRegistration(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	category := f.addCategory(lightweight)
	competitor := f.addPlan(intermediatePlan)
	beginner := f.addPlan(beginnerPlan)

	inside := f.addAthlete("Inside", 70, competitor.ID)
	lowerBound := f.addAthlete("Lower", 66, competitor.ID)
	upperBound := f.addAthlete("Upper", 73, competitor.ID)
	heavy := f.addAthlete("Heavy", 90, competitor.ID)
	noComp := f.addAthlete("Novice", 70, beginner.ID)

	svc := f.competitionService()
	competition, err := svc.Create(ctx, CompetitionInput{Name: "Summer Cup", Date: day(2024, time.June, 8), WeightCategoryID: category.ID, EntryFee: 30})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	eligible, err := svc.EligibleAthletes(ctx, competition.ID)
	if err != nil {
		t.Fatalf("EligibleAthletes failed: %v", err)
	}
	got := map[primitive.ObjectID]bool{}
	for _, a := range eligible {
		got[a.ID] = true
	}
	if len(eligible) != 3 || !got[inside.ID] || !got[lowerBound.ID] || !got[upperBound.ID] {
		t.Fatalf("unexpected eligible athletes: %+v", eligible)
	}

	for _, a := range []*domain.Athlete{heavy, noComp} {
		if _, err := svc.Register(ctx, competition.ID, a.ID); !errors.Is(err, ErrNotEligibleForCompetition) {
			t.Errorf("%s: expected ErrNotEligibleForCompetition, got %v", a.FullName, err)
		}
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.Register(ctx, competition.ID, inside.ID); err != nil {
			t.Fatalf("Register #%d failed: %v", i+1, err)
		}
	}

	details, err := svc.Get(ctx, competition.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(details.Participants) != 2 || details.Participants[0].FullName != "Inside" || details.WeightCategory.Name != "lightweight" {
		t.Fatalf("unexpected details: %+v", details)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].ParticipantsCount != 2 || list[0].WeightCategory != "lightweight (73 kg)" {
		t.Fatalf("unexpected overview: %+v", list)
	}

	entered, err := svc.ForAthlete(ctx, inside.ID)
	if err != nil || len(entered) != 2 {
		t.Fatalf("ForAthlete: expected 2 entries, got %d (%v)", len(entered), err)
	}

	if _, err := svc.Participants(ctx, primitive.NewObjectID()); !errors.Is(err, ErrCompetitionNotFound) {
		t.Fatalf("expected ErrCompetitionNotFound, got %v", err)
	}
}
