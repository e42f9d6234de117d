package sqlite

import (
	"alcyxob/gym-tally/internal/domain"
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCompetitionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCompetitionRepository(newTestStore(t))
	categoryID := primitive.NewObjectID()

	september := &domain.Competition{Name: "Autumn Open", Date: date(2024, time.September, 14), EntryFee: 40, WeightCategoryID: categoryID}
	june := &domain.Competition{Name: "Summer Cup", Date: date(2024, time.June, 8), EntryFee: 30, WeightCategoryID: categoryID}
	for _, c := range []*domain.Competition{september, june} {
		if _, err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create(%s) failed: %v", c.Name, err)
		}
	}

	fetched, err := repo.GetByID(ctx, june.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Name != "Summer Cup" || !fetched.Date.Equal(june.Date) || fetched.WeightCategoryID != categoryID {
		t.Fatalf("unexpected competition: %#v", fetched)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != june.ID {
		t.Fatalf("expected competitions ordered by date, got %#v", list)
	}
	if n, err := repo.Count(ctx); err != nil || n != 2 {
		t.Fatalf("Count: expected 2, got %d (%v)", n, err)
	}

	athleteID := primitive.NewObjectID()
	for _, cid := range []primitive.ObjectID{june.ID, june.ID, september.ID} {
		if _, err := repo.Register(ctx, &domain.CompetitionRegistration{CompetitionID: cid, AthleteID: athleteID}); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	regs, err := repo.ListRegistrations(ctx, june.ID)
	if err != nil {
		t.Fatalf("ListRegistrations failed: %v", err)
	}
	if len(regs) != 2 || regs[0].AthleteID != athleteID {
		t.Fatalf("expected 2 registrations for june, got %#v", regs)
	}

	counts, err := repo.RegistrationCounts(ctx)
	if err != nil {
		t.Fatalf("RegistrationCounts failed: %v", err)
	}
	if counts[june.ID] != 2 || counts[september.ID] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	entered, err := repo.ListForAthlete(ctx, athleteID)
	if err != nil {
		t.Fatalf("ListForAthlete failed: %v", err)
	}
	if len(entered) != 3 {
		t.Fatalf("expected one row per registration (3), got %d", len(entered))
	}
	if entered[0].ID != june.ID || entered[2].ID != september.ID {
		t.Fatalf("unexpected order: %#v", entered)
	}
}
