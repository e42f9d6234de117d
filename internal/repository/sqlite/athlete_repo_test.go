package sqlite

import (
	"alcyxob/gym-tally/internal/domain"
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAthleteRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAthleteRepository(newTestStore(t))

	planID := primitive.NewObjectID()
	athlete := &domain.Athlete{FullName: "Ana Silva", Gender: "female", Age: 24, Weight: 61.5, TrainingPlanID: planID}
	id, err := repo.Create(ctx, athlete)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id.IsZero() || athlete.ID != id {
		t.Fatalf("expected ID to be assigned, got %v", id)
	}

	fetched, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.FullName != "Ana Silva" || fetched.TrainingPlanID != planID || fetched.Weight != 61.5 {
		t.Fatalf("unexpected athlete: %#v", fetched)
	}
	if !fetched.CreatedAt.Equal(athlete.CreatedAt) {
		t.Fatalf("created_at did not round-trip: %v vs %v", fetched.CreatedAt, athlete.CreatedAt)
	}

	fetched.Weight = 64
	fetched.TrainingPlanID = primitive.NilObjectID
	if err := repo.Update(ctx, fetched); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	updated, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID after update failed: %v", err)
	}
	if updated.Weight != 64 || updated.HasTrainingPlan() {
		t.Fatalf("unexpected athlete after update: %#v", updated)
	}

	if _, err := repo.Create(ctx, &domain.Athlete{FullName: "Ben Okafor", Age: 30, Weight: 82}); err != nil {
		t.Fatalf("Create second athlete failed: %v", err)
	}
	athletes, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(athletes) != 2 || athletes[0].ID != id {
		t.Fatalf("expected 2 athletes in registration order, got %#v", athletes)
	}
	n, err := repo.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("Count: expected 2, got %d (%v)", n, err)
	}
}
