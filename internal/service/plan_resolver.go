package service

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// planResolver looks up an athlete together with their training plan. It is
// embedded by every service that needs plan-driven rules.
type planResolver struct {
	athleteRepo repository.AthleteRepository
	planRepo    repository.TrainingPlanRepository
}

func (r planResolver) athlete(ctx context.Context, athleteID primitive.ObjectID) (*domain.Athlete, error) {
	if athleteID == primitive.NilObjectID {
		return nil, ErrAthleteNotFound
	}
	athlete, err := r.athleteRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	return athlete, nil
}

// resolve fails with ErrTrainingPlanNotFound when the athlete has no plan or
// the referenced plan no longer exists. Callers must never fall back to a
// zero plan.
func (r planResolver) resolve(ctx context.Context, athleteID primitive.ObjectID) (*domain.Athlete, *domain.TrainingPlan, error) {
	athlete, err := r.athlete(ctx, athleteID)
	if err != nil {
		return nil, nil, err
	}
	if !athlete.HasTrainingPlan() {
		return nil, nil, fmt.Errorf("%w: athlete %s has no plan assigned", ErrTrainingPlanNotFound, athleteID.Hex())
	}
	plan, err := r.planRepo.GetByID(ctx, athlete.TrainingPlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", ErrTrainingPlanNotFound, athlete.TrainingPlanID.Hex())
		}
		return nil, nil, err
	}
	return athlete, plan, nil
}
