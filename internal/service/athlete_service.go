package service

import (
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AthleteInput carries the profile fields of a registration or edit.
type AthleteInput struct {
	FullName string
	Gender   string
	Age      int
	Weight   float64
	// TrainingPlanID is required on registration. On update the zero value
	// keeps the current plan.
	TrainingPlanID primitive.ObjectID
}

// AthleteOverview is an athlete row joined with plan details for listings.
type AthleteOverview struct {
	Athlete               domain.Athlete
	PlanName              string
	CanAttendCompetitions bool
}

// AthleteService manages athlete profiles.
type AthleteService interface {
	Register(ctx context.Context, input AthleteInput) (*domain.Athlete, error)
	Update(ctx context.Context, athleteID primitive.ObjectID, input AthleteInput) (*domain.Athlete, error)
	Get(ctx context.Context, athleteID primitive.ObjectID) (*domain.Athlete, error)
	List(ctx context.Context) ([]AthleteOverview, error)
}

type athleteService struct {
	planResolver
}

// NewAthleteService creates a new instance of athleteService.
func NewAthleteService(athleteRepo repository.AthleteRepository, planRepo repository.TrainingPlanRepository) AthleteService {
	return &athleteService{planResolver: planResolver{athleteRepo: athleteRepo, planRepo: planRepo}}
}

func validateProfile(input *AthleteInput) error {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Gender = strings.TrimSpace(input.Gender)
	if input.FullName == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if input.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", ErrInvalidInput)
	}
	if input.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	return nil
}

func (s *athleteService) requirePlan(ctx context.Context, planID primitive.ObjectID) error {
	if planID == primitive.NilObjectID {
		return fmt.Errorf("%w: a training plan is required", ErrInvalidInput)
	}
	if _, err := s.planRepo.GetByID(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainingPlanNotFound
		}
		return err
	}
	return nil
}

// Register validates the profile and stores a new athlete.
func (s *athleteService) Register(ctx context.Context, input AthleteInput) (*domain.Athlete, error) {
	// 1. Validate input
	if err := validateProfile(&input); err != nil {
		return nil, err
	}
	// 2. The plan must exist at registration time
	if err := s.requirePlan(ctx, input.TrainingPlanID); err != nil {
		return nil, err
	}

	// 3. Save
	athlete := &domain.Athlete{
		FullName:       input.FullName,
		Gender:         input.Gender,
		Age:            input.Age,
		Weight:         input.Weight,
		TrainingPlanID: input.TrainingPlanID,
	}
	id, err := s.athleteRepo.Create(ctx, athlete)
	if err != nil {
		return nil, err
	}
	athlete.ID = id
	return athlete, nil
}

// Update edits the profile fields and optionally switches plan. Sessions
// already booked are never revisited after a plan change.
func (s *athleteService) Update(ctx context.Context, athleteID primitive.ObjectID, input AthleteInput) (*domain.Athlete, error) {
	athlete, err := s.athlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if err := validateProfile(&input); err != nil {
		return nil, err
	}
	if input.TrainingPlanID != primitive.NilObjectID && input.TrainingPlanID != athlete.TrainingPlanID {
		if err := s.requirePlan(ctx, input.TrainingPlanID); err != nil {
			return nil, err
		}
		athlete.TrainingPlanID = input.TrainingPlanID
	}

	athlete.FullName = input.FullName
	athlete.Gender = input.Gender
	athlete.Age = input.Age
	athlete.Weight = input.Weight

	if err := s.athleteRepo.Update(ctx, athlete); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	return athlete, nil
}

func (s *athleteService) Get(ctx context.Context, athleteID primitive.ObjectID) (*domain.Athlete, error) {
	return s.athlete(ctx, athleteID)
}

// List joins every athlete with their plan. Athletes whose plan reference
// dangles are still listed, with an empty plan name.
func (s *athleteService) List(ctx context.Context) ([]AthleteOverview, error) {
	athletes, err := s.athleteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]domain.TrainingPlan, len(plans))
	for _, p := range plans {
		byID[p.ID] = p
	}

	out := make([]AthleteOverview, 0, len(athletes))
	for _, a := range athletes {
		row := AthleteOverview{Athlete: a}
		if plan, ok := byID[a.TrainingPlanID]; ok {
			row.PlanName = plan.Name
			row.CanAttendCompetitions = plan.CanAttendCompetitions
		}
		out = append(out, row)
	}
	return out, nil
}
