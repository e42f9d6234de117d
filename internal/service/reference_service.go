package service

import (
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
)

// DefaultTrainingPlans are the plan tiers every installation starts with.
var DefaultTrainingPlans = []domain.TrainingPlan{
	{Name: "beginner", Price: 250, NumOfSessions: 2, CanAttendCompetitions: false, CanAttendPrivateCoaching: true, PrivateCoachingMaxSessions: 5},
	{Name: "intermediate", Price: 300, NumOfSessions: 3, CanAttendCompetitions: true, CanAttendPrivateCoaching: true, PrivateCoachingMaxSessions: 5},
	{Name: "elite", Price: 350, NumOfSessions: 5, CanAttendCompetitions: true, CanAttendPrivateCoaching: true, PrivateCoachingMaxSessions: 5},
}

// DefaultWeightCategories are contiguous kg ranges, lightest first.
var DefaultWeightCategories = []domain.WeightCategory{
	{Name: "flyweight", MinWeight: 15, MaxWeight: 66},
	{Name: "lightweight", MinWeight: 66, MaxWeight: 73},
	{Name: "light-middleweight", MinWeight: 73, MaxWeight: 80},
	{Name: "middleweight", MinWeight: 80, MaxWeight: 90},
	{Name: "light-heavyweight", MinWeight: 90, MaxWeight: 100},
	{Name: "heavyweight", MinWeight: 100, MaxWeight: 1000},
}

// ReferenceService owns the static lookup tables.
type ReferenceService interface {
	// Seed inserts any missing default plan or category, matched by name.
	// Running it twice is a no-op.
	Seed(ctx context.Context) error
	ListTrainingPlans(ctx context.Context) ([]domain.TrainingPlan, error)
	ListWeightCategories(ctx context.Context) ([]domain.WeightCategory, error)
}

type referenceService struct {
	planRepo     repository.TrainingPlanRepository
	categoryRepo repository.WeightCategoryRepository
	plans        []domain.TrainingPlan
	categories   []domain.WeightCategory
}

// NewReferenceService creates a ReferenceService seeding the default fixtures.
func NewReferenceService(planRepo repository.TrainingPlanRepository, categoryRepo repository.WeightCategoryRepository) ReferenceService {
	return &referenceService{
		planRepo:     planRepo,
		categoryRepo: categoryRepo,
		plans:        DefaultTrainingPlans,
		categories:   DefaultWeightCategories,
	}
}

func validatePlan(p *domain.TrainingPlan) error {
	if p.Name == "" {
		return fmt.Errorf("%w: training plan name is required", ErrInvalidInput)
	}
	if p.NumOfSessions < 0 || p.PrivateCoachingMaxSessions < 0 {
		return fmt.Errorf("%w: plan %q has a negative weekly cap", ErrInvalidInput, p.Name)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: plan %q has a negative price", ErrInvalidInput, p.Name)
	}
	return nil
}

func validateCategory(c *domain.WeightCategory) error {
	if c.Name == "" {
		return fmt.Errorf("%w: weight category name is required", ErrInvalidInput)
	}
	if c.MinWeight >= c.MaxWeight {
		return fmt.Errorf("%w: category %q needs min_weight < max_weight", ErrInvalidInput, c.Name)
	}
	return nil
}

func (s *referenceService) Seed(ctx context.Context) error {
	for i := range s.plans {
		plan := s.plans[i] // copy, Create assigns the ID
		if err := validatePlan(&plan); err != nil {
			return err
		}
		_, err := s.planRepo.GetByName(ctx, plan.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if _, err := s.planRepo.Create(ctx, &plan); err != nil {
			return fmt.Errorf("seed training plan %q: %w", plan.Name, err)
		}
		log.Printf("INFO: Seeded training plan %q", plan.Name)
	}

	for i := range s.categories {
		category := s.categories[i]
		if err := validateCategory(&category); err != nil {
			return err
		}
		_, err := s.categoryRepo.GetByName(ctx, category.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if _, err := s.categoryRepo.Create(ctx, &category); err != nil {
			return fmt.Errorf("seed weight category %q: %w", category.Name, err)
		}
		log.Printf("INFO: Seeded weight category %q", category.Name)
	}
	return nil
}

func (s *referenceService) ListTrainingPlans(ctx context.Context) ([]domain.TrainingPlan, error) {
	return s.planRepo.List(ctx)
}

func (s *referenceService) ListWeightCategories(ctx context.Context) ([]domain.WeightCategory, error) {
	return s.categoryRepo.List(ctx)
}
