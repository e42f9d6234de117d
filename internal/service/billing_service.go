package service

import (
	"alcyxob/gym-tally/internal/billing"
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BillingService computes weekly rollups and fee totals from stored rows.
// All totals cover the athlete's whole history.
type BillingService interface {
	WeeklyTrainingRollup(ctx context.Context, athleteID primitive.ObjectID) ([]billing.WeeklyRollup, error)
	TrainingFees(ctx context.Context, athleteID primitive.ObjectID) (float64, error)
	WeeklyCoachingRollup(ctx context.Context, athleteID primitive.ObjectID) ([]billing.WeeklyRollup, error)
	CoachingFees(ctx context.Context, athleteID primitive.ObjectID) (float64, error)
	CompetitionFees(ctx context.Context, athleteID primitive.ObjectID) (float64, error)
	TotalPayment(ctx context.Context, athleteID primitive.ObjectID) (float64, error)
	Statement(ctx context.Context, athleteID primitive.ObjectID) (*billing.Statement, error)
}

type billingService struct {
	planResolver
	sessionRepo     repository.SessionRepository
	competitionRepo repository.CompetitionRepository
}

// NewBillingService creates a new instance of billingService.
func NewBillingService(
	athleteRepo repository.AthleteRepository,
	planRepo repository.TrainingPlanRepository,
	sessionRepo repository.SessionRepository,
	competitionRepo repository.CompetitionRepository,
) BillingService {
	return &billingService{
		planResolver:    planResolver{athleteRepo: athleteRepo, planRepo: planRepo},
		sessionRepo:     sessionRepo,
		competitionRepo: competitionRepo,
	}
}

func (s *billingService) WeeklyTrainingRollup(ctx context.Context, athleteID primitive.ObjectID) ([]billing.WeeklyRollup, error) {
	if _, err := s.athlete(ctx, athleteID); err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListTrainingByAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	return billing.RollupTrainingSessions(sessions), nil
}

// TrainingFees bills plan.Price for every week holding at least one training
// session. Fails with ErrTrainingPlanNotFound rather than returning 0 for an
// athlete without a resolvable plan.
func (s *billingService) TrainingFees(ctx context.Context, athleteID primitive.ObjectID) (float64, error) {
	_, plan, err := s.resolve(ctx, athleteID)
	if err != nil {
		return 0, err
	}
	sessions, err := s.sessionRepo.ListTrainingByAthlete(ctx, athleteID)
	if err != nil {
		return 0, err
	}
	return billing.TrainingFees(billing.RollupTrainingSessions(sessions), plan), nil
}

func (s *billingService) WeeklyCoachingRollup(ctx context.Context, athleteID primitive.ObjectID) ([]billing.WeeklyRollup, error) {
	if _, err := s.athlete(ctx, athleteID); err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListCoachingByAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	return billing.RollupCoachingSessions(sessions), nil
}

func (s *billingService) CoachingFees(ctx context.Context, athleteID primitive.ObjectID) (float64, error) {
	weeks, err := s.WeeklyCoachingRollup(ctx, athleteID)
	if err != nil {
		return 0, err
	}
	return billing.CoachingFees(weeks), nil
}

func (s *billingService) CompetitionFees(ctx context.Context, athleteID primitive.ObjectID) (float64, error) {
	if _, err := s.athlete(ctx, athleteID); err != nil {
		return 0, err
	}
	competitions, err := s.competitionRepo.ListForAthlete(ctx, athleteID)
	if err != nil {
		return 0, err
	}
	return billing.CompetitionFees(competitions), nil
}

func (s *billingService) TotalPayment(ctx context.Context, athleteID primitive.ObjectID) (float64, error) {
	stmt, err := s.Statement(ctx, athleteID)
	if err != nil {
		return 0, err
	}
	return stmt.Total(), nil
}

// Statement loads every row needed for the payments view in one pass.
func (s *billingService) Statement(ctx context.Context, athleteID primitive.ObjectID) (*billing.Statement, error) {
	athlete, plan, err := s.resolve(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	training, err := s.sessionRepo.ListTrainingByAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	coaching, err := s.sessionRepo.ListCoachingByAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	competitions, err := s.competitionRepo.ListForAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if competitions == nil {
		competitions = []domain.Competition{}
	}
	return billing.NewStatement(*athlete, *plan, training, coaching, competitions), nil
}
