package service

import (
	"alcyxob/gym-tally/internal/repository"
	"context"
)

// DashboardCounts are the headline totals shown on the dashboard.
type DashboardCounts struct {
	Athletes         int64
	Competitions     int64
	TrainingSessions int64
	CoachingSessions int64
}

type DashboardService interface {
	Counts(ctx context.Context) (*DashboardCounts, error)
}

type dashboardService struct {
	athleteRepo     repository.AthleteRepository
	sessionRepo     repository.SessionRepository
	competitionRepo repository.CompetitionRepository
}

func NewDashboardService(
	athleteRepo repository.AthleteRepository,
	sessionRepo repository.SessionRepository,
	competitionRepo repository.CompetitionRepository,
) DashboardService {
	return &dashboardService{athleteRepo: athleteRepo, sessionRepo: sessionRepo, competitionRepo: competitionRepo}
}

func (s *dashboardService) Counts(ctx context.Context) (*DashboardCounts, error) {
	var (
		counts DashboardCounts
		err    error
	)
	if counts.Athletes, err = s.athleteRepo.Count(ctx); err != nil {
		return nil, err
	}
	if counts.Competitions, err = s.competitionRepo.Count(ctx); err != nil {
		return nil, err
	}
	if counts.TrainingSessions, err = s.sessionRepo.CountTraining(ctx); err != nil {
		return nil, err
	}
	if counts.CoachingSessions, err = s.sessionRepo.CountCoaching(ctx); err != nil {
		return nil, err
	}
	return &counts, nil
}
