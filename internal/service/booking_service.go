package service

import (
	"alcyxob/gym-tally/internal/calendar"
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Service Interface ---

// BookingService decides whether an athlete may book another session in a
// given week and books it. A full week is a normal "false" answer, not an
// error.
type BookingService interface {
	CanBookTraining(ctx context.Context, athleteID primitive.ObjectID, date time.Time) (bool, error)
	CanBookCoaching(ctx context.Context, athleteID primitive.ObjectID, date time.Time) (bool, error)

	// BookTraining checks the weekly cap and inserts the session atomically.
	// booked is false (with a nil session) when the cap is already reached.
	BookTraining(ctx context.Context, athleteID primitive.ObjectID, date time.Time) (session *domain.TrainingSession, booked bool, err error)
	BookCoaching(ctx context.Context, athleteID primitive.ObjectID, date time.Time, tuitionFees float64) (session *domain.CoachingSession, booked bool, err error)

	ListTrainingSessions(ctx context.Context, athleteID primitive.ObjectID) ([]domain.TrainingSession, error)
	ListCoachingSessions(ctx context.Context, athleteID primitive.ObjectID) ([]domain.CoachingSession, error)
	TrainingSummary(ctx context.Context) ([]domain.AthleteSessionCount, error)
	CoachingSummary(ctx context.Context) ([]domain.AthleteSessionCount, error)
}

// --- Service Implementation ---

type bookingService struct {
	planResolver
	sessionRepo repository.SessionRepository
	locker      repository.BookingLocker
}

// NewBookingService creates a new instance of bookingService.
func NewBookingService(
	athleteRepo repository.AthleteRepository,
	planRepo repository.TrainingPlanRepository,
	sessionRepo repository.SessionRepository,
	locker repository.BookingLocker,
) BookingService {
	return &bookingService{
		planResolver: planResolver{athleteRepo: athleteRepo, planRepo: planRepo},
		sessionRepo:  sessionRepo,
		locker:       locker,
	}
}

// CanBookTraining counts the athlete's training sessions in the Monday..Sunday
// window around date and compares against the plan's weekly cap.
func (s *bookingService) CanBookTraining(ctx context.Context, athleteID primitive.ObjectID, date time.Time) (bool, error) {
	_, plan, err := s.resolve(ctx, athleteID)
	if err != nil {
		return false, err
	}
	start, end := calendar.WeekBounds(date)
	booked, err := s.sessionRepo.CountTrainingBetween(ctx, athleteID, start, end)
	if err != nil {
		return false, err
	}
	return plan.AllowsTraining(int(booked)), nil
}

// CanBookCoaching is CanBookTraining for private coaching. Plans without
// coaching permission are rejected before anything is counted.
func (s *bookingService) CanBookCoaching(ctx context.Context, athleteID primitive.ObjectID, date time.Time) (bool, error) {
	_, plan, err := s.resolve(ctx, athleteID)
	if err != nil {
		return false, err
	}
	if !plan.CanAttendPrivateCoaching {
		return false, nil
	}
	start, end := calendar.WeekBounds(date)
	booked, err := s.sessionRepo.CountCoachingBetween(ctx, athleteID, start, end)
	if err != nil {
		return false, err
	}
	return plan.AllowsCoaching(int(booked)), nil
}

func (s *bookingService) BookTraining(ctx context.Context, athleteID primitive.ObjectID, date time.Time) (*domain.TrainingSession, bool, error) {
	_, plan, err := s.resolve(ctx, athleteID)
	if err != nil {
		return nil, false, err
	}
	day := calendar.Day(date)
	start, end := calendar.WeekBounds(day)

	var created *domain.TrainingSession
	err = s.locker.WithinWeekLock(ctx, athleteID, domain.SessionKindTraining, start, func(txCtx context.Context) error {
		created = nil // The Mongo driver may retry this callback
		booked, err := s.sessionRepo.CountTrainingBetween(txCtx, athleteID, start, end)
		if err != nil {
			return err
		}
		if !plan.AllowsTraining(int(booked)) {
			return nil
		}
		session := &domain.TrainingSession{AthleteID: athleteID, Date: day}
		id, err := s.sessionRepo.CreateTraining(txCtx, session)
		if err != nil {
			return fmt.Errorf("insert training session: %w", err)
		}
		session.ID = id
		created = session
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return created, created != nil, nil
}

func (s *bookingService) BookCoaching(ctx context.Context, athleteID primitive.ObjectID, date time.Time, tuitionFees float64) (*domain.CoachingSession, bool, error) {
	if tuitionFees < 0 {
		return nil, false, fmt.Errorf("%w: tuition fees cannot be negative", ErrInvalidInput)
	}
	_, plan, err := s.resolve(ctx, athleteID)
	if err != nil {
		return nil, false, err
	}
	if !plan.CanAttendPrivateCoaching {
		return nil, false, nil
	}
	day := calendar.Day(date)
	start, end := calendar.WeekBounds(day)

	var created *domain.CoachingSession
	err = s.locker.WithinWeekLock(ctx, athleteID, domain.SessionKindCoaching, start, func(txCtx context.Context) error {
		created = nil
		booked, err := s.sessionRepo.CountCoachingBetween(txCtx, athleteID, start, end)
		if err != nil {
			return err
		}
		if !plan.AllowsCoaching(int(booked)) {
			return nil
		}
		session := &domain.CoachingSession{AthleteID: athleteID, Date: day, TuitionFees: tuitionFees}
		id, err := s.sessionRepo.CreateCoaching(txCtx, session)
		if err != nil {
			return fmt.Errorf("insert coaching session: %w", err)
		}
		session.ID = id
		created = session
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return created, created != nil, nil
}

func (s *bookingService) ListTrainingSessions(ctx context.Context, athleteID primitive.ObjectID) ([]domain.TrainingSession, error) {
	if _, err := s.athlete(ctx, athleteID); err != nil {
		return nil, err
	}
	return s.sessionRepo.ListTrainingByAthlete(ctx, athleteID)
}

func (s *bookingService) ListCoachingSessions(ctx context.Context, athleteID primitive.ObjectID) ([]domain.CoachingSession, error) {
	if _, err := s.athlete(ctx, athleteID); err != nil {
		return nil, err
	}
	return s.sessionRepo.ListCoachingByAthlete(ctx, athleteID)
}

// TrainingSummary returns per-athlete training session totals.
func (s *bookingService) TrainingSummary(ctx context.Context) ([]domain.AthleteSessionCount, error) {
	return s.sessionRepo.TrainingCountsByAthlete(ctx)
}

// CoachingSummary returns per-athlete private coaching totals.
func (s *bookingService) CoachingSummary(ctx context.Context) ([]domain.AthleteSessionCount, error) {
	return s.sessionRepo.CoachingCountsByAthlete(ctx)
}
