package repository

import (
	"alcyxob/gym-tally/internal/domain" // Import our defined domain models
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// ErrNotFound is returned by every backend when a lookup matches nothing.
var ErrNotFound = RepositoryError("not found")

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TrainingPlanRepository defines access to the seeded training plans.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetByName(ctx context.Context, name string) (*domain.TrainingPlan, error)
	List(ctx context.Context) ([]domain.TrainingPlan, error)
}

// WeightCategoryRepository defines access to the seeded weight categories.
type WeightCategoryRepository interface {
	Create(ctx context.Context, category *domain.WeightCategory) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeightCategory, error)
	GetByName(ctx context.Context, name string) (*domain.WeightCategory, error)
	List(ctx context.Context) ([]domain.WeightCategory, error) // Ordered by MinWeight
}

// AthleteRepository defines the interface for interacting with athlete data.
type AthleteRepository interface {
	Create(ctx context.Context, athlete *domain.Athlete) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Athlete, error)
	List(ctx context.Context) ([]domain.Athlete, error)
	Update(ctx context.Context, athlete *domain.Athlete) error
	Count(ctx context.Context) (int64, error)
}

// SessionRepository stores training and private coaching sessions.
// Date ranges are calendar dates, inclusive on both ends.
type SessionRepository interface {
	CreateTraining(ctx context.Context, session *domain.TrainingSession) (primitive.ObjectID, error)
	CountTrainingBetween(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) (int64, error)
	ListTrainingByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.TrainingSession, error)
	CountTraining(ctx context.Context) (int64, error)
	TrainingCountsByAthlete(ctx context.Context) ([]domain.AthleteSessionCount, error)

	CreateCoaching(ctx context.Context, session *domain.CoachingSession) (primitive.ObjectID, error)
	CountCoachingBetween(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) (int64, error)
	ListCoachingByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.CoachingSession, error)
	CountCoaching(ctx context.Context) (int64, error)
	CoachingCountsByAthlete(ctx context.Context) ([]domain.AthleteSessionCount, error)
}

// CompetitionRepository stores competitions and their registrations.
type CompetitionRepository interface {
	Create(ctx context.Context, competition *domain.Competition) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Competition, error)
	List(ctx context.Context) ([]domain.Competition, error) // Ordered by date
	Count(ctx context.Context) (int64, error)

	Register(ctx context.Context, registration *domain.CompetitionRegistration) (primitive.ObjectID, error)
	ListRegistrations(ctx context.Context, competitionID primitive.ObjectID) ([]domain.CompetitionRegistration, error)
	RegistrationCounts(ctx context.Context) (map[primitive.ObjectID]int, error)
	// ListForAthlete returns one competition per registration, so duplicate
	// registrations appear (and are billed) more than once.
	ListForAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.Competition, error)
}

// BookingLocker serialises bookings for one athlete, session kind and week.
// fn runs inside a single storage transaction; repository calls made with the
// context handed to fn take part in it. If fn returns an error nothing it
// wrote is kept.
type BookingLocker interface {
	WithinWeekLock(ctx context.Context, athleteID primitive.ObjectID, kind domain.SessionKind, weekStart time.Time, fn func(ctx context.Context) error) error
}
