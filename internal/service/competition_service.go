package service

import (
	"alcyxob/gym-tally/internal/calendar"
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompetitionInput is the creation payload of a competition.
type CompetitionInput struct {
	Name             string
	Date             time.Time
	WeightCategoryID primitive.ObjectID
	EntryFee         float64
}

// CompetitionOverview is a competition row for listings.
type CompetitionOverview struct {
	Competition       domain.Competition
	WeightCategory    string // Display label, e.g. "lightweight (73 kg)"
	ParticipantsCount int
}

// Participant is one registration joined with the athlete's details.
type Participant struct {
	RegistrationID primitive.ObjectID
	AthleteID      primitive.ObjectID
	FullName       string
	Weight         float64
}

// CompetitionDetails is a competition with its category and participants.
type CompetitionDetails struct {
	Competition    domain.Competition
	WeightCategory domain.WeightCategory
	Participants   []Participant
}

// CompetitionService schedules competitions and registers participants.
type CompetitionService interface {
	Create(ctx context.Context, input CompetitionInput) (*domain.Competition, error)
	Get(ctx context.Context, competitionID primitive.ObjectID) (*CompetitionDetails, error)
	List(ctx context.Context) ([]CompetitionOverview, error)
	Participants(ctx context.Context, competitionID primitive.ObjectID) ([]Participant, error)
	EligibleAthletes(ctx context.Context, competitionID primitive.ObjectID) ([]domain.Athlete, error)
	Register(ctx context.Context, competitionID, athleteID primitive.ObjectID) (*domain.CompetitionRegistration, error)
	ForAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.Competition, error)
}

type competitionService struct {
	planResolver
	categoryRepo    repository.WeightCategoryRepository
	competitionRepo repository.CompetitionRepository
}

// NewCompetitionService creates a new instance of competitionService.
func NewCompetitionService(
	athleteRepo repository.AthleteRepository,
	planRepo repository.TrainingPlanRepository,
	categoryRepo repository.WeightCategoryRepository,
	competitionRepo repository.CompetitionRepository,
) CompetitionService {
	return &competitionService{
		planResolver:    planResolver{athleteRepo: athleteRepo, planRepo: planRepo},
		categoryRepo:    categoryRepo,
		competitionRepo: competitionRepo,
	}
}

func (s *competitionService) category(ctx context.Context, id primitive.ObjectID) (*domain.WeightCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeightCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *competitionService) competition(ctx context.Context, id primitive.ObjectID) (*domain.Competition, error) {
	competition, err := s.competitionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}
	return competition, nil
}

// Create schedules a competition. Dates other than the second Saturday of
// the month are rejected.
func (s *competitionService) Create(ctx context.Context, input CompetitionInput) (*domain.Competition, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: competition name is required", ErrInvalidInput)
	}
	if input.EntryFee < 0 {
		return nil, fmt.Errorf("%w: entry fee cannot be negative", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	date := calendar.Day(input.Date)
	if !calendar.IsSecondSaturday(date) {
		return nil, ErrInvalidCompetitionDate
	}
	if _, err := s.category(ctx, input.WeightCategoryID); err != nil {
		return nil, err
	}

	competition := &domain.Competition{
		Name:             name,
		Date:             date,
		EntryFee:         input.EntryFee,
		WeightCategoryID: input.WeightCategoryID,
	}
	id, err := s.competitionRepo.Create(ctx, competition)
	if err != nil {
		return nil, err
	}
	competition.ID = id
	return competition, nil
}

func (s *competitionService) Get(ctx context.Context, competitionID primitive.ObjectID) (*CompetitionDetails, error) {
	competition, err := s.competition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	category, err := s.category(ctx, competition.WeightCategoryID)
	if err != nil {
		return nil, err
	}
	participants, err := s.participants(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return &CompetitionDetails{
		Competition:    *competition,
		WeightCategory: *category,
		Participants:   participants,
	}, nil
}

// Participants lists every registration of the competition, oldest first.
// A registration whose athlete was removed keeps an empty name.
func (s *competitionService) Participants(ctx context.Context, competitionID primitive.ObjectID) ([]Participant, error) {
	if _, err := s.competition(ctx, competitionID); err != nil {
		return nil, err
	}
	return s.participants(ctx, competitionID)
}

func (s *competitionService) participants(ctx context.Context, competitionID primitive.ObjectID) ([]Participant, error) {
	registrations, err := s.competitionRepo.ListRegistrations(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	participants := make([]Participant, 0, len(registrations))
	for _, reg := range registrations {
		p := Participant{RegistrationID: reg.ID, AthleteID: reg.AthleteID}
		athlete, err := s.athleteRepo.GetByID(ctx, reg.AthleteID)
		switch {
		case err == nil:
			p.FullName = athlete.FullName
			p.Weight = athlete.Weight
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, nil
}

func (s *competitionService) List(ctx context.Context) ([]CompetitionOverview, error) {
	competitions, err := s.competitionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.competitionRepo.RegistrationCounts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(map[primitive.ObjectID]string, len(categories))
	for i := range categories {
		labels[categories[i].ID] = categories[i].Label()
	}

	out := make([]CompetitionOverview, 0, len(competitions))
	for _, c := range competitions {
		out = append(out, CompetitionOverview{
			Competition:       c,
			WeightCategory:    labels[c.WeightCategoryID],
			ParticipantsCount: counts[c.ID],
		})
	}
	return out, nil
}

// eligible reports whether the athlete's plan permits competitions and their
// weight falls inside the category.
func eligible(athlete *domain.Athlete, plan *domain.TrainingPlan, category *domain.WeightCategory) bool {
	return plan.CanAttendCompetitions && category.Contains(athlete.Weight)
}

func (s *competitionService) EligibleAthletes(ctx context.Context, competitionID primitive.ObjectID) ([]domain.Athlete, error) {
	competition, err := s.competition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	category, err := s.category(ctx, competition.WeightCategoryID)
	if err != nil {
		return nil, err
	}
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

	out := []domain.Athlete{}
	for i := range athletes {
		plan, ok := byID[athletes[i].TrainingPlanID]
		if ok && eligible(&athletes[i], &plan, category) {
			out = append(out, athletes[i])
		}
	}
	return out, nil
}

// Register adds an eligible athlete to a competition. Registering the same
// athlete twice creates two registrations.
func (s *competitionService) Register(ctx context.Context, competitionID, athleteID primitive.ObjectID) (*domain.CompetitionRegistration, error) {
	competition, err := s.competition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	athlete, plan, err := s.resolve(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	category, err := s.category(ctx, competition.WeightCategoryID)
	if err != nil {
		return nil, err
	}
	if !eligible(athlete, plan, category) {
		return nil, ErrNotEligibleForCompetition
	}

	registration := &domain.CompetitionRegistration{CompetitionID: competitionID, AthleteID: athleteID}
	id, err := s.competitionRepo.Register(ctx, registration)
	if err != nil {
		return nil, err
	}
	registration.ID = id
	return registration, nil
}

func (s *competitionService) ForAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.Competition, error) {
	if _, err := s.athlete(ctx, athleteID); err != nil {
		return nil, err
	}
	return s.competitionRepo.ListForAthlete(ctx, athleteID)
}
