package service

import (
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/repository"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for both storage backends.
type memStore struct {
	mu            sync.Mutex
	plans         map[primitive.ObjectID]domain.TrainingPlan
	categories    map[primitive.ObjectID]domain.WeightCategory
	athletes      map[primitive.ObjectID]domain.Athlete
	athleteOrder  []primitive.ObjectID
	training      []domain.TrainingSession
	coaching      []domain.CoachingSession
	competitions  map[primitive.ObjectID]domain.Competition
	registrations []domain.CompetitionRegistration

	lockMu sync.Mutex
	locks  int
}

func newMemStore() *memStore {
	return &memStore{
		plans:        make(map[primitive.ObjectID]domain.TrainingPlan),
		categories:   make(map[primitive.ObjectID]domain.WeightCategory),
		athletes:     make(map[primitive.ObjectID]domain.Athlete),
		competitions: make(map[primitive.ObjectID]domain.Competition),
	}
}

func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

// --- plans ---

type memPlanRepo struct{ *memStore }

func (m memPlanRepo) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	plan.ID = primitive.NewObjectID()
	m.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (m memPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m memPlanRepo) GetByName(_ context.Context, name string) (*domain.TrainingPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.plans {
		if p.Name == name {
			p := p
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m memPlanRepo) List(_ context.Context) ([]domain.TrainingPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.TrainingPlan{}
	for _, p := range m.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

// --- weight categories ---

type memCategoryRepo struct{ *memStore }

func (m memCategoryRepo) Create(_ context.Context, c *domain.WeightCategory) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = primitive.NewObjectID()
	m.categories[c.ID] = *c
	return c.ID, nil
}

func (m memCategoryRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WeightCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (m memCategoryRepo) GetByName(_ context.Context, name string) (*domain.WeightCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m memCategoryRepo) List(_ context.Context) ([]domain.WeightCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.WeightCategory{}
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MinWeight < out[j].MinWeight })
	return out, nil
}

// --- athletes ---

type memAthleteRepo struct{ *memStore }

func (m memAthleteRepo) Create(_ context.Context, a *domain.Athlete) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	m.athletes[a.ID] = *a
	m.athleteOrder = append(m.athleteOrder, a.ID)
	return a.ID, nil
}

func (m memAthleteRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Athlete, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.athletes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (m memAthleteRepo) List(_ context.Context) ([]domain.Athlete, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Athlete{}
	for _, id := range m.athleteOrder {
		if a, ok := m.athletes[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m memAthleteRepo) Update(_ context.Context, a *domain.Athlete) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.athletes[a.ID]; !ok {
		return repository.ErrNotFound
	}
	a.UpdatedAt = time.Now().UTC()
	m.athletes[a.ID] = *a
	return nil
}

func (m memAthleteRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.athletes)), nil
}

// --- sessions ---

type memSessionRepo struct{ *memStore }

func (m memSessionRepo) CreateTraining(_ context.Context, s *domain.TrainingSession) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = primitive.NewObjectID()
	s.CreatedAt = time.Now().UTC()
	m.training = append(m.training, *s)
	return s.ID, nil
}

func (m memSessionRepo) CountTrainingBetween(_ context.Context, athleteID primitive.ObjectID, from, to time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.training {
		if s.AthleteID == athleteID && inRange(s.Date, from, to) {
			n++
		}
	}
	return n, nil
}

func (m memSessionRepo) ListTrainingByAthlete(_ context.Context, athleteID primitive.ObjectID) ([]domain.TrainingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.TrainingSession{}
	for _, s := range m.training {
		if s.AthleteID == athleteID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m memSessionRepo) CountTraining(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.training)), nil
}

func (m memSessionRepo) countsByAthlete(ids []primitive.ObjectID) []domain.AthleteSessionCount {
	tally := make(map[primitive.ObjectID]int)
	for _, id := range ids {
		tally[id]++
	}
	out := []domain.AthleteSessionCount{}
	for _, id := range m.athleteOrder {
		if n := tally[id]; n > 0 {
			out = append(out, domain.AthleteSessionCount{AthleteID: id, FullName: m.athletes[id].FullName, Sessions: n})
		}
	}
	return out
}

func (m memSessionRepo) TrainingCountsByAthlete(_ context.Context) ([]domain.AthleteSessionCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]primitive.ObjectID, len(m.training))
	for i, s := range m.training {
		ids[i] = s.AthleteID
	}
	return m.countsByAthlete(ids), nil
}

func (m memSessionRepo) CreateCoaching(_ context.Context, s *domain.CoachingSession) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = primitive.NewObjectID()
	s.CreatedAt = time.Now().UTC()
	m.coaching = append(m.coaching, *s)
	return s.ID, nil
}

func (m memSessionRepo) CountCoachingBetween(_ context.Context, athleteID primitive.ObjectID, from, to time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.coaching {
		if s.AthleteID == athleteID && inRange(s.Date, from, to) {
			n++
		}
	}
	return n, nil
}

func (m memSessionRepo) ListCoachingByAthlete(_ context.Context, athleteID primitive.ObjectID) ([]domain.CoachingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.CoachingSession{}
	for _, s := range m.coaching {
		if s.AthleteID == athleteID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m memSessionRepo) CountCoaching(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.coaching)), nil
}

func (m memSessionRepo) CoachingCountsByAthlete(_ context.Context) ([]domain.AthleteSessionCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]primitive.ObjectID, len(m.coaching))
	for i, s := range m.coaching {
		ids[i] = s.AthleteID
	}
	return m.countsByAthlete(ids), nil
}

// --- competitions ---

type memCompetitionRepo struct{ *memStore }

func (m memCompetitionRepo) Create(_ context.Context, c *domain.Competition) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	m.competitions[c.ID] = *c
	return c.ID, nil
}

func (m memCompetitionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Competition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.competitions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (m memCompetitionRepo) List(_ context.Context) ([]domain.Competition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Competition{}
	for _, c := range m.competitions {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m memCompetitionRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.competitions)), nil
}

func (m memCompetitionRepo) Register(_ context.Context, r *domain.CompetitionRegistration) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = primitive.NewObjectID()
	r.RegisteredAt = time.Now().UTC()
	m.registrations = append(m.registrations, *r)
	return r.ID, nil
}

func (m memCompetitionRepo) ListRegistrations(_ context.Context, competitionID primitive.ObjectID) ([]domain.CompetitionRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.CompetitionRegistration{}
	for _, r := range m.registrations {
		if r.CompetitionID == competitionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m memCompetitionRepo) RegistrationCounts(_ context.Context) (map[primitive.ObjectID]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[primitive.ObjectID]int)
	for _, r := range m.registrations {
		counts[r.CompetitionID]++
	}
	return counts, nil
}

func (m memCompetitionRepo) ListForAthlete(_ context.Context, athleteID primitive.ObjectID) ([]domain.Competition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Competition{}
	for _, r := range m.registrations {
		if c, ok := m.competitions[r.CompetitionID]; ok && r.AthleteID == athleteID {
			out = append(out, c)
		}
	}
	return out, nil
}

// --- locker ---

type memLocker struct{ *memStore }

func (m memLocker) WithinWeekLock(ctx context.Context, _ primitive.ObjectID, _ domain.SessionKind, _ time.Time, fn func(ctx context.Context) error) error {
	m.lockMu.Lock()
	defer m.lockMu.Unlock()
	m.locks++
	return fn(ctx)
}

// --- fixtures ---

type fixture struct {
	store        *memStore
	plans        memPlanRepo
	categories   memCategoryRepo
	athletes     memAthleteRepo
	sessions     memSessionRepo
	competitions memCompetitionRepo
	locker       memLocker
}

func newFixture() *fixture {
	s := newMemStore()
	return &fixture{
		store:        s,
		plans:        memPlanRepo{s},
		categories:   memCategoryRepo{s},
		athletes:     memAthleteRepo{s},
		sessions:     memSessionRepo{s},
		competitions: memCompetitionRepo{s},
		locker:       memLocker{s},
	}
}

func (f *fixture) addPlan(p domain.TrainingPlan) *domain.TrainingPlan {
	_, _ = f.plans.Create(context.Background(), &p)
	return &p
}

func (f *fixture) addCategory(c domain.WeightCategory) *domain.WeightCategory {
	_, _ = f.categories.Create(context.Background(), &c)
	return &c
}

func (f *fixture) addAthlete(name string, weight float64, planID primitive.ObjectID) *domain.Athlete {
	a := &domain.Athlete{FullName: name, Age: 25, Weight: weight, TrainingPlanID: planID}
	_, _ = f.athletes.Create(context.Background(), a)
	return a
}

func (f *fixture) bookingService() BookingService {
	return NewBookingService(f.athletes, f.plans, f.sessions, f.locker)
}

func (f *fixture) billingService() BillingService {
	return NewBillingService(f.athletes, f.plans, f.sessions, f.competitions)
}

func (f *fixture) competitionService() CompetitionService {
	return NewCompetitionService(f.athletes, f.plans, f.categories, f.competitions)
}

func (f *fixture) athleteService() AthleteService {
	return NewAthleteService(f.athletes, f.plans)
}

var (
	beginnerPlan     = domain.TrainingPlan{Name: "beginner", Price: 250, NumOfSessions: 2, CanAttendPrivateCoaching: true, PrivateCoachingMaxSessions: 5}
	intermediatePlan = domain.TrainingPlan{Name: "intermediate", Price: 300, NumOfSessions: 3, CanAttendCompetitions: true, CanAttendPrivateCoaching: true, PrivateCoachingMaxSessions: 5}
	noCoachingPlan   = domain.TrainingPlan{Name: "basic", Price: 100, NumOfSessions: 1, CanAttendPrivateCoaching: false, PrivateCoachingMaxSessions: 5}
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
