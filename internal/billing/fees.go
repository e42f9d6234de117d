package billing

import (
	"alcyxob/gym-tally/internal/domain"
)

// TrainingFees bills the flat plan price once per active week, however many
// sessions that week holds.
func TrainingFees(weeks []WeeklyRollup, plan *domain.TrainingPlan) float64 {
	return float64(len(weeks)) * plan.Price
}

// CoachingFees sums every tuition fee across the rollups. Not scoped to a
// date range.
func CoachingFees(weeks []WeeklyRollup) float64 {
	var total float64
	for _, w := range weeks {
		total += w.TotalFees
	}
	return total
}

// CompetitionFees sums entry fees, one competition per registration.
func CompetitionFees(competitions []domain.Competition) float64 {
	var total float64
	for _, c := range competitions {
		total += c.EntryFee
	}
	return total
}

// Statement is the full payment picture for one athlete.
type Statement struct {
	Athlete         domain.Athlete
	Plan            domain.TrainingPlan
	Training        []WeeklyRollup
	TrainingFees    float64
	Coaching        []WeeklyRollup
	CoachingFees    float64
	Competitions    []domain.Competition
	CompetitionFees float64
}

// NewStatement computes every fee component from raw rows.
func NewStatement(
	athlete domain.Athlete,
	plan domain.TrainingPlan,
	training []domain.TrainingSession,
	coaching []domain.CoachingSession,
	competitions []domain.Competition,
) *Statement {
	trainingWeeks := RollupTrainingSessions(training)
	coachingWeeks := RollupCoachingSessions(coaching)
	return &Statement{
		Athlete:         athlete,
		Plan:            plan,
		Training:        trainingWeeks,
		TrainingFees:    TrainingFees(trainingWeeks, &plan),
		Coaching:        coachingWeeks,
		CoachingFees:    CoachingFees(coachingWeeks),
		Competitions:    competitions,
		CompetitionFees: CompetitionFees(competitions),
	}
}

// Total is training + coaching + competition fees.
func (s *Statement) Total() float64 {
	return s.TrainingFees + s.CoachingFees + s.CompetitionFees
}
