package api

import (
	"alcyxob/gym-tally/internal/billing"
	"alcyxob/gym-tally/internal/calendar"
	"alcyxob/gym-tally/internal/domain"
	"alcyxob/gym-tally/internal/service"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Calendar dates go over the wire as YYYY-MM-DD strings, timestamps as
// RFC 3339.

type TrainingPlanResponse struct {
	ID                         string  `json:"id"`
	Name                       string  `json:"name"`
	Price                      float64 `json:"price"`
	NumOfSessions              int     `json:"numOfSessions"`
	CanAttendCompetitions      bool    `json:"canAttendCompetitions"`
	CanAttendPrivateCoaching   bool    `json:"canAttendPrivateCoaching"`
	PrivateCoachingMaxSessions int     `json:"privateCoachingMaxSessions"`
}

func MapTrainingPlanToResponse(p *domain.TrainingPlan) TrainingPlanResponse {
	return TrainingPlanResponse{
		ID:                         p.ID.Hex(),
		Name:                       p.Name,
		Price:                      p.Price,
		NumOfSessions:              p.NumOfSessions,
		CanAttendCompetitions:      p.CanAttendCompetitions,
		CanAttendPrivateCoaching:   p.CanAttendPrivateCoaching,
		PrivateCoachingMaxSessions: p.PrivateCoachingMaxSessions,
	}
}

type WeightCategoryResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Label     string  `json:"label"`
	MinWeight float64 `json:"minWeight"`
	MaxWeight float64 `json:"maxWeight"`
}

func MapWeightCategoryToResponse(w *domain.WeightCategory) WeightCategoryResponse {
	return WeightCategoryResponse{
		ID:        w.ID.Hex(),
		Name:      w.Name,
		Label:     w.Label(),
		MinWeight: w.MinWeight,
		MaxWeight: w.MaxWeight,
	}
}

type AthleteResponse struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Gender         string    `json:"gender"`
	Age            int       `json:"age"`
	Weight         float64   `json:"weight"`
	TrainingPlanID string    `json:"trainingPlanId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Only filled on list responses.
	PlanName              string `json:"planName,omitempty"`
	CanAttendCompetitions *bool  `json:"canAttendCompetitions,omitempty"`
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id == primitive.NilObjectID {
		return ""
	}
	return id.Hex()
}

// MapAthleteToResponse converts a domain Athlete to an AthleteResponse DTO.
func MapAthleteToResponse(a *domain.Athlete) AthleteResponse {
	return AthleteResponse{
		ID:             a.ID.Hex(),
		FullName:       a.FullName,
		Gender:         a.Gender,
		Age:            a.Age,
		Weight:         a.Weight,
		TrainingPlanID: hexOrEmpty(a.TrainingPlanID),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func MapAthletesToResponse(athletes []domain.Athlete) []AthleteResponse {
	out := make([]AthleteResponse, len(athletes))
	for i := range athletes {
		out[i] = MapAthleteToResponse(&athletes[i])
	}
	return out
}

func MapAthleteOverviewsToResponse(rows []service.AthleteOverview) []AthleteResponse {
	out := make([]AthleteResponse, len(rows))
	for i := range rows {
		resp := MapAthleteToResponse(&rows[i].Athlete)
		resp.PlanName = rows[i].PlanName
		canCompete := rows[i].CanAttendCompetitions
		resp.CanAttendCompetitions = &canCompete
		out[i] = resp
	}
	return out
}

type SessionResponse struct {
	ID          string    `json:"id"`
	AthleteID   string    `json:"athleteId"`
	Date        string    `json:"date"`
	TuitionFees *float64  `json:"tuitionFees,omitempty"` // Coaching only
	CreatedAt   time.Time `json:"createdAt"`
}

func MapTrainingSessionToResponse(s *domain.TrainingSession) SessionResponse {
	return SessionResponse{
		ID:        s.ID.Hex(),
		AthleteID: s.AthleteID.Hex(),
		Date:      calendar.FormatDate(s.Date),
		CreatedAt: s.CreatedAt,
	}
}

func MapCoachingSessionToResponse(s *domain.CoachingSession) SessionResponse {
	fees := s.TuitionFees
	return SessionResponse{
		ID:          s.ID.Hex(),
		AthleteID:   s.AthleteID.Hex(),
		Date:        calendar.FormatDate(s.Date),
		TuitionFees: &fees,
		CreatedAt:   s.CreatedAt,
	}
}

func MapTrainingSessionsToResponse(sessions []domain.TrainingSession) []SessionResponse {
	out := make([]SessionResponse, len(sessions))
	for i := range sessions {
		out[i] = MapTrainingSessionToResponse(&sessions[i])
	}
	return out
}

func MapCoachingSessionsToResponse(sessions []domain.CoachingSession) []SessionResponse {
	out := make([]SessionResponse, len(sessions))
	for i := range sessions {
		out[i] = MapCoachingSessionToResponse(&sessions[i])
	}
	return out
}

type SessionCountResponse struct {
	AthleteID string `json:"athleteId"`
	FullName  string `json:"fullName"`
	Sessions  int    `json:"sessions"`
}

func MapSessionCountsToResponse(counts []domain.AthleteSessionCount) []SessionCountResponse {
	out := make([]SessionCountResponse, len(counts))
	for i, c := range counts {
		out[i] = SessionCountResponse{AthleteID: c.AthleteID.Hex(), FullName: c.FullName, Sessions: c.Sessions}
	}
	return out
}

type CompetitionResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Date              string    `json:"date"`
	EntryFee          float64   `json:"entryFee"`
	WeightCategoryID  string    `json:"weightCategoryId"`
	WeightCategory    string    `json:"weightCategory,omitempty"`
	ParticipantsCount *int      `json:"participantsCount,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

func MapCompetitionToResponse(c *domain.Competition) CompetitionResponse {
	return CompetitionResponse{
		ID:               c.ID.Hex(),
		Name:             c.Name,
		Date:             calendar.FormatDate(c.Date),
		EntryFee:         c.EntryFee,
		WeightCategoryID: c.WeightCategoryID.Hex(),
		CreatedAt:        c.CreatedAt,
	}
}

func MapCompetitionsToResponse(competitions []domain.Competition) []CompetitionResponse {
	out := make([]CompetitionResponse, len(competitions))
	for i := range competitions {
		out[i] = MapCompetitionToResponse(&competitions[i])
	}
	return out
}

func MapCompetitionOverviewsToResponse(rows []service.CompetitionOverview) []CompetitionResponse {
	out := make([]CompetitionResponse, len(rows))
	for i := range rows {
		resp := MapCompetitionToResponse(&rows[i].Competition)
		resp.WeightCategory = rows[i].WeightCategory
		count := rows[i].ParticipantsCount
		resp.ParticipantsCount = &count
		out[i] = resp
	}
	return out
}

type ParticipantResponse struct {
	RegistrationID string  `json:"registrationId"`
	AthleteID      string  `json:"athleteId"`
	FullName       string  `json:"fullName"`
	Weight         float64 `json:"weight"`
}

type CompetitionDetailsResponse struct {
	Competition    CompetitionResponse    `json:"competition"`
	WeightCategory WeightCategoryResponse `json:"weightCategory"`
	Participants   []ParticipantResponse  `json:"participants"`
}

func MapCompetitionDetailsToResponse(d *service.CompetitionDetails) CompetitionDetailsResponse {
	resp := CompetitionDetailsResponse{
		Competition:    MapCompetitionToResponse(&d.Competition),
		WeightCategory: MapWeightCategoryToResponse(&d.WeightCategory),
		Participants:   make([]ParticipantResponse, len(d.Participants)),
	}
	resp.Competition.WeightCategory = d.WeightCategory.Label()
	count := len(d.Participants)
	resp.Competition.ParticipantsCount = &count
	for i, p := range d.Participants {
		resp.Participants[i] = ParticipantResponse{
			RegistrationID: p.RegistrationID.Hex(),
			AthleteID:      p.AthleteID.Hex(),
			FullName:       p.FullName,
			Weight:         p.Weight,
		}
	}
	return resp
}

type RegistrationResponse struct {
	ID            string    `json:"id"`
	CompetitionID string    `json:"competitionId"`
	AthleteID     string    `json:"athleteId"`
	RegisteredAt  time.Time `json:"registeredAt"`
}

func MapRegistrationToResponse(r *domain.CompetitionRegistration) RegistrationResponse {
	return RegistrationResponse{
		ID:            r.ID.Hex(),
		CompetitionID: r.CompetitionID.Hex(),
		AthleteID:     r.AthleteID.Hex(),
		RegisteredAt:  r.RegisteredAt,
	}
}

type WeeklyRollupResponse struct {
	Week      string  `json:"week"` // ISO week, e.g. 2024-W23
	WeekStart string  `json:"weekStart"`
	WeekEnd   string  `json:"weekEnd"`
	Sessions  int     `json:"sessions"`
	Amount    float64 `json:"amount"`
}

func mapRollups(weeks []billing.WeeklyRollup, amount func(billing.WeeklyRollup) float64) []WeeklyRollupResponse {
	out := make([]WeeklyRollupResponse, len(weeks))
	for i, w := range weeks {
		out[i] = WeeklyRollupResponse{
			Week:      w.Week.String(),
			WeekStart: calendar.FormatDate(w.WeekStart),
			WeekEnd:   calendar.FormatDate(w.WeekEnd),
			Sessions:  w.Sessions,
			Amount:    amount(w),
		}
	}
	return out
}

// PaymentsResponse is the payments tab of an athlete.
type PaymentsResponse struct {
	AthleteID       string                 `json:"athleteId"`
	FullName        string                 `json:"fullName"`
	Plan            TrainingPlanResponse   `json:"plan"`
	Training        []WeeklyRollupResponse `json:"training"`
	TrainingFees    float64                `json:"trainingFees"`
	Coaching        []WeeklyRollupResponse `json:"coaching"`
	CoachingFees    float64                `json:"coachingFees"`
	Competitions    []CompetitionResponse  `json:"competitions"`
	CompetitionFees float64                `json:"competitionFees"`
	TotalPayment    float64                `json:"totalPayment"`
}

func MapStatementToResponse(s *billing.Statement) PaymentsResponse {
	price := s.Plan.Price
	return PaymentsResponse{
		AthleteID:       s.Athlete.ID.Hex(),
		FullName:        s.Athlete.FullName,
		Plan:            MapTrainingPlanToResponse(&s.Plan),
		Training:        mapRollups(s.Training, func(billing.WeeklyRollup) float64 { return price }),
		TrainingFees:    s.TrainingFees,
		Coaching:        mapRollups(s.Coaching, func(w billing.WeeklyRollup) float64 { return w.TotalFees }),
		CoachingFees:    s.CoachingFees,
		Competitions:    MapCompetitionsToResponse(s.Competitions),
		CompetitionFees: s.CompetitionFees,
		TotalPayment:    s.Total(),
	}
}
