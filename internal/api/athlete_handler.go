// internal/api/athlete_handler.go
package api

import (
	"alcyxob/gym-tally/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AthleteHandler struct {
	athleteService     service.AthleteService
	bookingService     service.BookingService
	competitionService service.CompetitionService
}

func NewAthleteHandler(
	athleteService service.AthleteService,
	bookingService service.BookingService,
	competitionService service.CompetitionService,
) *AthleteHandler {
	return &AthleteHandler{
		athleteService:     athleteService,
		bookingService:     bookingService,
		competitionService: competitionService,
	}
}

// --- DTOs ---

type AthleteRequest struct {
	FullName       string  `json:"fullName" binding:"required"`
	Gender         string  `json:"gender"`
	Age            int     `json:"age" binding:"required,gt=0"`
	Weight         float64 `json:"weight" binding:"required,gt=0"`
	TrainingPlanID string  `json:"trainingPlanId"` // Required on create, optional on update
}

func (r *AthleteRequest) toInput(c *gin.Context, planRequired bool) (service.AthleteInput, bool) {
	input := service.AthleteInput{
		FullName: r.FullName,
		Gender:   r.Gender,
		Age:      r.Age,
		Weight:   r.Weight,
	}
	if r.TrainingPlanID == "" {
		if planRequired {
			abortWithError(c, http.StatusBadRequest, "Validation error: trainingPlanId is required")
			return input, false
		}
		return input, true
	}
	planID, ok := parseObjectID(c, r.TrainingPlanID, "training plan")
	if !ok {
		return input, false
	}
	input.TrainingPlanID = planID
	return input, true
}

// --- Handler Methods ---

// CreateAthlete godoc
// @Summary Register an athlete
// @Tags Athletes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param athlete body AthleteRequest true "Athlete details"
// @Success 201 {object} AthleteResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Training plan not found"
// @Router /athletes [post]
func (h *AthleteHandler) CreateAthlete(c *gin.Context) {
	var req AthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	input, ok := req.toInput(c, true)
	if !ok {
		return
	}

	athlete, err := h.athleteService.Register(c.Request.Context(), input)
	if err != nil {
		respondWithServiceError(c, err, "Failed to register athlete.")
		return
	}
	c.JSON(http.StatusCreated, MapAthleteToResponse(athlete))
}

// GetAthletes godoc
// @Summary List athletes with their plan
// @Tags Athletes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AthleteResponse
// @Router /athletes [get]
func (h *AthleteHandler) GetAthletes(c *gin.Context) {
	rows, err := h.athleteService.List(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve athletes.")
		return
	}
	c.JSON(http.StatusOK, MapAthleteOverviewsToResponse(rows))
}

func (h *AthleteHandler) GetAthlete(c *gin.Context) {
	athleteID, ok := parseObjectIDParam(c, "athleteId", "athlete")
	if !ok {
		return
	}
	athlete, err := h.athleteService.Get(c.Request.Context(), athleteID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve athlete.")
		return
	}
	c.JSON(http.StatusOK, MapAthleteToResponse(athlete))
}

// UpdateAthlete godoc
// @Summary Edit an athlete's profile or plan
// @Description Sessions booked before a plan change are not revisited.
// @Tags Athletes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param athleteId path string true "Athlete ID"
// @Param athlete body AthleteRequest true "Athlete details"
// @Success 200 {object} AthleteResponse
// @Router /athletes/{athleteId} [put]
func (h *AthleteHandler) UpdateAthlete(c *gin.Context) {
	athleteID, ok := parseObjectIDParam(c, "athleteId", "athlete")
	if !ok {
		return
	}
	var req AthleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	input, ok := req.toInput(c, false)
	if !ok {
		return
	}

	athlete, err := h.athleteService.Update(c.Request.Context(), athleteID, input)
	if err != nil {
		respondWithServiceError(c, err, "Failed to update athlete.")
		return
	}
	c.JSON(http.StatusOK, MapAthleteToResponse(athlete))
}

func (h *AthleteHandler) GetAthleteTrainingSessions(c *gin.Context) {
	athleteID, ok := parseObjectIDParam(c, "athleteId", "athlete")
	if !ok {
		return
	}
	sessions, err := h.bookingService.ListTrainingSessions(c.Request.Context(), athleteID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve training sessions.")
		return
	}
	c.JSON(http.StatusOK, MapTrainingSessionsToResponse(sessions))
}

func (h *AthleteHandler) GetAthleteCoachingSessions(c *gin.Context) {
	athleteID, ok := parseObjectIDParam(c, "athleteId", "athlete")
	if !ok {
		return
	}
	sessions, err := h.bookingService.ListCoachingSessions(c.Request.Context(), athleteID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve coaching sessions.")
		return
	}
	c.JSON(http.StatusOK, MapCoachingSessionsToResponse(sessions))
}

// GetAthleteCompetitions lists one entry per registration, so an athlete
// registered twice for the same event appears twice.
func (h *AthleteHandler) GetAthleteCompetitions(c *gin.Context) {
	athleteID, ok := parseObjectIDParam(c, "athleteId", "athlete")
	if !ok {
		return
	}
	competitions, err := h.competitionService.ForAthlete(c.Request.Context(), athleteID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve competitions.")
		return
	}
	c.JSON(http.StatusOK, MapCompetitionsToResponse(competitions))
}

// EligibilityResponse answers whether another session fits in the week.
type EligibilityResponse struct {
	AthleteID       string `json:"athleteId"`
	Date            string `json:"date"`
	WeekStart       string `json:"weekStart"`
	WeekEnd         string `json:"weekEnd"`
	CanBookTraining bool   `json:"canBookTraining"`
	CanBookCoaching bool   `json:"canBookCoaching"`
}

// GetEligibility godoc
// @Summary Check weekly booking eligibility
// @Tags Athletes
// @Produce json
// @Security BearerAuth
// @Param athleteId path string true "Athlete ID"
// @Param date query string false "YYYY-MM-DD, defaults to today"
// @Success 200 {object} EligibilityResponse
// @Failure 400 {object} gin.H "Invalid date"
// @Failure 404 {object} gin.H "Athlete or training plan not found"
// @Router /athletes/{athleteId}/eligibility [get]
func (h *AthleteHandler) GetEligibility(c *gin.Context) {
	athleteID, ok := parseObjectIDParam(c, "athleteId", "athlete")
	if !ok {
		return
	}
	day, ok := parseDateQuery(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	canTrain, err := h.bookingService.CanBookTraining(ctx, athleteID, day)
	if err != nil {
		respondWithServiceError(c, err, "Failed to check training eligibility.")
		return
	}
	canCoach, err := h.bookingService.CanBookCoaching(ctx, athleteID, day)
	if err != nil {
		respondWithServiceError(c, err, "Failed to check coaching eligibility.")
		return
	}

	start, end := weekBoundsStrings(day)
	c.JSON(http.StatusOK, EligibilityResponse{
		AthleteID:       athleteID.Hex(),
		Date:            formatDay(day),
		WeekStart:       start,
		WeekEnd:         end,
		CanBookTraining: canTrain,
		CanBookCoaching: canCoach,
	})
}
