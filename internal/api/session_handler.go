package api

import (
	"alcyxob/gym-tally/internal/service"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Rejection messages for a full week. These are normal answers, not errors.
const (
	msgTrainingLimitReached = "Weekly training limit reached for this athlete"
	msgCoachingNotAvailable = "Private coaching is not available for this athlete this week"
)

type SessionHandler struct {
	bookingService service.BookingService
}

func NewSessionHandler(bookingService service.BookingService) *SessionHandler {
	return &SessionHandler{bookingService: bookingService}
}

type BookTrainingRequest struct {
	AthleteID string `json:"athleteId" binding:"required"`
	Date      string `json:"date"` // YYYY-MM-DD, defaults to today
}

type BookCoachingRequest struct {
	AthleteID   string  `json:"athleteId" binding:"required"`
	Date        string  `json:"date"`
	TuitionFees float64 `json:"tuitionFees" binding:"gte=0"`
}

// BookTraining godoc
// @Summary Book a training session
// @Description Checks the plan's weekly cap and books atomically.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body BookTrainingRequest true "Booking"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} gin.H "Invalid input or date"
// @Failure 404 {object} gin.H "Athlete or training plan not found"
// @Failure 409 {object} gin.H "Weekly limit reached"
// @Router /training-sessions [post]
func (h *SessionHandler) BookTraining(c *gin.Context) {
	var req BookTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	athleteID, ok := parseObjectID(c, req.AthleteID, "athlete")
	if !ok {
		return
	}
	day, ok := parseDate(c, req.Date)
	if !ok {
		return
	}

	session, booked, err := h.bookingService.BookTraining(c.Request.Context(), athleteID, day)
	if err != nil {
		respondWithServiceError(c, err, "Failed to book training session.")
		return
	}
	if !booked {
		log.Printf("INFO: [%s] Training booking rejected for athlete %s on %s", getRequestID(c), athleteID.Hex(), formatDay(day))
		abortWithError(c, http.StatusConflict, msgTrainingLimitReached)
		return
	}
	c.JSON(http.StatusCreated, MapTrainingSessionToResponse(session))
}

// BookCoaching godoc
// @Summary Book a private coaching session
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session body BookCoachingRequest true "Booking"
// @Success 201 {object} SessionResponse
// @Failure 409 {object} gin.H "Not permitted by plan or weekly limit reached"
// @Router /coaching-sessions [post]
func (h *SessionHandler) BookCoaching(c *gin.Context) {
	var req BookCoachingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	athleteID, ok := parseObjectID(c, req.AthleteID, "athlete")
	if !ok {
		return
	}
	day, ok := parseDate(c, req.Date)
	if !ok {
		return
	}

	session, booked, err := h.bookingService.BookCoaching(c.Request.Context(), athleteID, day, req.TuitionFees)
	if err != nil {
		respondWithServiceError(c, err, "Failed to book coaching session.")
		return
	}
	if !booked {
		log.Printf("INFO: [%s] Coaching booking rejected for athlete %s on %s", getRequestID(c), athleteID.Hex(), formatDay(day))
		abortWithError(c, http.StatusConflict, msgCoachingNotAvailable)
		return
	}
	c.JSON(http.StatusCreated, MapCoachingSessionToResponse(session))
}

// GetTrainingSummary lists per-athlete training session totals.
func (h *SessionHandler) GetTrainingSummary(c *gin.Context) {
	counts, err := h.bookingService.TrainingSummary(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve training sessions.")
		return
	}
	c.JSON(http.StatusOK, MapSessionCountsToResponse(counts))
}

func (h *SessionHandler) GetCoachingSummary(c *gin.Context) {
	counts, err := h.bookingService.CoachingSummary(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve coaching sessions.")
		return
	}
	c.JSON(http.StatusOK, MapSessionCountsToResponse(counts))
}
