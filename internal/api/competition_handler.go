package api

import (
	"alcyxob/gym-tally/internal/service"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CompetitionHandler struct {
	competitionService service.CompetitionService
}

func NewCompetitionHandler(competitionService service.CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{competitionService: competitionService}
}

type CreateCompetitionRequest struct {
	Name             string  `json:"name" binding:"required"`
	Date             string  `json:"date" binding:"required"` // Second Saturday of the month
	WeightCategoryID string  `json:"weightCategoryId" binding:"required"`
	EntryFee         float64 `json:"entryFee" binding:"gte=0"`
}

type RegisterParticipantRequest struct {
	AthleteID string `json:"athleteId" binding:"required"`
}

// CreateCompetition godoc
// @Summary Schedule a competition
// @Tags Competitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param competition body CreateCompetitionRequest true "Competition details"
// @Success 201 {object} CompetitionResponse
// @Failure 400 {object} gin.H "Invalid input, or date is not a second Saturday"
// @Failure 404 {object} gin.H "Weight category not found"
// @Router /competitions [post]
func (h *CompetitionHandler) CreateCompetition(c *gin.Context) {
	var req CreateCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	categoryID, ok := parseObjectID(c, req.WeightCategoryID, "weight category")
	if !ok {
		return
	}
	day, ok := parseDate(c, req.Date)
	if !ok {
		return
	}

	competition, err := h.competitionService.Create(c.Request.Context(), service.CompetitionInput{
		Name:             req.Name,
		Date:             day,
		WeightCategoryID: categoryID,
		EntryFee:         req.EntryFee,
	})
	if err != nil {
		respondWithServiceError(c, err, "Failed to create competition.")
		return
	}
	log.Printf("INFO: [%s] Competition %q scheduled on %s", getRequestID(c), competition.Name, formatDay(competition.Date))
	c.JSON(http.StatusCreated, MapCompetitionToResponse(competition))
}

func (h *CompetitionHandler) GetCompetitions(c *gin.Context) {
	rows, err := h.competitionService.List(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve competitions.")
		return
	}
	c.JSON(http.StatusOK, MapCompetitionOverviewsToResponse(rows))
}

// GetCompetition returns the competition with its category and participants.
func (h *CompetitionHandler) GetCompetition(c *gin.Context) {
	competitionID, ok := parseObjectIDParam(c, "competitionId", "competition")
	if !ok {
		return
	}
	details, err := h.competitionService.Get(c.Request.Context(), competitionID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve competition.")
		return
	}
	c.JSON(http.StatusOK, MapCompetitionDetailsToResponse(details))
}

func (h *CompetitionHandler) GetEligibleAthletes(c *gin.Context) {
	competitionID, ok := parseObjectIDParam(c, "competitionId", "competition")
	if !ok {
		return
	}
	athletes, err := h.competitionService.EligibleAthletes(c.Request.Context(), competitionID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve eligible athletes.")
		return
	}
	c.JSON(http.StatusOK, MapAthletesToResponse(athletes))
}

// RegisterParticipant godoc
// @Summary Register an athlete for a competition
// @Description Registering the same athlete again creates another, separately billed, registration.
// @Tags Competitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param competitionId path string true "Competition ID"
// @Param participant body RegisterParticipantRequest true "Athlete"
// @Success 201 {object} RegistrationResponse
// @Failure 404 {object} gin.H "Competition, athlete or plan not found"
// @Failure 422 {object} gin.H "Athlete not eligible"
// @Router /competitions/{competitionId}/participants [post]
func (h *CompetitionHandler) RegisterParticipant(c *gin.Context) {
	competitionID, ok := parseObjectIDParam(c, "competitionId", "competition")
	if !ok {
		return
	}
	var req RegisterParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	athleteID, ok := parseObjectID(c, req.AthleteID, "athlete")
	if !ok {
		return
	}

	registration, err := h.competitionService.Register(c.Request.Context(), competitionID, athleteID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to register participant.")
		return
	}
	c.JSON(http.StatusCreated, MapRegistrationToResponse(registration))
}
