package api

import (
	"alcyxob/gym-tally/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler serves the static lookup tables and the dashboard.
type ReferenceHandler struct {
	referenceService service.ReferenceService
	dashboardService service.DashboardService
}

func NewReferenceHandler(referenceService service.ReferenceService, dashboardService service.DashboardService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService, dashboardService: dashboardService}
}

// GetTrainingPlans godoc
// @Summary List training plans
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TrainingPlanResponse
// @Router /training-plans [get]
func (h *ReferenceHandler) GetTrainingPlans(c *gin.Context) {
	plans, err := h.referenceService.ListTrainingPlans(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve training plans.")
		return
	}
	out := make([]TrainingPlanResponse, len(plans))
	for i := range plans {
		out[i] = MapTrainingPlanToResponse(&plans[i])
	}
	c.JSON(http.StatusOK, out)
}

// GetWeightCategories godoc
// @Summary List weight categories, lightest first
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WeightCategoryResponse
// @Router /weight-categories [get]
func (h *ReferenceHandler) GetWeightCategories(c *gin.Context) {
	categories, err := h.referenceService.ListWeightCategories(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, "Failed to retrieve weight categories.")
		return
	}
	out := make([]WeightCategoryResponse, len(categories))
	for i := range categories {
		out[i] = MapWeightCategoryToResponse(&categories[i])
	}
	c.JSON(http.StatusOK, out)
}

type DashboardResponse struct {
	Athletes         int64 `json:"athletes"`
	Competitions     int64 `json:"competitions"`
	TrainingSessions int64 `json:"trainingSessions"`
	CoachingSessions int64 `json:"coachingSessions"`
}

func (h *ReferenceHandler) GetDashboard(c *gin.Context) {
	counts, err := h.dashboardService.Counts(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err, "Failed to load dashboard.")
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{
		Athletes:         counts.Athletes,
		Competitions:     counts.Competitions,
		TrainingSessions: counts.TrainingSessions,
		CoachingSessions: counts.CoachingSessions,
	})
}
