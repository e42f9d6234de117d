package api

import (
	"alcyxob/gym-tally/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billingService   service.BillingService
	statementService service.StatementService
}

func NewBillingHandler(billingService service.BillingService, statementService service.StatementService) *BillingHandler {
	return &BillingHandler{billingService: billingService, statementService: statementService}
}

// GetPayments godoc
// @Summary Payment breakdown of an athlete
// @Description Weekly training and coaching rollups, competition entries and totals over the athlete's whole history.
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Param athleteId path string true "Athlete ID"
// @Success 200 {object} PaymentsResponse
// @Failure 404 {object} gin.H "Athlete or training plan not found"
// @Router /athletes/{athleteId}/payments [get]
func (h *BillingHandler) GetPayments(c *gin.Context) {
	athleteID, ok := parseObjectIDParam(c, "athleteId", "athlete")
	if !ok {
		return
	}
	stmt, err := h.billingService.Statement(c.Request.Context(), athleteID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to compute payments.")
		return
	}
	c.JSON(http.StatusOK, MapStatementToResponse(stmt))
}

type StatementResponse struct {
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Total       float64   `json:"total"`
}

// ExportStatement uploads a CSV statement and returns a temporary download
// link. Answers 503 when object storage is not configured.
func (h *BillingHandler) ExportStatement(c *gin.Context) {
	athleteID, ok := parseObjectIDParam(c, "athleteId", "athlete")
	if !ok {
		return
	}
	exported, err := h.statementService.Export(c.Request.Context(), athleteID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to export statement.")
		return
	}
	c.JSON(http.StatusCreated, StatementResponse{
		ObjectKey:   exported.ObjectKey,
		DownloadURL: exported.DownloadURL,
		ExpiresAt:   exported.ExpiresAt,
		Total:       exported.Total,
	})
}
