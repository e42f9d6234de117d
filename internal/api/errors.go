package api

import (
	"alcyxob/gym-tally/internal/service"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondWithServiceError maps service errors to HTTP status codes. Anything
// unrecognised is logged and answered with a generic 500 carrying fallback.
func respondWithServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrAthleteNotFound),
		errors.Is(err, service.ErrTrainingPlanNotFound),
		errors.Is(err, service.ErrWeightCategoryNotFound),
		errors.Is(err, service.ErrCompetitionNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidCompetitionDate):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotEligibleForCompetition):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrStatementsDisabled):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("ERROR: [%s] %s %s: %v", getRequestID(c), c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// parseObjectIDParam reads a hex ObjectID path parameter, answering 400 when
// it is malformed.
func parseObjectIDParam(c *gin.Context, name, label string) (primitive.ObjectID, bool) {
	return parseObjectID(c, c.Param(name), label)
}

func parseObjectID(c *gin.Context, hex, label string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+label+" ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}
