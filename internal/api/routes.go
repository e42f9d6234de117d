package api

import (
	"alcyxob/gym-tally/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services bundles every service the routes depend on.
type Services struct {
	Auth        service.AuthService
	Reference   service.ReferenceService
	Dashboard   service.DashboardService
	Athlete     service.AthleteService
	Booking     service.BookingService
	Competition service.CompetitionService
	Billing     service.BillingService
	Statement   service.StatementService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, services Services) {
	authHandler := NewAuthHandler(services.Auth)
	referenceHandler := NewReferenceHandler(services.Reference, services.Dashboard)
	athleteHandler := NewAthleteHandler(services.Athlete, services.Booking, services.Competition)
	sessionHandler := NewSessionHandler(services.Booking)
	competitionHandler := NewCompetitionHandler(services.Competition)
	billingHandler := NewBillingHandler(services.Billing, services.Statement)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)
		protected.GET("/dashboard", referenceHandler.GetDashboard)

		// --- Reference data ---
		protected.GET("/training-plans", referenceHandler.GetTrainingPlans)
		protected.GET("/weight-categories", referenceHandler.GetWeightCategories)

		// --- Athletes ---
		athleteGroup := protected.Group("/athletes")
		{
			athleteGroup.POST("", athleteHandler.CreateAthlete)
			athleteGroup.GET("", athleteHandler.GetAthletes)
			athleteGroup.GET("/:athleteId", athleteHandler.GetAthlete)
			athleteGroup.PUT("/:athleteId", athleteHandler.UpdateAthlete)

			athleteGroup.GET("/:athleteId/training-sessions", athleteHandler.GetAthleteTrainingSessions)
			athleteGroup.GET("/:athleteId/coaching-sessions", athleteHandler.GetAthleteCoachingSessions)
			athleteGroup.GET("/:athleteId/competitions", athleteHandler.GetAthleteCompetitions)
			athleteGroup.GET("/:athleteId/eligibility", athleteHandler.GetEligibility)

			// --- Billing ---
			athleteGroup.GET("/:athleteId/payments", billingHandler.GetPayments)
			athleteGroup.POST("/:athleteId/statements", billingHandler.ExportStatement)
		}

		// --- Sessions ---
		protected.POST("/training-sessions", sessionHandler.BookTraining)
		protected.GET("/training-sessions", sessionHandler.GetTrainingSummary)
		protected.POST("/coaching-sessions", sessionHandler.BookCoaching)
		protected.GET("/coaching-sessions", sessionHandler.GetCoachingSummary)

		// --- Competitions ---
		competitionGroup := protected.Group("/competitions")
		{
			competitionGroup.POST("", competitionHandler.CreateCompetition)
			competitionGroup.GET("", competitionHandler.GetCompetitions)
			competitionGroup.GET("/:competitionId", competitionHandler.GetCompetition)
			competitionGroup.GET("/:competitionId/eligible-athletes", competitionHandler.GetEligibleAthletes)
			competitionGroup.POST("/:competitionId/participants", competitionHandler.RegisterParticipant)
		}

		// --- Calendar helpers ---
		calendarGroup := protected.Group("/calendar")
		{
			calendarGroup.GET("/week", GetWeek)
			calendarGroup.GET("/competition-date", GetCompetitionDate)
		}
	}
}
