package service

import (
	"errors"

	"alcyxob/gym-tally/internal/calendar"
)

// --- Error Definitions shared by the gym services ---
var (
	ErrAthleteNotFound           = errors.New("athlete not found")
	ErrTrainingPlanNotFound      = errors.New("training plan not found")
	ErrWeightCategoryNotFound    = errors.New("weight category not found")
	ErrCompetitionNotFound       = errors.New("competition not found")
	ErrInvalidInput              = errors.New("invalid input")
	ErrInvalidCompetitionDate    = errors.New("competition date must be on the second Saturday of the month")
	ErrNotEligibleForCompetition = errors.New("athlete is not eligible for this competition")
	ErrStatementsDisabled        = errors.New("statement export is not configured")

	// ErrInvalidDate is the calendar parsing error, re-exported so handlers
	// only need to know the service package.
	ErrInvalidDate = calendar.ErrInvalidDate
)
