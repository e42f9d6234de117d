// internal/domain/training_plan.go
package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingPlan is a named membership tier. It bundles a flat weekly price,
// the weekly training cap and the competition/private-coaching permissions.
// Plans are reference data seeded once at startup.
type TrainingPlan struct {
	ID                         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                       string             `bson:"name" json:"name"`                                             // e.g. "beginner"
	Price                      float64            `bson:"price" json:"price"`                                           // Billed once per active week
	NumOfSessions              int                `bson:"numOfSessions" json:"numOfSessions"`                           // Weekly training cap
	CanAttendCompetitions      bool               `bson:"canAttendCompetitions" json:"canAttendCompetitions"`
	CanAttendPrivateCoaching   bool               `bson:"canAttendPrivateCoaching" json:"canAttendPrivateCoaching"`
	PrivateCoachingMaxSessions int                `bson:"privateCoachingMaxSessions" json:"privateCoachingMaxSessions"` // Weekly coaching cap
}

// AllowsTraining reports whether one more training session fits the weekly
// cap given the number already booked in that week.
func (p *TrainingPlan) AllowsTraining(booked int) bool {
	return booked < p.NumOfSessions
}

// AllowsCoaching reports whether one more private coaching session may be
// booked. Plans without coaching permission never allow one.
func (p *TrainingPlan) AllowsCoaching(booked int) bool {
	if !p.CanAttendPrivateCoaching {
		return false
	}
	return booked < p.PrivateCoachingMaxSessions
}
