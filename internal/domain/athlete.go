package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Athlete is a registered gym member.
type Athlete struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"fullName" json:"fullName"`
	Gender   string             `bson:"gender" json:"gender"`
	Age      int                `bson:"age" json:"age"`
	Weight   float64            `bson:"weight" json:"weight"` // kg

	// TrainingPlanID is a plain reference; the plan is not guaranteed to exist.
	TrainingPlanID primitive.ObjectID `bson:"trainingPlanId" json:"trainingPlanId"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasTrainingPlan reports whether a plan reference has been assigned.
func (a *Athlete) HasTrainingPlan() bool {
	return a.TrainingPlanID != primitive.NilObjectID
}
