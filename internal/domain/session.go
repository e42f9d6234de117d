package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionKind distinguishes the two bookable session types.
type SessionKind string

const (
	SessionKindTraining SessionKind = "training"
	SessionKindCoaching SessionKind = "coaching"
)

// TrainingSession is one booked group training slot. Rows are never updated
// or deleted after creation.
type TrainingSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AthleteID primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	Date      time.Time          `bson:"date" json:"date"` // Calendar date, midnight UTC
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CoachingSession is one private coaching slot. TuitionFees is entered by the
// operator per booking and is not derived from the plan.
type CoachingSession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AthleteID   primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	Date        time.Time          `bson:"date" json:"date"`
	TuitionFees float64            `bson:"tuitionFees" json:"tuitionFees"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// AthleteSessionCount is a per-athlete session tally used by list views.
type AthleteSessionCount struct {
	AthleteID primitive.ObjectID `bson:"_id" json:"athleteId"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Sessions  int                `bson:"sessions" json:"sessions"`
}
