package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Competition is a tournament held on the second Saturday of its month.
type Competition struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Date             time.Time          `bson:"date" json:"date"`
	EntryFee         float64            `bson:"entryFee" json:"entryFee"`
	WeightCategoryID primitive.ObjectID `bson:"weightCategoryId" json:"weightCategoryId"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// CompetitionRegistration links an athlete to a competition. The same athlete
// may hold several registrations for one competition; each is billed.
type CompetitionRegistration struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompetitionID primitive.ObjectID `bson:"competitionId" json:"competitionId"`
	AthleteID     primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	RegisteredAt  time.Time          `bson:"registeredAt" json:"registeredAt"`
}
