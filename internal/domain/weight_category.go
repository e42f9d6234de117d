package domain

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightCategory is a competition weight class. Categories are expected to be
// contiguous across the seeded set; nothing enforces it.
type WeightCategory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	MinWeight float64            `bson:"minWeight" json:"minWeight"`
	MaxWeight float64            `bson:"maxWeight" json:"maxWeight"`
}

// Contains reports whether weight lies inside the category, bounds included.
func (w *WeightCategory) Contains(weight float64) bool {
	return weight >= w.MinWeight && weight <= w.MaxWeight
}

// Label is the display form used on competition listings, e.g. "lightweight (73 kg)".
func (w *WeightCategory) Label() string {
	return fmt.Sprintf("%s (%g kg)", w.Name, w.MaxWeight)
}
