package performance

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SensorReading is a single fitness snapshot for an athlete. Readings are
// append only, duplicates for the same athlete and timestamp are allowed.
type SensorReading struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AthleteID string             `bson:"athleteId" json:"athleteId"`
	Steps     float64            `bson:"steps" json:"steps"`
	HeartRate float64            `bson:"heartRate" json:"heartRate"`
	Calories  float64            `bson:"calories" json:"calories"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
