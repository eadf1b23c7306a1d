package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrackingUpdate is an append-only event in a parcel's tracking history.
type TrackingUpdate struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrackingID string             `bson:"trackingId" json:"trackingId"`
	Status     string             `bson:"status" json:"status"`
	Location   string             `bson:"location,omitempty" json:"location,omitempty"`
	Note       string             `bson:"note,omitempty" json:"note,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
