package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	// RiderStatus represents the approval state of a rider.
	RiderStatus string
	// WorkStatus represents whether a rider currently holds deliveries.
	WorkStatus string
)

// List of possible rider approval statuses
const (
	RiderPending  RiderStatus = "pending"
	RiderActive   RiderStatus = "active"
	RiderRejected RiderStatus = "rejected"
)

// List of possible rider work statuses
const (
	WorkAvailable  WorkStatus = "available"
	WorkInDelivery WorkStatus = "in_delivery"
)

var allowedRiderStatuses = [...]RiderStatus{
	RiderPending, RiderActive, RiderRejected,
}

var allowedWorkStatuses = [...]WorkStatus{
	WorkAvailable, WorkInDelivery,
}

// Valid checks if the RiderStatus is valid.
func (s RiderStatus) Valid() bool {
	for _, v := range allowedRiderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the WorkStatus is valid.
func (s WorkStatus) Valid() bool {
	for _, v := range allowedWorkStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Rider represents a courier able to take parcel assignments.
// WorkStatus is in_delivery iff the rider holds at least one parcel in
// rider_assigned or in_transit.
type Rider struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	SenderCenter string             `bson:"sender_center" json:"sender_center"`
	Status       RiderStatus        `bson:"status" json:"status"`
	WorkStatus   WorkStatus         `bson:"work_status" json:"work_status"`
	ApprovedAt   *time.Time         `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
