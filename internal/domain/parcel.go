package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	// DeliveryStatus represents the delivery state of a parcel.
	DeliveryStatus string
	// PaymentStatus represents whether a parcel has been paid for.
	PaymentStatus string
)

// Delivery state machine: created → rider_assigned → in_transit → delivered.
const (
	DeliveryCreated       DeliveryStatus = "created"
	DeliveryRiderAssigned DeliveryStatus = "rider_assigned"
	DeliveryInTransit     DeliveryStatus = "in_transit"
	DeliveryDelivered     DeliveryStatus = "delivered"
)

// List of possible payment statuses
const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

var allowedDeliveryStatuses = [...]DeliveryStatus{
	DeliveryCreated, DeliveryRiderAssigned, DeliveryInTransit, DeliveryDelivered,
}

var allowedPaymentStatuses = [...]PaymentStatus{
	PaymentUnpaid, PaymentPaid,
}

// Valid checks if the DeliveryStatus is one of the four known values.
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedDeliveryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the PaymentStatus is valid.
func (s PaymentStatus) Valid() bool {
	for _, v := range allowedPaymentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Parcel represents a shipment tracked from intake to delivery.
// The assigned_rider_* fields are all-or-nothing: they are populated
// together by assignment and never partially.
type Parcel struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title              string             `bson:"title,omitempty" json:"title,omitempty"`
	CreatedBy          string             `bson:"created_by" json:"created_by"`
	SenderCenter       string             `bson:"sender_center,omitempty" json:"sender_center,omitempty"`
	DeliveryStatus     DeliveryStatus     `bson:"delivery_status" json:"delivery_status"`
	PaymentStatus      PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	AssignedRiderID    string             `bson:"assigned_rider_id,omitempty" json:"assigned_rider_id,omitempty"`
	AssignedRiderName  string             `bson:"assigned_rider_name,omitempty" json:"assigned_rider_name,omitempty"`
	AssignedRiderEmail string             `bson:"assigned_rider_email,omitempty" json:"assigned_rider_email,omitempty"`
	PickedAt           *time.Time         `bson:"picked_at,omitempty" json:"picked_at,omitempty"`
	DeliveredAt        *time.Time         `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// ParcelFilter narrows parcel listings. Zero-valued fields are ignored;
// the empty filter matches everything.
type ParcelFilter struct {
	CreatedBy      string
	PaymentStatus  PaymentStatus
	DeliveryStatus DeliveryStatus
}

// RiderAssignment carries the rider identity written onto a parcel.
type RiderAssignment struct {
	RiderID    string
	RiderName  string
	RiderEmail string
}
