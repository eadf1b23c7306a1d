package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is an immutable record of a completed payment for a parcel.
// ParcelID is a soft reference: the store enforces no integrity between
// payments and parcels.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Email         string             `bson:"email" json:"email"`
	ParcelID      string             `bson:"parcelId" json:"parcelId"`
	Amount        int64              `bson:"amount" json:"amount"`
	Method        string             `bson:"paymentMethod" json:"paymentMethod"`
	Status        string             `bson:"status" json:"status"`
	PaidAt        time.Time          `bson:"paid_at" json:"paid_at"`
}

// PaymentRecorded is the result of recording a payment: the generated id
// plus the outcome of each underlying write.
type PaymentRecorded struct {
	PaymentID     string `json:"insertedId"`
	ParcelUpdated bool   `json:"parcelUpdated"`
}
