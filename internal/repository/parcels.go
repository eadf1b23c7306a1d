package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcelhub/internal/domain"
)

// ParcelRepo represents the parcels collection.
type ParcelRepo struct{ coll *mongo.Collection }

// NewParcelRepo creates a new ParcelRepo.
func NewParcelRepo(db *mongo.Database) *ParcelRepo {
	return &ParcelRepo{coll: db.Collection("parcels")}
}

// Insert persists a parcel and returns its generated id.
func (r *ParcelRepo) Insert(ctx context.Context, p *domain.Parcel) (string, error) {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("insert parcel: %w", err)
	}
	return insertedID(res), nil
}

// List returns parcels matching the filter, newest first by creation time.
// The empty filter returns the full set; no pagination is applied.
func (r *ParcelRepo) List(ctx context.Context, f domain.ParcelFilter) ([]domain.Parcel, error) {
	query := bson.M{}
	if f.CreatedBy != "" {
		query["created_by"] = f.CreatedBy
	}
	if f.PaymentStatus != "" {
		query["paymentStatus"] = f.PaymentStatus
	}
	if f.DeliveryStatus != "" {
		query["delivery_status"] = f.DeliveryStatus
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list parcels: %w", err)
	}
	out := make([]domain.Parcel, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list parcels: decode: %w", err)
	}
	return out, nil
}

// ListForRider returns the rider's active worklist: parcels assigned to the
// email and still in rider_assigned or in_transit.
func (r *ParcelRepo) ListForRider(ctx context.Context, email string) ([]domain.Parcel, error) {
	query := bson.M{
		"assigned_rider_email": email,
		"delivery_status": bson.M{
			"$in": []domain.DeliveryStatus{domain.DeliveryRiderAssigned, domain.DeliveryInTransit},
		},
	}
	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rider parcels: %w", err)
	}
	out := make([]domain.Parcel, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list rider parcels: decode: %w", err)
	}
	return out, nil
}

// Get - returns parcel by its ID, or nil when absent.
func (r *ParcelRepo) Get(ctx context.Context, id string) (*domain.Parcel, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var p domain.Parcel
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get parcel %s: %w", id, err)
	}
	return &p, nil
}

// SetDeliveryStatus updates a parcel's delivery status, stamping picked_at
// or delivered_at when provided. Returns true if a document matched.
func (r *ParcelRepo) SetDeliveryStatus(
	ctx context.Context,
	id string,
	status domain.DeliveryStatus,
	pickedAt, deliveredAt *time.Time,
) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}
	set := bson.M{"delivery_status": status}
	if pickedAt != nil {
		set["picked_at"] = *pickedAt
	}
	if deliveredAt != nil {
		set["delivered_at"] = *deliveredAt
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("update parcel %s status: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// AssignRider writes the rider identity trio and flips the parcel to
// rider_assigned in a single document update, so the assigned_rider_*
// fields are never partially populated.
func (r *ParcelRepo) AssignRider(ctx context.Context, id string, a domain.RiderAssignment) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"delivery_status":      domain.DeliveryRiderAssigned,
		"assigned_rider_id":    a.RiderID,
		"assigned_rider_name":  a.RiderName,
		"assigned_rider_email": a.RiderEmail,
	}})
	if err != nil {
		return false, fmt.Errorf("assign rider to parcel %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// SetPaymentStatus flips a parcel's payment status. Returns true if a
// document matched.
func (r *ParcelRepo) SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"paymentStatus": status}})
	if err != nil {
		return false, fmt.Errorf("update parcel %s payment status: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// Delete removes a parcel unconditionally. Returns true if a document was
// deleted. No cascade to payments or rider state.
func (r *ParcelRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete parcel %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}
