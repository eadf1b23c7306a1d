package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"parcelhub/internal/domain"
)

// RiderRepo represents the riders collection.
type RiderRepo struct{ coll *mongo.Collection }

// NewRiderRepo creates a new RiderRepo.
func NewRiderRepo(db *mongo.Database) *RiderRepo {
	return &RiderRepo{coll: db.Collection("riders")}
}

// Insert persists a rider and returns its generated id.
func (r *RiderRepo) Insert(ctx context.Context, rider *domain.Rider) (string, error) {
	res, err := r.coll.InsertOne(ctx, rider)
	if err != nil {
		return "", fmt.Errorf("insert rider: %w", err)
	}
	return insertedID(res), nil
}

// Get - returns rider by its ID, or nil when absent.
func (r *RiderRepo) Get(ctx context.Context, id string) (*domain.Rider, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var rider domain.Rider
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rider)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rider %s: %w", id, err)
	}
	return &rider, nil
}

// ListByStatus returns riders with the given approval status.
func (r *RiderRepo) ListByStatus(ctx context.Context, status domain.RiderStatus) ([]domain.Rider, error) {
	return r.list(ctx, bson.M{"status": status})
}

// ListByDistrict returns riders serving the district. The match is exact.
func (r *RiderRepo) ListByDistrict(ctx context.Context, district string) ([]domain.Rider, error) {
	return r.list(ctx, bson.M{"sender_center": district})
}

// ListAll returns every rider, unpaginated.
func (r *RiderRepo) ListAll(ctx context.Context) ([]domain.Rider, error) {
	return r.list(ctx, bson.M{})
}

func (r *RiderRepo) list(ctx context.Context, query bson.M) ([]domain.Rider, error) {
	cur, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	out := make([]domain.Rider, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list riders: decode: %w", err)
	}
	return out, nil
}

// SetStatus updates a rider's approval status and stamps approvedAt.
// Returns true if a document matched.
func (r *RiderRepo) SetStatus(ctx context.Context, id string, status domain.RiderStatus, approvedAt time.Time) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":     status,
		"approvedAt": approvedAt,
	}})
	if err != nil {
		return false, fmt.Errorf("update rider %s status: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// SetWorkStatus updates a rider's work status. Returns true if a document
// matched.
func (r *RiderRepo) SetWorkStatus(ctx context.Context, id string, ws domain.WorkStatus) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"work_status": ws}})
	if err != nil {
		return false, fmt.Errorf("update rider %s work status: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// Delete removes a rider. Returns true if a document was deleted.
func (r *RiderRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete rider %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}
