package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcelhub/internal/domain"
)

// TrackingRepo represents the tracking collection of append-only updates.
type TrackingRepo struct{ coll *mongo.Collection }

// NewTrackingRepo creates a new TrackingRepo.
func NewTrackingRepo(db *mongo.Database) *TrackingRepo {
	return &TrackingRepo{coll: db.Collection("tracking")}
}

// Insert appends a tracking update and returns its generated id.
func (r *TrackingRepo) Insert(ctx context.Context, t *domain.TrackingUpdate) (string, error) {
	res, err := r.coll.InsertOne(ctx, t)
	if err != nil {
		return "", fmt.Errorf("insert tracking update: %w", err)
	}
	return insertedID(res), nil
}

// ListByTrackingID returns a parcel's tracking history, newest first.
func (r *TrackingRepo) ListByTrackingID(ctx context.Context, trackingID string) ([]domain.TrackingUpdate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"trackingId": trackingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tracking updates: %w", err)
	}
	out := make([]domain.TrackingUpdate, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list tracking updates: decode: %w", err)
	}
	return out, nil
}
