package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcelhub/internal/domain"
)

// PaymentRepo represents the payments collection. Payment documents are
// append-only.
type PaymentRepo struct{ coll *mongo.Collection }

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{coll: db.Collection("payments")}
}

// Insert persists a payment record and returns its generated id.
func (r *PaymentRepo) Insert(ctx context.Context, p *domain.Payment) (string, error) {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("insert payment: %w", err)
	}
	return insertedID(res), nil
}

// ListByEmail returns the payer's payments, latest first by paid_at.
// An empty email returns the full history.
func (r *PaymentRepo) ListByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	query := bson.M{}
	if email != "" {
		query["email"] = email
	}
	opts := options.Find().SetSort(bson.D{{Key: "paid_at", Value: -1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	out := make([]domain.Payment, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list payments: decode: %w", err)
	}
	return out, nil
}
