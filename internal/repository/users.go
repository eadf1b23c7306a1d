package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcelhub/internal/domain"
)

// UserRepo represents the users collection. Users are keyed by email.
type UserRepo struct{ coll *mongo.Collection }

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection("users")}
}

// FindByEmail returns the user with the given email, or nil when absent.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %s: %w", email, err)
	}
	return &u, nil
}

// Insert persists a user and returns its generated id.
func (r *UserRepo) Insert(ctx context.Context, u *domain.User) (string, error) {
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	return insertedID(res), nil
}

// SearchByEmail returns up to limit users whose email matches the pattern,
// case-insensitively.
func (r *UserRepo) SearchByEmail(ctx context.Context, pattern string, limit int64) ([]domain.User, error) {
	query := bson.M{"email": bson.M{"$regex": primitive.Regex{Pattern: pattern, Options: "i"}}}
	cur, err := r.coll.Find(ctx, query, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	out := make([]domain.User, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("search users: decode: %w", err)
	}
	return out, nil
}

// SetRole updates the role of the user with the given email. Returns true
// if a document matched.
func (r *UserRepo) SetRole(ctx context.Context, email string, role domain.Role) (bool, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return false, fmt.Errorf("update user %s role: %w", email, err)
	}
	return res.MatchedCount > 0, nil
}
