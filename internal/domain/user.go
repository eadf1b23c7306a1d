package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents the single role a user holds at a time.
type Role string

// List of possible user roles
const (
	RoleUser  Role = "user"
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

var allowedRoles = [...]Role{RoleUser, RoleRider, RoleAdmin}

// DefaultRole is assumed when a stored user carries no role field.
const DefaultRole = RoleUser

// Valid checks if the Role is valid.
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents an account keyed by email. Created idempotently on first
// sign-in; the role changes only via admin grant or rider approval.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Role      Role               `bson:"role,omitempty" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	LastLogin time.Time          `bson:"last_log_in,omitempty" json:"last_log_in,omitempty"`
}
