package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RoleAdmin = 1

// User is read-only in this subsystem: identity resolution for the
// order workflow and the admin gate. Account management is out of scope.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Role  int                `bson:"role" json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type UserRepository interface {
	// GetByID returns the user document, or ErrUserNotFound.
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
}
