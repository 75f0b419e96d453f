// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account holder. Group-level roles (admin of a group) live on
// the Group document, not here; IsSuperAdmin bypasses all group checks.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // stored case-folded
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	IsSuperAdmin bool               `bson:"isSuperAdmin" json:"isSuperAdmin"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
