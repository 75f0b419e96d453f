// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a tennis team. Admins manage its courts, schedules and
// invitations; every member has a Player document linking them in.
type Group struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string               `bson:"name" json:"name"`
	NameCI    string               `bson:"name_ci" json:"-"`
	CreatedBy primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Admins    []primitive.ObjectID `bson:"admins" json:"admins"`
	// JoinCode is a short shareable code for joining without an invitation.
	JoinCode string `bson:"joinCode,omitempty" json:"joinCode,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsAdmin reports whether userID administers this group.
func (g *Group) IsAdmin(userID primitive.ObjectID) bool {
	for _, id := range g.Admins {
		if id == userID {
			return true
		}
	}
	return false
}
