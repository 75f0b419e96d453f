// internal/domain/models/court.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Court is a physical court owned by a group. Whether it hosts singles or
// doubles is decided per schedule (ScheduleCourt), not here.
type Court struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	GroupID primitive.ObjectID `bson:"groupId" json:"groupId"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
