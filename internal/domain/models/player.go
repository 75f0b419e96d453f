// internal/domain/models/player.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AvailabilityType is a player's declared participation mode for one schedule.
type AvailabilityType string

const (
	// AvailabilityPermanent: always placed in the playing set while
	// capacity allows; never benched by the rotation.
	AvailabilityPermanent AvailabilityType = "Permanent"
	// AvailabilityRotation: included or benched by fairness ranking.
	AvailabilityRotation AvailabilityType = "Rotation"
	// AvailabilityBackup: excluded from allocation; eligible only as a
	// swap-in substitute.
	AvailabilityBackup AvailabilityType = "Backup"
)

// IsValid reports whether t is one of the three known modes.
func (t AvailabilityType) IsValid() bool {
	switch t {
	case AvailabilityPermanent, AvailabilityRotation, AvailabilityBackup:
		return true
	}
	return false
}

// Availability is one entry of a player's per-schedule availability list.
// A player has at most one entry per schedule.
type Availability struct {
	ScheduleID primitive.ObjectID `bson:"scheduleId" json:"scheduleId"`
	Type       AvailabilityType   `bson:"type" json:"type"`
}

// Player is a user's membership profile inside one group. The same user
// has a separate Player document per group they belong to.
type Player struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	GroupID      primitive.ObjectID `bson:"groupId" json:"groupId"`
	Availability []Availability     `bson:"availability" json:"availability"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// AvailabilityFor returns the player's mode for the given schedule.
// Players with no entry for the schedule are not signed up at all.
func (p *Player) AvailabilityFor(scheduleID primitive.ObjectID) (AvailabilityType, bool) {
	for _, a := range p.Availability {
		if a.ScheduleID == scheduleID {
			return a.Type, true
		}
	}
	return "", false
}
