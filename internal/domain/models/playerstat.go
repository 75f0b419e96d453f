// internal/domain/models/playerstat.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OutcomeStatus is what happened to a player in one occurrence.
type OutcomeStatus string

const (
	OutcomePlayed  OutcomeStatus = "played"
	OutcomeBenched OutcomeStatus = "benched"
)

// StatEntry is one appended outcome for a player in a schedule.
// Date is a calendar-day string ("2006-01-02"), matching the wire format
// the clients display verbatim.
type StatEntry struct {
	OccurrenceNumber int           `bson:"occurrenceNumber" json:"occurrenceNumber"`
	Status           OutcomeStatus `bson:"status" json:"status"`
	Date             string        `bson:"date" json:"date"`
}

// PlayerStat is the append-only history of one player in one schedule.
// Exactly one document per (playerId, scheduleId) pair.
type PlayerStat struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlayerID   primitive.ObjectID `bson:"playerId" json:"playerId"`
	ScheduleID primitive.ObjectID `bson:"scheduleId" json:"scheduleId"`
	Stats      []StatEntry        `bson:"stats" json:"stats"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
