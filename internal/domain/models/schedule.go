// internal/domain/models/schedule.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleStatus is the lifecycle state of a schedule.
type ScheduleStatus string

const (
	// StatusPlanning: the schedule exists but no lineup has been generated;
	// players sign up during this phase.
	StatusPlanning ScheduleStatus = "PLANNING"
	// StatusActive: planning is finished and rotations are being generated.
	StatusActive ScheduleStatus = "ACTIVE"
	// StatusCompleted: the schedule has run out of occurrences (or was a
	// one-time schedule whose rotation was generated).
	StatusCompleted ScheduleStatus = "COMPLETED"
)

// Frequency encodes how often a recurring schedule repeats.
// The numeric values match the wire format used by all clients.
type Frequency int

const (
	FrequencyNone   Frequency = 0
	FrequencyDay    Frequency = 1
	FrequencyWeek   Frequency = 2
	FrequencyBiWeek Frequency = 3
	FrequencyMonth  Frequency = 4
	FrequencyPeriod Frequency = 5
)

// Interval returns the elapsed time after which the next occurrence is due.
// FrequencyNone returns 0, meaning a new rotation never becomes due.
func (f Frequency) Interval() time.Duration {
	switch f {
	case FrequencyDay:
		return 24 * time.Hour
	case FrequencyWeek:
		return 7 * 24 * time.Hour
	case FrequencyBiWeek:
		return 14 * 24 * time.Hour
	case FrequencyMonth:
		return 30 * 24 * time.Hour
	case FrequencyPeriod:
		return 90 * 24 * time.Hour
	default:
		return 0
	}
}

// GameType says whether a court hosts singles or doubles play.
// "0" = Singles, "1" = Doubles, matching the original wire format.
type GameType string

const (
	GameTypeSingles GameType = "0"
	GameTypeDoubles GameType = "1"
)

// Capacity returns the number of players the game type seats.
func (g GameType) Capacity() int {
	if g == GameTypeDoubles {
		return 4
	}
	return 2
}

// Side is a doubles court side. Singles assignments carry no side.
type Side string

const (
	SideLeft  Side = "Left"
	SideRight Side = "Right"
)

// ScheduleCourt is one court reserved for a schedule, with its game type.
type ScheduleCourt struct {
	CourtID  primitive.ObjectID `bson:"courtId" json:"courtId"`
	GameType GameType           `bson:"gameType" json:"gameType"`
}

// CourtSlot is one seat on a court: who sits there and on which side.
type CourtSlot struct {
	PlayerID primitive.ObjectID `bson:"playerId" json:"playerId"`
	Side     Side               `bson:"side,omitempty" json:"side,omitempty"`
}

// CourtAssignment is the derived seating of part of the playing set on a
// single court. The slot order follows the playing order.
type CourtAssignment struct {
	CourtID     primitive.ObjectID `bson:"courtId" json:"courtId"`
	GameType    GameType           `bson:"gameType" json:"gameType"`
	Assignments []CourtSlot        `bson:"assignments" json:"assignments"`
}

// Schedule is a (possibly recurring) game slot for a group.
//
// playingPlayersIds and benchPlayersIds are ordered: the playing order
// determines court and side placement, the bench order determines who is
// first in line next time. While status is PLANNING both lists are empty.
//
// Version backs optimistic concurrency on lineup mutations; every lineup
// write is conditional on the version read.
type Schedule struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	GroupID primitive.ObjectID `bson:"groupId" json:"groupId"`

	Courts   []ScheduleCourt `bson:"courts" json:"courts"`
	Day      int             `bson:"day" json:"day"` // 0=Sunday … 6=Saturday
	Time     string          `bson:"time" json:"time"`
	Duration int             `bson:"duration" json:"duration"` // minutes

	Recurring       bool      `bson:"recurring" json:"recurring"`
	Frequency       Frequency `bson:"frequency" json:"frequency"`
	RecurrenceCount int       `bson:"recurrenceCount" json:"recurrenceCount"`

	MaxPlayersCount  int  `bson:"maxPlayersCount" json:"maxPlayersCount"`
	OccurrenceNumber int  `bson:"occurrenceNumber" json:"occurrenceNumber"`
	AllowShuffle     bool `bson:"allowShuffle" json:"allowShuffle"`

	IsRotationGenerated       bool       `bson:"isRotationGenerated" json:"isRotationGenerated"`
	LastRotationGeneratedDate *time.Time `bson:"lastRotationGeneratedDate,omitempty" json:"lastRotationGeneratedDate,omitempty"`

	PlayingPlayersIDs []primitive.ObjectID `bson:"playingPlayersIds" json:"playingPlayersIds"`
	BenchPlayersIDs   []primitive.ObjectID `bson:"benchPlayersIds" json:"benchPlayersIds"`
	CourtAssignments  []CourtAssignment    `bson:"courtAssignments" json:"courtAssignments"`

	Status  ScheduleStatus `bson:"status" json:"status"`
	Version int64          `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TotalCourtCapacity sums the seat counts of all configured courts.
func (s *Schedule) TotalCourtCapacity() int {
	total := 0
	for _, c := range s.Courts {
		total += c.GameType.Capacity()
	}
	return total
}

// NextDue returns the time at which the next rotation becomes due, and
// false when no further rotation will ever be due (never generated, or a
// non-recurring frequency).
func (s *Schedule) NextDue() (time.Time, bool) {
	if s.LastRotationGeneratedDate == nil {
		return time.Time{}, false
	}
	iv := s.Frequency.Interval()
	if !s.Recurring || iv == 0 {
		return time.Time{}, false
	}
	return s.LastRotationGeneratedDate.Add(iv), true
}
