// internal/app/system/events/events.go

// Package events carries the change notifications the core operations
// emit. The engine returns event values; the handler layer forwards
// them to a Publisher after the write commits. Delivery is best-effort
// and never blocks or fails the originating request.
package events

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Kind says what changed about a schedule's lineup.
type Kind string

const (
	KindGenerated Kind = "generated"
	KindSwapped   Kind = "swapped"
	KindShuffled  Kind = "shuffled"
)

// LineupChanged tells connected clients to refetch a schedule.
type LineupChanged struct {
	ScheduleID primitive.ObjectID `json:"scheduleId"`
	GroupID    primitive.ObjectID `json:"groupId"`
	Kind       Kind               `json:"kind"`
}

// Publisher fans an event out to whatever transport is wired in
// (websocket hub, message broker). Implementations must not block.
type Publisher interface {
	Publish(LineupChanged)
}

// LogPublisher is the default Publisher: it just records the event.
// Deployments with a push transport replace it at wiring time.
type LogPublisher struct {
	Log *zap.Logger
}

func (p *LogPublisher) Publish(e LineupChanged) {
	p.Log.Info("lineup changed",
		zap.String("scheduleId", e.ScheduleID.Hex()),
		zap.String("groupId", e.GroupID.Hex()),
		zap.String("kind", string(e.Kind)))
}
