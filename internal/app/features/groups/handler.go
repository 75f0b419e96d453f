// internal/app/features/groups/handler.go

// Package groups manages teams: creation, membership via join code,
// admin grants and deletion with full cleanup of dependent data.
package groups

import (
	courtstore "github.com/rjinka/mytennisteam/internal/app/store/courts"
	groupstore "github.com/rjinka/mytennisteam/internal/app/store/groups"
	invitestore "github.com/rjinka/mytennisteam/internal/app/store/invitations"
	playerstore "github.com/rjinka/mytennisteam/internal/app/store/players"
	statstore "github.com/rjinka/mytennisteam/internal/app/store/playerstats"
	schedulestore "github.com/rjinka/mytennisteam/internal/app/store/schedules"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature.
// Deleting a group cascades into every other collection, so this
// handler holds all the stores.
type Handler struct {
	Groups      *groupstore.Store
	Players     *playerstore.Store
	Courts      *courtstore.Store
	Schedules   *schedulestore.Store
	Stats       *statstore.Store
	Invitations *invitestore.Store
	Log         *zap.Logger
}

// NewHandler constructs a groups Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Groups:      groupstore.New(db),
		Players:     playerstore.New(db),
		Courts:      courtstore.New(db),
		Schedules:   schedulestore.New(db),
		Stats:       statstore.New(db),
		Invitations: invitestore.New(db),
		Log:         logger,
	}
}
