// internal/app/features/schedules/handler.go

// Package schedules owns the schedule lifecycle: creation and planning,
// finishing planning, generating rotations, swaps and shuffles. The
// lineup math itself lives in system/rotation; this package loads the
// inputs, applies the engine and persists the result.
package schedules

import (
	courtstore "github.com/rjinka/mytennisteam/internal/app/store/courts"
	groupstore "github.com/rjinka/mytennisteam/internal/app/store/groups"
	playerstore "github.com/rjinka/mytennisteam/internal/app/store/players"
	statstore "github.com/rjinka/mytennisteam/internal/app/store/playerstats"
	schedulestore "github.com/rjinka/mytennisteam/internal/app/store/schedules"
	"github.com/rjinka/mytennisteam/internal/app/system/events"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Schedules *schedulestore.Store
	Groups    *groupstore.Store
	Players   *playerstore.Store
	Courts    *courtstore.Store
	Stats     *statstore.Store
	Events    events.Publisher
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, publisher events.Publisher, logger *zap.Logger) *Handler {
	return &Handler{
		Schedules: schedulestore.New(db),
		Groups:    groupstore.New(db),
		Players:   playerstore.New(db),
		Courts:    courtstore.New(db),
		Stats:     statstore.New(db),
		Events:    publisher,
		Log:       logger,
	}
}
