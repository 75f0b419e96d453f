// internal/app/store/playerstats/statstore.go
package statstore

import (
	"context"
	"time"

	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("player_stats")}
}

// GetFor returns the history document for one player in one schedule.
// A player with no recorded outcomes yet yields mongo.ErrNoDocuments;
// callers treat that as an empty history.
func (s *Store) GetFor(ctx context.Context, playerID, scheduleID primitive.ObjectID) (models.PlayerStat, error) {
	var st models.PlayerStat
	err := s.c.FindOne(ctx, bson.M{"playerId": playerID, "scheduleId": scheduleID}).Decode(&st)
	if err != nil {
		return models.PlayerStat{}, err
	}
	return st, nil
}

// ListBySchedule returns every player's history for the schedule.
func (s *Store) ListBySchedule(ctx context.Context, scheduleID primitive.ObjectID) ([]models.PlayerStat, error) {
	cur, err := s.c.Find(ctx, bson.M{"scheduleId": scheduleID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var stats []models.PlayerStat
	if err := cur.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// ListByPlayer returns the player's histories across all schedules.
func (s *Store) ListByPlayer(ctx context.Context, playerID primitive.ObjectID) ([]models.PlayerStat, error) {
	cur, err := s.c.Find(ctx, bson.M{"playerId": playerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var stats []models.PlayerStat
	if err := cur.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// AppendEntry records one outcome, creating the history document on
// first use. The unique (playerId, scheduleId) index keeps concurrent
// upserts from creating two documents.
func (s *Store) AppendEntry(ctx context.Context, playerID, scheduleID primitive.ObjectID, entry models.StatEntry) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"playerId": playerID, "scheduleId": scheduleID},
		bson.M{
			"$push":        bson.M{"stats": entry},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true))
	return err
}

// DeleteBySchedule removes all histories for a schedule.
func (s *Store) DeleteBySchedule(ctx context.Context, scheduleID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"scheduleId": scheduleID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByPlayer removes all histories for a player, used when a player
// leaves a group.
func (s *Store) DeleteByPlayer(ctx context.Context, playerID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"playerId": playerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
