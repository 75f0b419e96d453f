// internal/app/store/schedules/schedulestore.go
package schedulestore

import (
	"context"
	"errors"
	"time"

	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

// ErrVersionConflict means the schedule changed between the read and the
// conditional lineup write. Callers re-read and retry or give up.
var ErrVersionConflict = errors.New("schedule was modified concurrently")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("schedules")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Schedule, error) {
	var sch models.Schedule
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sch); err != nil {
		return models.Schedule{}, err
	}
	return sch, nil
}

func (s *Store) Create(ctx context.Context, sch models.Schedule) (models.Schedule, error) {
	now := time.Now().UTC()
	sch.ID = primitive.NewObjectID()
	if sch.Status == "" {
		sch.Status = models.StatusPlanning
	}
	if sch.PlayingPlayersIDs == nil {
		sch.PlayingPlayersIDs = []primitive.ObjectID{}
	}
	if sch.BenchPlayersIDs == nil {
		sch.BenchPlayersIDs = []primitive.ObjectID{}
	}
	sch.Version = 0
	sch.CreatedAt = now
	sch.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sch); err != nil {
		return models.Schedule{}, err
	}
	return sch, nil
}

func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Schedule, error) {
	cur, err := s.c.Find(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var schedules []models.Schedule
	if err := cur.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// Update rewrites the whole document conditionally on the version the
// caller read. Admin edits can touch the courts and the lineup at once,
// so they contend with generation and swaps the same way.
func (s *Store) Update(ctx context.Context, sch models.Schedule) error {
	prev := sch.Version
	sch.Version = prev + 1
	sch.UpdatedAt = time.Now().UTC()

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": sch.ID, "version": prev}, sch)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": sch.ID})
		if err != nil {
			return err
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return ErrVersionConflict
	}
	return nil
}

// UpdateLineup persists a lineup mutation conditionally on the version
// the caller read. The filter misses when another writer got there
// first, which surfaces as ErrVersionConflict.
func (s *Store) UpdateLineup(ctx context.Context, sch models.Schedule) error {
	set := bson.M{
		"status":              sch.Status,
		"occurrenceNumber":    sch.OccurrenceNumber,
		"isRotationGenerated": sch.IsRotationGenerated,
		"playingPlayersIds":   sch.PlayingPlayersIDs,
		"benchPlayersIds":     sch.BenchPlayersIDs,
		"courtAssignments":    sch.CourtAssignments,
		"updated_at":          time.Now().UTC(),
	}
	if sch.LastRotationGeneratedDate != nil {
		set["lastRotationGeneratedDate"] = *sch.LastRotationGeneratedDate
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": sch.ID, "version": sch.Version},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing schedule from a stale version.
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": sch.ID})
		if err != nil {
			return err
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return ErrVersionConflict
	}
	return nil
}

// Delete removes a schedule by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByGroup removes all schedules belonging to a group.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
