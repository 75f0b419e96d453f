// internal/app/store/players/playerstore.go
package playerstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrAlreadyMember = errors.New("user is already a member of this group")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("players")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Player, error) {
	var p models.Player
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Player{}, err
	}
	return p, nil
}

func (s *Store) GetByUserAndGroup(ctx context.Context, userID, groupID primitive.ObjectID) (models.Player, error) {
	var p models.Player
	err := s.c.FindOne(ctx, bson.M{"userId": userID, "groupId": groupID}).Decode(&p)
	if err != nil {
		return models.Player{}, err
	}
	return p, nil
}

func (s *Store) Create(ctx context.Context, p models.Player) (models.Player, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	if p.Availability == nil {
		p.Availability = []models.Availability{}
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Player{}, ErrAlreadyMember
		}
		return models.Player{}, err
	}
	return p, nil
}

// ListByUser returns the user's player profiles across all groups.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Player, error) {
	cur, err := s.c.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var players []models.Player
	if err := cur.All(ctx, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// ListByGroup returns every player profile in the group.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Player, error) {
	cur, err := s.c.Find(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var players []models.Player
	if err := cur.All(ctx, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// ListBySchedule returns the players signed up for the schedule, in any
// availability mode.
func (s *Store) ListBySchedule(ctx context.Context, scheduleID primitive.ObjectID) ([]models.Player, error) {
	cur, err := s.c.Find(ctx, bson.M{"availability.scheduleId": scheduleID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var players []models.Player
	if err := cur.All(ctx, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// SetAvailability records the player's mode for the schedule, replacing
// any previous entry for the same schedule.
func (s *Store) SetAvailability(ctx context.Context, playerID, scheduleID primitive.ObjectID, mode models.AvailabilityType) error {
	now := time.Now().UTC()

	// Drop any existing entry first so the push can't duplicate it.
	if _, err := s.c.UpdateByID(ctx, playerID, bson.M{
		"$pull": bson.M{"availability": bson.M{"scheduleId": scheduleID}},
	}); err != nil {
		return err
	}
	res, err := s.c.UpdateByID(ctx, playerID, bson.M{
		"$push": bson.M{"availability": models.Availability{ScheduleID: scheduleID, Type: mode}},
		"$set":  bson.M{"updated_at": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ClearAvailability withdraws the player from the schedule.
func (s *Store) ClearAvailability(ctx context.Context, playerID, scheduleID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, playerID, bson.M{
		"$pull": bson.M{"availability": bson.M{"scheduleId": scheduleID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// ClearScheduleSignups removes the schedule from every player's
// availability list, used when a schedule is deleted.
func (s *Store) ClearScheduleSignups(ctx context.Context, scheduleID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"availability.scheduleId": scheduleID},
		bson.M{
			"$pull": bson.M{"availability": bson.M{"scheduleId": scheduleID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Delete removes a player profile. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByGroup removes all player profiles in a group.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
