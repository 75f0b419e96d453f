// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateJoinCode = errors.New("join code already in use")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) GetByJoinCode(ctx context.Context, code string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"joinCode": code}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Create inserts the group with the creator as its first admin and a
// fresh join code.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = text.Fold(g.Name)
	if len(g.Admins) == 0 {
		g.Admins = []primitive.ObjectID{g.CreatedBy}
	}
	if g.JoinCode == "" {
		g.JoinCode = newJoinCode()
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateJoinCode
		}
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) UpdateName(ctx context.Context, id primitive.ObjectID, name string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// RotateJoinCode replaces the join code, invalidating the old one.
func (s *Store) RotateJoinCode(ctx context.Context, id primitive.ObjectID) (string, error) {
	code := newJoinCode()
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"joinCode":   code,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *Store) AddAdmin(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"admins": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

func (s *Store) RemoveAdmin(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"admins": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// ListByIDs fetches the named groups in one query.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Delete removes a group by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// newJoinCode returns a short shareable code. Collisions are caught by
// the unique index on joinCode.
func newJoinCode() string {
	return uuid.NewString()[:8]
}
