// internal/app/store/courts/courtstore.go
package courtstore

import (
	"context"
	"time"

	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("courts")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Court, error) {
	var c models.Court
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Court{}, err
	}
	return c, nil
}

func (s *Store) Create(ctx context.Context, c models.Court) (models.Court, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Court{}, err
	}
	return c, nil
}

func (s *Store) UpdateName(ctx context.Context, id primitive.ObjectID, name string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":       name,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Court, error) {
	cur, err := s.c.Find(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var courts []models.Court
	if err := cur.All(ctx, &courts); err != nil {
		return nil, err
	}
	return courts, nil
}

// CountByGroupAndIDs reports how many of the given court IDs belong to
// the group, used to validate schedule court configs.
func (s *Store) CountByGroupAndIDs(ctx context.Context, groupID primitive.ObjectID, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.c.CountDocuments(ctx, bson.M{"groupId": groupID, "_id": bson.M{"$in": ids}})
}

// Delete removes a court by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByGroup removes all courts belonging to a group.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
