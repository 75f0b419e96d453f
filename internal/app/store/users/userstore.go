// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = errors.New("an account with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": text.Fold(email)}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = text.Fold(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateName renames the account. Email is immutable after signup.
func (s *Store) UpdateName(ctx context.Context, id primitive.ObjectID, name string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":       name,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// ListByIDs fetches the named users in one query.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
