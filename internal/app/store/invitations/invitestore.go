// internal/app/store/invitations/invitestore.go
package invitestore

import (
	"context"
	"time"

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

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("invitations")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Invitation, error) {
	var inv models.Invitation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inv); err != nil {
		return models.Invitation{}, err
	}
	return inv, nil
}

func (s *Store) GetByToken(ctx context.Context, token string) (models.Invitation, error) {
	var inv models.Invitation
	if err := s.c.FindOne(ctx, bson.M{"token": token}).Decode(&inv); err != nil {
		return models.Invitation{}, err
	}
	return inv, nil
}

// Create inserts a pending invitation with a fresh token.
func (s *Store) Create(ctx context.Context, inv models.Invitation) (models.Invitation, error) {
	now := time.Now().UTC()
	inv.ID = primitive.NewObjectID()
	inv.Email = text.Fold(inv.Email)
	inv.Token = uuid.NewString()
	inv.Status = models.InvitationPending
	if inv.ExpiresAt.IsZero() {
		inv.ExpiresAt = now.Add(7 * 24 * time.Hour)
	}
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		return models.Invitation{}, err
	}
	return inv, nil
}

func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Invitation, error) {
	cur, err := s.c.Find(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var invs []models.Invitation
	if err := cur.All(ctx, &invs); err != nil {
		return nil, err
	}
	return invs, nil
}

// MarkAccepted transitions a pending invitation to accepted. The status
// filter makes acceptance single-shot.
func (s *Store) MarkAccepted(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.InvitationPending},
		bson.M{"$set": bson.M{
			"status":     models.InvitationAccepted,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkRevoked withdraws a pending invitation.
func (s *Store) MarkRevoked(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.InvitationPending},
		bson.M{"$set": bson.M{
			"status":     models.InvitationRevoked,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByGroup removes all invitations for a group.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
