// internal/domain/models/invitation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvitationStatus tracks the lifecycle of a group invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRevoked  InvitationStatus = "revoked"
)

// Invitation lets a group admin invite an email address into the group.
// Token is an opaque UUID the invitee presents when accepting.
type Invitation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID   primitive.ObjectID `bson:"groupId" json:"groupId"`
	Email     string             `bson:"email" json:"email"` // stored case-folded
	Token     string             `bson:"token" json:"token"`
	Status    InvitationStatus   `bson:"status" json:"status"`
	InvitedBy primitive.ObjectID `bson:"invitedBy" json:"invitedBy"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Expired reports whether the invitation can no longer be accepted.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
