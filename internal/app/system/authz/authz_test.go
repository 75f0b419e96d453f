package authz

import (
	"net/http/httptest"
	"testing"

	"github.com/rjinka/mytennisteam/internal/app/system/auth"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIsGroupAdmin(t *testing.T) {
	adminID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	group := &models.Group{Admins: []primitive.ObjectID{adminID}}

	tests := []struct {
		name string
		user *auth.AuthUser
		want bool
	}{
		{"group admin", &auth.AuthUser{ID: adminID}, true},
		{"plain member", &auth.AuthUser{ID: memberID}, false},
		{"superadmin bypasses", &auth.AuthUser{ID: memberID, IsSuperAdmin: true}, true},
		{"anonymous", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.user != nil {
				r = auth.WithTestUser(r, tt.user)
			}
			if got := IsGroupAdmin(r, group); got != tt.want {
				t.Errorf("IsGroupAdmin: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsOwner(t *testing.T) {
	userID := primitive.NewObjectID()
	player := &models.Player{UserID: userID}

	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.AuthUser{ID: userID})
	if !IsOwner(r, player) {
		t.Error("owner not recognized")
	}

	r = auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.AuthUser{ID: primitive.NewObjectID()})
	if IsOwner(r, player) {
		t.Error("non-owner recognized as owner")
	}
}
