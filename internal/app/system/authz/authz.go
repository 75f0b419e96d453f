// internal/app/system/authz/authz.go

// Package authz answers "may this user do that" questions for handlers.
// Group administration is stored on the group document; superadmins
// bypass every group-level check.
package authz

import (
	"net/http"

	"github.com/rjinka/mytennisteam/internal/app/system/auth"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the authenticated user's ID, name, and a found flag.
func UserCtx(r *http.Request) (userID primitive.ObjectID, name string, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, "", false
	}
	return u.ID, u.Name, true
}

// IsSuperAdmin reports whether the request's user is a superadmin.
func IsSuperAdmin(r *http.Request) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.IsSuperAdmin
}

// IsGroupAdmin reports whether the request's user administers the group.
func IsGroupAdmin(r *http.Request, g *models.Group) bool {
	u, ok := auth.CurrentUser(r)
	if !ok || g == nil {
		return false
	}
	return u.IsSuperAdmin || g.IsAdmin(u.ID)
}

// IsOwner reports whether the request's user owns the player profile.
func IsOwner(r *http.Request, p *models.Player) bool {
	u, ok := auth.CurrentUser(r)
	if !ok || p == nil {
		return false
	}
	return u.ID == p.UserID
}
