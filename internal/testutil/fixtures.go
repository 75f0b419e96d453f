package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calls stack: an existing route context keeps its earlier parameters.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts an account and returns it.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     text.Fold(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateSuperAdmin inserts an account with the superadmin flag set.
func (f *Fixtures) CreateSuperAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, name, email)
	u.IsSuperAdmin = true
	if _, err := f.db.Collection("users").ReplaceOne(ctx, map[string]any{"_id": u.ID}, u); err != nil {
		f.t.Fatalf("failed to promote test user: %v", err)
	}
	return u
}

// CreateGroup inserts a group administered by adminID and returns it.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, adminID primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedBy: adminID,
		Admins:    []primitive.ObjectID{adminID},
		JoinCode:  uuid.NewString()[:8],
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreatePlayer inserts the player profile linking userID into groupID.
func (f *Fixtures) CreatePlayer(ctx context.Context, userID, groupID primitive.ObjectID, availability ...models.Availability) models.Player {
	f.t.Helper()

	now := time.Now().UTC()
	player := models.Player{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		GroupID:      groupID,
		Availability: availability,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("players").InsertOne(ctx, player); err != nil {
		f.t.Fatalf("failed to create test player: %v", err)
	}
	return player
}

// CreateCourt inserts a court for the given group.
func (f *Fixtures) CreateCourt(ctx context.Context, name string, groupID primitive.ObjectID) models.Court {
	f.t.Helper()

	now := time.Now().UTC()
	court := models.Court{
		ID:        primitive.NewObjectID(),
		Name:      name,
		GroupID:   groupID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("courts").InsertOne(ctx, court); err != nil {
		f.t.Fatalf("failed to create test court: %v", err)
	}
	return court
}

// CreateSchedule inserts a planning-phase weekly doubles schedule on the
// given courts.
func (f *Fixtures) CreateSchedule(ctx context.Context, name string, groupID primitive.ObjectID, courts ...models.ScheduleCourt) models.Schedule {
	f.t.Helper()

	now := time.Now().UTC()
	maxPlayers := 0
	for _, c := range courts {
		maxPlayers += c.GameType.Capacity()
	}

	schedule := models.Schedule{
		ID:                primitive.NewObjectID(),
		Name:              name,
		GroupID:           groupID,
		Courts:            courts,
		Day:               3,
		Time:              "18:00",
		Duration:          90,
		Recurring:         true,
		Frequency:         models.FrequencyWeek,
		RecurrenceCount:   10,
		MaxPlayersCount:   maxPlayers,
		AllowShuffle:      true,
		PlayingPlayersIDs: []primitive.ObjectID{},
		BenchPlayersIDs:   []primitive.ObjectID{},
		Status:            models.StatusPlanning,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := f.db.Collection("schedules").InsertOne(ctx, schedule); err != nil {
		f.t.Fatalf("failed to create test schedule: %v", err)
	}
	return schedule
}

// CreateStat inserts a player history document with the given entries.
func (f *Fixtures) CreateStat(ctx context.Context, playerID, scheduleID primitive.ObjectID, entries ...models.StatEntry) models.PlayerStat {
	f.t.Helper()

	now := time.Now().UTC()
	stat := models.PlayerStat{
		ID:         primitive.NewObjectID(),
		PlayerID:   playerID,
		ScheduleID: scheduleID,
		Stats:      entries,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("player_stats").InsertOne(ctx, stat); err != nil {
		f.t.Fatalf("failed to create test player stat: %v", err)
	}
	return stat
}

// CreateInvitation inserts a pending invitation for email into groupID.
func (f *Fixtures) CreateInvitation(ctx context.Context, groupID, invitedBy primitive.ObjectID, email string) models.Invitation {
	f.t.Helper()

	now := time.Now().UTC()
	inv := models.Invitation{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		Email:     text.Fold(email),
		Token:     uuid.NewString(),
		Status:    models.InvitationPending,
		InvitedBy: invitedBy,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("invitations").InsertOne(ctx, inv); err != nil {
		f.t.Fatalf("failed to create test invitation: %v", err)
	}
	return inv
}
