// internal/app/system/indexes/indexes.go

// Package indexes creates the MongoDB indexes the stores rely on.
// EnsureAll runs at startup; every ensure* function is idempotent and
// errors are aggregated so a broken index definition fails startup
// visibly instead of surfacing later as slow queries or missed
// uniqueness.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll reconciles the indexes for every collection.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(name string, fn func(context.Context, *mongo.Database) error) {
		if err := fn(ctx, db); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}

	ensure("users", ensureUsers)
	ensure("groups", ensureGroups)
	ensure("players", ensurePlayers)
	ensure("courts", ensureCourts)
	ensure("schedules", ensureSchedules)
	ensure("player_stats", ensurePlayerStats)
	ensure("invitations", ensureInvitations)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
	})
	return err
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("groups").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "joinCode", Value: 1}},
			Options: options.Index().SetName("uniq_join_code").SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "admins", Value: 1}},
			Options: options.Index().SetName("by_admin"),
		},
	})
	return err
}

func ensurePlayers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("players").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// One player profile per user per group.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "groupId", Value: 1}},
			Options: options.Index().SetName("uniq_user_group").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "groupId", Value: 1}},
			Options: options.Index().SetName("by_group"),
		},
		{
			Keys:    bson.D{{Key: "availability.scheduleId", Value: 1}},
			Options: options.Index().SetName("by_schedule_signup"),
		},
	})
	return err
}

func ensureCourts(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("courts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "groupId", Value: 1}},
			Options: options.Index().SetName("by_group"),
		},
	})
	return err
}

func ensureSchedules(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("schedules").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "groupId", Value: 1}},
			Options: options.Index().SetName("by_group"),
		},
	})
	return err
}

func ensurePlayerStats(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("player_stats").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// One history document per player per schedule.
			Keys:    bson.D{{Key: "playerId", Value: 1}, {Key: "scheduleId", Value: 1}},
			Options: options.Index().SetName("uniq_player_schedule").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "scheduleId", Value: 1}},
			Options: options.Index().SetName("by_schedule"),
		},
	})
	return err
}

func ensureInvitations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("invitations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("uniq_token").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "groupId", Value: 1}},
			Options: options.Index().SetName("by_group"),
		},
	})
	return err
}
