package playerstore_test

import (
	"errors"
	"testing"

	playerstore "github.com/rjinka/mytennisteam/internal/app/store/players"
	"github.com/rjinka/mytennisteam/internal/app/system/indexes"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"github.com/rjinka/mytennisteam/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_DuplicateMembership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := playerstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	user := fixtures.CreateUser(ctx, "Player", "p@example.com")
	group := fixtures.CreateGroup(ctx, "Crew", user.ID)

	if _, err := store.Create(ctx, models.Player{UserID: user.ID, GroupID: group.ID}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.Player{UserID: user.ID, GroupID: group.ID})
	if !errors.Is(err, playerstore.ErrAlreadyMember) {
		t.Errorf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestStore_SetAvailability(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := playerstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Player", "p@example.com")
	group := fixtures.CreateGroup(ctx, "Crew", user.ID)
	player := fixtures.CreatePlayer(ctx, user.ID, group.ID)
	scheduleID := primitive.NewObjectID()

	if err := store.SetAvailability(ctx, player.ID, scheduleID, models.AvailabilityRotation); err != nil {
		t.Fatalf("SetAvailability failed: %v", err)
	}

	got, err := store.GetByID(ctx, player.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	mode, ok := got.AvailabilityFor(scheduleID)
	if !ok || mode != models.AvailabilityRotation {
		t.Errorf("availability = %q, %v; want Rotation, true", mode, ok)
	}

	// Changing mode replaces the entry instead of adding a second one.
	if err := store.SetAvailability(ctx, player.ID, scheduleID, models.AvailabilityPermanent); err != nil {
		t.Fatalf("second SetAvailability failed: %v", err)
	}
	got, _ = store.GetByID(ctx, player.ID)
	if len(got.Availability) != 1 {
		t.Errorf("expected 1 availability entry, got %d", len(got.Availability))
	}
	if mode, _ := got.AvailabilityFor(scheduleID); mode != models.AvailabilityPermanent {
		t.Errorf("availability = %q, want Permanent", mode)
	}
}

func TestStore_SetAvailability_UnknownPlayer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := playerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.SetAvailability(ctx, primitive.NewObjectID(), primitive.NewObjectID(), models.AvailabilityRotation)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_ListBySchedule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := playerstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com")
	group := fixtures.CreateGroup(ctx, "Crew", admin.ID)
	scheduleID := primitive.NewObjectID()

	u1 := fixtures.CreateUser(ctx, "One", "one@example.com")
	u2 := fixtures.CreateUser(ctx, "Two", "two@example.com")
	u3 := fixtures.CreateUser(ctx, "Three", "three@example.com")
	fixtures.CreatePlayer(ctx, u1.ID, group.ID, models.Availability{ScheduleID: scheduleID, Type: models.AvailabilityRotation})
	fixtures.CreatePlayer(ctx, u2.ID, group.ID, models.Availability{ScheduleID: scheduleID, Type: models.AvailabilityBackup})
	fixtures.CreatePlayer(ctx, u3.ID, group.ID)

	players, err := store.ListBySchedule(ctx, scheduleID)
	if err != nil {
		t.Fatalf("ListBySchedule failed: %v", err)
	}
	if len(players) != 2 {
		t.Errorf("expected 2 signed-up players, got %d", len(players))
	}
}

func TestStore_ClearScheduleSignups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := playerstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com")
	group := fixtures.CreateGroup(ctx, "Crew", admin.ID)
	scheduleID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	u1 := fixtures.CreateUser(ctx, "One", "one@example.com")
	player := fixtures.CreatePlayer(ctx, u1.ID, group.ID,
		models.Availability{ScheduleID: scheduleID, Type: models.AvailabilityRotation},
		models.Availability{ScheduleID: otherID, Type: models.AvailabilityPermanent},
	)

	n, err := store.ClearScheduleSignups(ctx, scheduleID)
	if err != nil {
		t.Fatalf("ClearScheduleSignups failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 modified player, got %d", n)
	}

	got, _ := store.GetByID(ctx, player.ID)
	if _, ok := got.AvailabilityFor(scheduleID); ok {
		t.Error("expected schedule signup to be removed")
	}
	if _, ok := got.AvailabilityFor(otherID); !ok {
		t.Error("expected other schedule signup to survive")
	}
}
