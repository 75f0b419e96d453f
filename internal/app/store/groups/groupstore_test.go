package groupstore_test

import (
	"testing"

	groupstore "github.com/rjinka/mytennisteam/internal/app/store/groups"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"github.com/rjinka/mytennisteam/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com")

	created, err := store.Create(ctx, models.Group{
		Name:      "Morning Crew",
		CreatedBy: admin.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.JoinCode == "" {
		t.Error("expected a join code to be generated")
	}
	if !created.IsAdmin(admin.ID) {
		t.Error("expected creator to be an admin")
	}
}

func TestStore_GetByJoinCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com")
	group := fixtures.CreateGroup(ctx, "Morning Crew", admin.ID)

	got, err := store.GetByJoinCode(ctx, group.JoinCode)
	if err != nil {
		t.Fatalf("GetByJoinCode failed: %v", err)
	}
	if got.ID != group.ID {
		t.Errorf("got group %v, want %v", got.ID, group.ID)
	}
}

func TestStore_RotateJoinCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com")
	group := fixtures.CreateGroup(ctx, "Morning Crew", admin.ID)

	code, err := store.RotateJoinCode(ctx, group.ID)
	if err != nil {
		t.Fatalf("RotateJoinCode failed: %v", err)
	}
	if code == group.JoinCode {
		t.Error("expected a new join code")
	}

	got, err := store.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.JoinCode != code {
		t.Errorf("stored join code %q, want %q", got.JoinCode, code)
	}
}

func TestStore_AddRemoveAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com")
	other := fixtures.CreateUser(ctx, "Other", "other@example.com")
	group := fixtures.CreateGroup(ctx, "Morning Crew", admin.ID)

	if err := store.AddAdmin(ctx, group.ID, other.ID); err != nil {
		t.Fatalf("AddAdmin failed: %v", err)
	}
	got, _ := store.GetByID(ctx, group.ID)
	if !got.IsAdmin(other.ID) {
		t.Error("expected other to be an admin after AddAdmin")
	}

	// Adding again must not duplicate the entry.
	if err := store.AddAdmin(ctx, group.ID, other.ID); err != nil {
		t.Fatalf("second AddAdmin failed: %v", err)
	}
	got, _ = store.GetByID(ctx, group.ID)
	if len(got.Admins) != 2 {
		t.Errorf("expected 2 admins, got %d", len(got.Admins))
	}

	if err := store.RemoveAdmin(ctx, group.ID, other.ID); err != nil {
		t.Fatalf("RemoveAdmin failed: %v", err)
	}
	got, _ = store.GetByID(ctx, group.ID)
	if got.IsAdmin(other.ID) {
		t.Error("expected other to be removed from admins")
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com")
	group := fixtures.CreateGroup(ctx, "Morning Crew", admin.ID)

	n, err := store.Delete(ctx, group.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deletion, got %d", n)
	}

	n, err = store.Delete(ctx, group.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deletions, got %d", n)
	}
}
