package courtstore_test

import (
	"testing"

	courtstore "github.com/rjinka/mytennisteam/internal/app/store/courts"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"github.com/rjinka/mytennisteam/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := courtstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com")
	group := fixtures.CreateGroup(ctx, "Crew", admin.ID)

	created, err := store.Create(ctx, models.Court{Name: "Court 1", GroupID: group.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}

	fixtures.CreateCourt(ctx, "Court 2", group.ID)
	fixtures.CreateCourt(ctx, "Elsewhere", primitive.NewObjectID())

	courts, err := store.ListByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(courts) != 2 {
		t.Errorf("expected 2 courts, got %d", len(courts))
	}
}

func TestStore_CountByGroupAndIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := courtstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateUser(ctx, "Admin", "admin@example.com")
	group := fixtures.CreateGroup(ctx, "Crew", admin.ID)
	c1 := fixtures.CreateCourt(ctx, "Court 1", group.ID)
	foreign := fixtures.CreateCourt(ctx, "Foreign", primitive.NewObjectID())

	n, err := store.CountByGroupAndIDs(ctx, group.ID, []primitive.ObjectID{c1.ID, foreign.ID})
	if err != nil {
		t.Fatalf("CountByGroupAndIDs failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 owned court, got %d", n)
	}

	n, err = store.CountByGroupAndIDs(ctx, group.ID, nil)
	if err != nil {
		t.Fatalf("CountByGroupAndIDs(nil) failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 for empty id list, got %d", n)
	}
}
