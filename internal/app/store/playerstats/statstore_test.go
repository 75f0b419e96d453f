package statstore_test

import (
	"errors"
	"testing"

	statstore "github.com/rjinka/mytennisteam/internal/app/store/playerstats"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"github.com/rjinka/mytennisteam/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_AppendEntry_CreatesAndAppends(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := statstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	playerID := primitive.NewObjectID()
	scheduleID := primitive.NewObjectID()

	err := store.AppendEntry(ctx, playerID, scheduleID, models.StatEntry{
		OccurrenceNumber: 1, Status: models.OutcomePlayed, Date: "2026-08-01",
	})
	if err != nil {
		t.Fatalf("first AppendEntry failed: %v", err)
	}
	err = store.AppendEntry(ctx, playerID, scheduleID, models.StatEntry{
		OccurrenceNumber: 2, Status: models.OutcomeBenched, Date: "2026-08-08",
	})
	if err != nil {
		t.Fatalf("second AppendEntry failed: %v", err)
	}

	st, err := store.GetFor(ctx, playerID, scheduleID)
	if err != nil {
		t.Fatalf("GetFor failed: %v", err)
	}
	if len(st.Stats) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(st.Stats))
	}
	if st.Stats[0].OccurrenceNumber != 1 || st.Stats[1].OccurrenceNumber != 2 {
		t.Error("entries out of append order")
	}
}

func TestStore_GetFor_EmptyHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := statstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetFor(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_ListBySchedule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := statstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	scheduleID := primitive.NewObjectID()
	fixtures.CreateStat(ctx, primitive.NewObjectID(), scheduleID,
		models.StatEntry{OccurrenceNumber: 1, Status: models.OutcomePlayed, Date: "2026-08-01"})
	fixtures.CreateStat(ctx, primitive.NewObjectID(), scheduleID,
		models.StatEntry{OccurrenceNumber: 1, Status: models.OutcomeBenched, Date: "2026-08-01"})
	fixtures.CreateStat(ctx, primitive.NewObjectID(), primitive.NewObjectID(),
		models.StatEntry{OccurrenceNumber: 1, Status: models.OutcomePlayed, Date: "2026-08-01"})

	stats, err := store.ListBySchedule(ctx, scheduleID)
	if err != nil {
		t.Fatalf("ListBySchedule failed: %v", err)
	}
	if len(stats) != 2 {
		t.Errorf("expected 2 histories, got %d", len(stats))
	}
}

func TestStore_DeleteBySchedule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := statstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	scheduleID := primitive.NewObjectID()
	fixtures.CreateStat(ctx, primitive.NewObjectID(), scheduleID)
	fixtures.CreateStat(ctx, primitive.NewObjectID(), scheduleID)

	n, err := store.DeleteBySchedule(ctx, scheduleID)
	if err != nil {
		t.Fatalf("DeleteBySchedule failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deletions, got %d", n)
	}
}
