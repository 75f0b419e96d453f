package rotation

import (
	"reflect"
	"testing"

	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func doublesCourt(n byte) models.ScheduleCourt {
	return models.ScheduleCourt{CourtID: oid(n), GameType: models.GameTypeDoubles}
}

func singlesCourt(n byte) models.ScheduleCourt {
	return models.ScheduleCourt{CourtID: oid(n), GameType: models.GameTypeSingles}
}

func playingIDs(n int) []primitive.ObjectID {
	out := make([]primitive.ObjectID, n)
	for i := range out {
		out[i] = oid(byte(i + 1))
	}
	return out
}

func TestAssignCourts_TwoDoublesCourts(t *testing.T) {
	playing := playingIDs(8)
	courts := []models.ScheduleCourt{doublesCourt(100), doublesCourt(101)}

	got, err := AssignCourts(playing, courts)
	if err != nil {
		t.Fatalf("AssignCourts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d courts, want 2", len(got))
	}

	wantSides := []models.Side{models.SideLeft, models.SideRight, models.SideLeft, models.SideRight}
	for ci, ca := range got {
		if len(ca.Assignments) != 4 {
			t.Fatalf("court %d: got %d slots, want 4", ci, len(ca.Assignments))
		}
		for si, slot := range ca.Assignments {
			if slot.Side != wantSides[si] {
				t.Errorf("court %d slot %d: side %q, want %q", ci, si, slot.Side, wantSides[si])
			}
			if slot.PlayerID != playing[ci*4+si] {
				t.Errorf("court %d slot %d: player out of sequence", ci, si)
			}
		}
	}
}

func TestAssignCourts_SinglesCarryNoSide(t *testing.T) {
	got, err := AssignCourts(playingIDs(2), []models.ScheduleCourt{singlesCourt(100)})
	if err != nil {
		t.Fatalf("AssignCourts failed: %v", err)
	}
	for i, slot := range got[0].Assignments {
		if slot.Side != "" {
			t.Errorf("singles slot %d: got side %q, want none", i, slot.Side)
		}
	}
}

func TestAssignCourts_SequentialFillBeforeNextCourt(t *testing.T) {
	// 3 players over singles + doubles: singles fills first.
	playing := playingIDs(3)
	courts := []models.ScheduleCourt{singlesCourt(100), doublesCourt(101)}

	got, err := AssignCourts(playing, courts)
	if err != nil {
		t.Fatalf("AssignCourts failed: %v", err)
	}
	if len(got[0].Assignments) != 2 {
		t.Errorf("first court: got %d slots, want 2", len(got[0].Assignments))
	}
	if len(got[1].Assignments) != 1 {
		t.Errorf("second court: got %d slots, want 1", len(got[1].Assignments))
	}
	if got[1].Assignments[0].Side != models.SideLeft {
		t.Errorf("first doubles slot: got side %q, want Left", got[1].Assignments[0].Side)
	}
}

func TestAssignCourts_Idempotent(t *testing.T) {
	playing := playingIDs(6)
	courts := []models.ScheduleCourt{doublesCourt(100), singlesCourt(101)}

	first, err := AssignCourts(playing, courts)
	if err != nil {
		t.Fatalf("AssignCourts failed: %v", err)
	}
	second, err := AssignCourts(playing, courts)
	if err != nil {
		t.Fatalf("AssignCourts failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("same playing order must always yield identical assignments")
	}
}

func TestAssignCourts_CapacityExceeded(t *testing.T) {
	got, err := AssignCourts(playingIDs(5), []models.ScheduleCourt{doublesCourt(100)})
	if err != ErrCourtCapacityExceeded {
		t.Fatalf("expected ErrCourtCapacityExceeded, got %v", err)
	}
	if got != nil {
		t.Error("failed assignment must not return partial results")
	}
}

func TestAssignCourts_AllPlayersSeatedExactlyOnce(t *testing.T) {
	playing := playingIDs(7)
	courts := []models.ScheduleCourt{doublesCourt(100), doublesCourt(101)}

	got, err := AssignCourts(playing, courts)
	if err != nil {
		t.Fatalf("AssignCourts failed: %v", err)
	}

	seen := map[primitive.ObjectID]int{}
	total := 0
	for _, ca := range got {
		for _, slot := range ca.Assignments {
			seen[slot.PlayerID]++
			total++
		}
	}
	if total != len(playing) {
		t.Errorf("seated %d players, want %d", total, len(playing))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("player %s seated %d times", id.Hex(), n)
		}
	}
}
