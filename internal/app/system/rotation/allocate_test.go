package rotation

import (
	"testing"

	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// oid builds a deterministic ObjectID whose hex order follows n.
func oid(n byte) primitive.ObjectID {
	var id primitive.ObjectID
	id[11] = n
	return id
}

func rotationPlayers(ids ...primitive.ObjectID) []EligiblePlayer {
	out := make([]EligiblePlayer, 0, len(ids))
	for _, id := range ids {
		out = append(out, EligiblePlayer{ID: id, Type: models.AvailabilityRotation})
	}
	return out
}

func played(occ int) models.StatEntry {
	return models.StatEntry{OccurrenceNumber: occ, Status: models.OutcomePlayed, Date: "2025-01-01"}
}

func benched(occ int) models.StatEntry {
	return models.StatEntry{OccurrenceNumber: occ, Status: models.OutcomeBenched, Date: "2025-01-01"}
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestAllocate_FillsEveryoneWhenUnderCapacity(t *testing.T) {
	eligible := rotationPlayers(oid(1), oid(2), oid(3), oid(4), oid(5), oid(6), oid(7), oid(8))

	playing, bench, err := Allocate(8, eligible, nil)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if len(playing) != 8 {
		t.Errorf("playing: got %d players, want 8", len(playing))
	}
	if len(bench) != 0 {
		t.Errorf("bench: got %d players, want 0", len(bench))
	}
}

func TestAllocate_PartialOccurrenceAllowed(t *testing.T) {
	eligible := rotationPlayers(oid(1), oid(2), oid(3))

	playing, bench, err := Allocate(8, eligible, nil)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if len(playing) != 3 {
		t.Errorf("playing: got %d, want all 3 eligible", len(playing))
	}
	if len(bench) != 0 {
		t.Errorf("bench: got %d, want 0", len(bench))
	}
}

func TestAllocate_PermanentPlayersAlwaysPlay(t *testing.T) {
	perm := oid(9)
	eligible := append(rotationPlayers(oid(1), oid(2), oid(3), oid(4)),
		EligiblePlayer{ID: perm, Type: models.AvailabilityPermanent})

	// Permanent player has played far more than everyone else.
	histories := map[primitive.ObjectID]History{
		perm: {played(1), played(2), played(3)},
	}

	playing, bench, err := Allocate(4, eligible, histories)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if !contains(playing, perm) {
		t.Error("permanent player missing from playing set")
	}
	if contains(bench, perm) {
		t.Error("permanent player must never be benched")
	}
	if len(playing) != 4 {
		t.Errorf("playing: got %d, want 4", len(playing))
	}
	if len(bench) != 1 {
		t.Errorf("bench: got %d, want 1", len(bench))
	}
}

func TestAllocate_TooManyPermanentsIsConfigError(t *testing.T) {
	eligible := []EligiblePlayer{
		{ID: oid(1), Type: models.AvailabilityPermanent},
		{ID: oid(2), Type: models.AvailabilityPermanent},
		{ID: oid(3), Type: models.AvailabilityPermanent},
	}

	playing, bench, err := Allocate(2, eligible, nil)
	if err != ErrInsufficientCapacity {
		t.Fatalf("expected ErrInsufficientCapacity, got %v", err)
	}
	if playing != nil || bench != nil {
		t.Error("failed allocation must not return partial results")
	}
}

func TestAllocate_FewerPlaysWins(t *testing.T) {
	a, b := oid(1), oid(2)
	histories := map[primitive.ObjectID]History{
		a: {played(1), benched(2)},
		b: {played(1), played(2)},
	}

	// Only one slot: A (1 play) must beat B (2 plays).
	playing, bench, err := Allocate(1, rotationPlayers(b, a), histories)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if !contains(playing, a) {
		t.Error("player with fewer plays was not selected")
	}
	if !contains(bench, b) {
		t.Error("player with more plays was not benched")
	}
}

func TestAllocate_BenchedLastTimeBreaksTies(t *testing.T) {
	a, b := oid(1), oid(2)
	// Same played totals; A sat out last time, B played last time.
	histories := map[primitive.ObjectID]History{
		a: {played(1), benched(2)},
		b: {benched(1), played(2)},
	}

	playing, _, err := Allocate(1, rotationPlayers(b, a), histories)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if !contains(playing, a) {
		t.Error("player benched last time should take priority on equal play counts")
	}
}

func TestAllocate_IDBreaksRemainingTies(t *testing.T) {
	a, b := oid(1), oid(2)

	// Identical histories; lower id wins so the result is deterministic.
	playing, _, err := Allocate(1, rotationPlayers(b, a), nil)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if !contains(playing, a) {
		t.Error("expected deterministic id tie-break to pick the lower id")
	}
}

func TestAllocate_Deterministic(t *testing.T) {
	eligible := append(rotationPlayers(oid(5), oid(3), oid(8), oid(1)),
		EligiblePlayer{ID: oid(7), Type: models.AvailabilityPermanent})
	histories := map[primitive.ObjectID]History{
		oid(5): {played(1)},
		oid(3): {benched(1)},
	}

	p1, b1, err := Allocate(3, eligible, histories)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	p2, b2, err := Allocate(3, eligible, histories)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("playing order differs between runs: %v vs %v", p1, p2)
		}
	}
	for i := range b1 {
		if b1[i] != b2[i] {
			t.Fatalf("bench order differs between runs: %v vs %v", b1, b2)
		}
	}
}

func TestAllocate_PlayingAndBenchDisjoint(t *testing.T) {
	eligible := rotationPlayers(oid(1), oid(2), oid(3), oid(4), oid(5), oid(6))
	histories := map[primitive.ObjectID]History{
		oid(2): {played(1)},
		oid(4): {played(1), played(2)},
	}

	playing, bench, err := Allocate(4, eligible, histories)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if len(playing) != 4 || len(bench) != 2 {
		t.Fatalf("got %d playing / %d bench, want 4/2", len(playing), len(bench))
	}
	for _, id := range playing {
		if contains(bench, id) {
			t.Errorf("player %s appears in both playing and bench", id.Hex())
		}
	}
}

func TestAllocate_BenchOrderIsInverseRanking(t *testing.T) {
	a, b, c := oid(1), oid(2), oid(3)
	histories := map[primitive.ObjectID]History{
		a: {},                     // never played: selected
		b: {played(1)},            // 1 play
		c: {played(1), played(2)}, // 2 plays
	}

	playing, bench, err := Allocate(1, rotationPlayers(a, b, c), histories)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if !contains(playing, a) {
		t.Fatal("expected never-played player to be selected")
	}
	// Inverse ranking puts the most-played player first on the bench.
	if bench[0] != c || bench[1] != b {
		t.Errorf("bench order: got [%s %s], want most-played first", bench[0].Hex(), bench[1].Hex())
	}
}

func TestAllocate_IgnoresBackupEntriesDefensively(t *testing.T) {
	// Backup players must not reach the allocator, but if one slips in it
	// is ignored rather than seated.
	eligible := []EligiblePlayer{
		{ID: oid(1), Type: models.AvailabilityRotation},
		{ID: oid(2), Type: models.AvailabilityBackup},
	}

	playing, bench, err := Allocate(2, eligible, nil)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if contains(playing, oid(2)) || contains(bench, oid(2)) {
		t.Error("backup player must not be part of the allocation")
	}
	if len(playing) != 1 {
		t.Errorf("playing: got %d, want 1", len(playing))
	}
}
