// internal/app/system/rotation/allocate.go

// Package rotation is the lineup engine: given a schedule's capacity,
// court layout and the players' declared availability and history, it
// decides who plays, who sits on the bench, and how the playing set is
// seated across courts and sides. Everything here is a pure function
// over explicit inputs; loading and persisting schedules is the
// caller's job.
package rotation

import (
	"sort"

	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EligiblePlayer is one candidate for allocation. Backup players are not
// eligible and must not be passed in.
type EligiblePlayer struct {
	ID   primitive.ObjectID
	Type models.AvailabilityType
}

// Allocate partitions the eligible players into an ordered playing set
// and an ordered bench for the upcoming occurrence.
//
// Permanent players always play. The remaining capacity is filled from
// Rotation players ranked by fairness: fewest played occurrences first,
// then players who sat out the previous occurrence, then by id so equal
// candidates resolve deterministically. The bench is the unselected
// remainder in inverse ranking order, so the most-rested player is at
// the front of the queue next time.
//
// Fewer eligible players than capacity is fine: everyone plays and the
// bench is empty. More Permanent players than capacity is a
// configuration error (ErrInsufficientCapacity).
func Allocate(maxPlayers int, eligible []EligiblePlayer, histories map[primitive.ObjectID]History) (playing, bench []primitive.ObjectID, err error) {
	var permanent, rot []EligiblePlayer
	for _, p := range eligible {
		switch p.Type {
		case models.AvailabilityPermanent:
			permanent = append(permanent, p)
		case models.AvailabilityRotation:
			rot = append(rot, p)
		}
	}

	if len(permanent) > maxPlayers {
		return nil, nil, ErrInsufficientCapacity
	}

	sort.Slice(permanent, func(i, j int) bool {
		return permanent[i].ID.Hex() < permanent[j].ID.Hex()
	})

	rankLess := func(a, b EligiblePlayer) bool {
		ha, hb := histories[a.ID], histories[b.ID]
		if pa, pb := ha.PlayedCount(), hb.PlayedCount(); pa != pb {
			return pa < pb
		}
		// benched last time beats played last time
		if la, lb := ha.PlayedLastTime(), hb.PlayedLastTime(); la != lb {
			return !la
		}
		return a.ID.Hex() < b.ID.Hex()
	}
	sort.SliceStable(rot, func(i, j int) bool { return rankLess(rot[i], rot[j]) })

	playing = make([]primitive.ObjectID, 0, maxPlayers)
	for _, p := range permanent {
		playing = append(playing, p.ID)
	}

	cut := maxPlayers - len(playing)
	if cut > len(rot) {
		cut = len(rot)
	}
	for _, p := range rot[:cut] {
		playing = append(playing, p.ID)
	}

	// Bench in inverse ranking order: most-played / most-recently-played
	// first, so future selection is symmetric.
	rest := rot[cut:]
	bench = make([]primitive.ObjectID, 0, len(rest))
	for i := len(rest) - 1; i >= 0; i-- {
		bench = append(bench, rest[i].ID)
	}

	return playing, bench, nil
}
