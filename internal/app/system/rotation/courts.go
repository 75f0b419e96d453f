// internal/app/system/rotation/courts.go
package rotation

import (
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignCourts seats the playing set on the schedule's courts.
//
// Players are dealt sequentially into the courts in declared order,
// filling each court to its game type's capacity (Singles 2, Doubles 4)
// before moving on. On a doubles court sides alternate Left/Right by
// slot parity; singles slots carry no side. The result is a pure
// function of the playing order: re-running it on the same input yields
// the identical seating.
//
// Returns ErrCourtCapacityExceeded when the lineup does not fit; the
// caller must fix the configuration rather than rely on truncation.
func AssignCourts(playing []primitive.ObjectID, courts []models.ScheduleCourt) ([]models.CourtAssignment, error) {
	capacity := 0
	for _, c := range courts {
		capacity += c.GameType.Capacity()
	}
	if len(playing) > capacity {
		return nil, ErrCourtCapacityExceeded
	}

	out := make([]models.CourtAssignment, 0, len(courts))
	next := 0
	for _, c := range courts {
		ca := models.CourtAssignment{
			CourtID:     c.CourtID,
			GameType:    c.GameType,
			Assignments: []models.CourtSlot{},
		}
		for i := 0; i < c.GameType.Capacity() && next < len(playing); i++ {
			slot := models.CourtSlot{PlayerID: playing[next]}
			if c.GameType == models.GameTypeDoubles {
				if i%2 == 0 {
					slot.Side = models.SideLeft
				} else {
					slot.Side = models.SideRight
				}
			}
			ca.Assignments = append(ca.Assignments, slot)
			next++
		}
		out = append(out, ca)
	}
	return out, nil
}
