// internal/app/system/rotation/shuffle.go
package rotation

import (
	"math/rand/v2"

	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shuffle re-randomizes the court and side placement of the current
// playing set without changing who is playing. The playing order is
// permuted with system randomness (never history-dependent) and the
// seating is re-derived from the new order.
//
// Only valid once a lineup exists and the schedule permits shuffling;
// otherwise ErrShuffleNotAllowed and the schedule is left untouched.
func Shuffle(s *models.Schedule) error {
	if !s.AllowShuffle || !s.IsRotationGenerated {
		return ErrShuffleNotAllowed
	}

	permuted := append([]primitive.ObjectID(nil), s.PlayingPlayersIDs...)
	rand.Shuffle(len(permuted), func(i, j int) {
		permuted[i], permuted[j] = permuted[j], permuted[i]
	})

	assignments, err := AssignCourts(permuted, s.Courts)
	if err != nil {
		return err
	}
	s.PlayingPlayersIDs = permuted
	s.CourtAssignments = assignments
	return nil
}
