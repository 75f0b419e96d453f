// internal/app/system/rotation/swap.go
package rotation

import (
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Swap replaces playerOut with playerIn in the schedule's lineup,
// preserving positions so court and side placement carry over unchanged.
//
// Exactly one of the pair leaves its list and the other takes the
// vacated slot:
//   - out playing, in on bench: the two exchange positions across lists.
//   - out on bench, in playing: symmetric exchange.
//   - in is a Backup player from outside the lineup: in takes out's slot
//     and, when out was playing, out is appended to the bench.
//
// History is untouched; a swap is a pre-occurrence correction, not an
// outcome. Court assignments are recomputed from the updated playing
// order, which leaves every unaffected seat exactly where it was.
//
// isBackup reports whether a player outside the lineup has Backup
// availability for this schedule.
func Swap(s *models.Schedule, playerInID, playerOutID primitive.ObjectID, isBackup func(primitive.ObjectID) bool) error {
	if playerInID == playerOutID {
		return ErrInvalidSwapParticipants
	}

	outPlayingIdx := indexOf(s.PlayingPlayersIDs, playerOutID)
	outBenchIdx := indexOf(s.BenchPlayersIDs, playerOutID)
	inPlayingIdx := indexOf(s.PlayingPlayersIDs, playerInID)
	inBenchIdx := indexOf(s.BenchPlayersIDs, playerInID)

	switch {
	case outPlayingIdx >= 0:
		switch {
		case inBenchIdx >= 0:
			s.PlayingPlayersIDs[outPlayingIdx], s.BenchPlayersIDs[inBenchIdx] = playerInID, playerOutID
		case inPlayingIdx >= 0:
			return ErrInvalidSwapParticipants
		case isBackup != nil && isBackup(playerInID):
			s.PlayingPlayersIDs[outPlayingIdx] = playerInID
			s.BenchPlayersIDs = append(s.BenchPlayersIDs, playerOutID)
		default:
			return ErrPlayerNotEligible
		}

	case outBenchIdx >= 0:
		switch {
		case inPlayingIdx >= 0:
			s.BenchPlayersIDs[outBenchIdx], s.PlayingPlayersIDs[inPlayingIdx] = playerInID, playerOutID
		case inBenchIdx >= 0:
			return ErrInvalidSwapParticipants
		case isBackup != nil && isBackup(playerInID):
			// Backup substitutes into the bench queue; out leaves the lineup.
			s.BenchPlayersIDs[outBenchIdx] = playerInID
		default:
			return ErrPlayerNotEligible
		}

	default:
		return ErrInvalidSwapParticipants
	}

	assignments, err := AssignCourts(s.PlayingPlayersIDs, s.Courts)
	if err != nil {
		return err
	}
	s.CourtAssignments = assignments
	return nil
}

func indexOf(ids []primitive.ObjectID, id primitive.ObjectID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
