// internal/app/system/rotation/errors.go
package rotation

import "errors"

// Engine failures. Handlers map these onto HTTP statuses; the engine
// itself never writes anything, so a failed operation leaves the
// schedule untouched.
var (
	// ErrInsufficientCapacity: more Permanent players than maxPlayersCount.
	// A configuration error an admin must fix; never silently truncated.
	ErrInsufficientCapacity = errors.New("permanent players exceed the schedule's max player count")

	// ErrCourtCapacityExceeded: the court layout cannot seat the playing set.
	ErrCourtCapacityExceeded = errors.New("court layout cannot seat the playing lineup")

	// ErrInvalidSwapParticipants: the swap pair is not in the expected lists.
	ErrInvalidSwapParticipants = errors.New("swap players are not in the expected lineup positions")

	// ErrPlayerNotEligible: the incoming player lacks Backup availability
	// and is not already part of the lineup.
	ErrPlayerNotEligible = errors.New("player is not eligible to enter this lineup")

	// ErrShuffleNotAllowed: allowShuffle is off or no lineup exists yet.
	ErrShuffleNotAllowed = errors.New("shuffle is not allowed for this schedule")
)
