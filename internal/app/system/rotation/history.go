// internal/app/system/rotation/history.go
package rotation

import (
	"github.com/rjinka/mytennisteam/internal/domain/models"
)

// History is one player's appended outcomes for one schedule, in whatever
// order they were stored. Recency is defined by occurrenceNumber, not by
// slice position.
type History []models.StatEntry

// PlayedCount returns how many occurrences the player played.
func (h History) PlayedCount() int {
	n := 0
	for _, e := range h {
		if e.Status == models.OutcomePlayed {
			n++
		}
	}
	return n
}

// BenchedCount returns how many occurrences the player sat out.
func (h History) BenchedCount() int {
	n := 0
	for _, e := range h {
		if e.Status == models.OutcomeBenched {
			n++
		}
	}
	return n
}

// latest returns the entry with the highest occurrence number.
func (h History) latest() (models.StatEntry, bool) {
	if len(h) == 0 {
		return models.StatEntry{}, false
	}
	best := h[0]
	for _, e := range h[1:] {
		if e.OccurrenceNumber > best.OccurrenceNumber {
			best = e
		}
	}
	return best, true
}

// PlayedLastTime reports whether the player played in the most recent
// occurrence. False when there is no history.
func (h History) PlayedLastTime() bool {
	last, ok := h.latest()
	return ok && last.Status == models.OutcomePlayed
}

// LastPlayed returns the date of the most recent played entry, or "Never".
func (h History) LastPlayed() string {
	bestOcc := -1
	date := "Never"
	for _, e := range h {
		if e.Status == models.OutcomePlayed && e.OccurrenceNumber > bestOcc {
			bestOcc = e.OccurrenceNumber
			date = e.Date
		}
	}
	return date
}

// Derived is the projection of a history the clients display and the
// allocator ranks on.
type Derived struct {
	PlayedCount    int    `json:"playedCount"`
	BenchedCount   int    `json:"benchedCount"`
	PlayedLastTime bool   `json:"playedLastTime"`
	LastPlayed     string `json:"lastPlayed"`
	PlayPercentage int    `json:"playPercentage"`
}

// Derive computes the display/ranking stats for a history.
func Derive(h History) Derived {
	played := h.PlayedCount()
	benched := h.BenchedCount()
	total := played + benched
	pct := 0
	if total > 0 {
		// round half up, as the clients did
		pct = (played*100 + total/2) / total
	}
	return Derived{
		PlayedCount:    played,
		BenchedCount:   benched,
		PlayedLastTime: h.PlayedLastTime(),
		LastPlayed:     h.LastPlayed(),
		PlayPercentage: pct,
	}
}
