// internal/app/system/rotation/button.go
package rotation

import (
	"time"

	"github.com/rjinka/mytennisteam/internal/domain/models"
)

// ButtonState is the UI-facing state of the rotation button. It is a
// projection computed fresh on every request, never stored.
type ButtonState struct {
	Visible  bool   `json:"visible"`
	Disabled bool   `json:"disabled"`
	Text     string `json:"text,omitempty"`
}

// Button texts shown by every client.
const (
	textFinishPlanning   = "Finish Planning"
	textScheduleFinished = "Schedule Finished"
	textGenerateRotation = "Generate Rotation"
	textRotationDone     = "Rotation Generated"
)

// ButtonStateFor derives the rotation button's state from the schedule's
// lifecycle, recurrence and last-generated date. Non-admin callers never
// see the button.
func ButtonStateFor(s *models.Schedule, isAdmin bool, now time.Time) ButtonState {
	if !isAdmin {
		return ButtonState{Visible: false, Disabled: true}
	}

	switch s.Status {
	case models.StatusPlanning:
		return ButtonState{Visible: false, Disabled: true, Text: textFinishPlanning}
	case models.StatusCompleted:
		return ButtonState{Visible: true, Disabled: true, Text: textScheduleFinished}
	}

	if !s.IsRotationGenerated {
		return ButtonState{Visible: true, Disabled: false, Text: textGenerateRotation}
	}
	if DueForRegeneration(s, now) {
		return ButtonState{Visible: true, Disabled: false, Text: textGenerateRotation}
	}
	return ButtonState{Visible: true, Disabled: true, Text: textRotationDone}
}

// DueForRegeneration reports whether a new rotation may be generated:
// either none has been generated yet, or the frequency interval has
// elapsed since the last generation.
func DueForRegeneration(s *models.Schedule, now time.Time) bool {
	if !s.IsRotationGenerated {
		return true
	}
	due, ok := s.NextDue()
	return ok && !now.Before(due)
}
