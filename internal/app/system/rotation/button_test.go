package rotation

import (
	"testing"
	"time"

	"github.com/rjinka/mytennisteam/internal/domain/models"
)

func TestButtonStateFor(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-24 * time.Hour)  // within a weekly interval
	stale := now.Add(-8 * 24 * time.Hour) // past a weekly interval

	tests := []struct {
		name     string
		schedule models.Schedule
		isAdmin  bool
		want     ButtonState
	}{
		{
			name:     "planning",
			schedule: models.Schedule{Status: models.StatusPlanning},
			isAdmin:  true,
			want:     ButtonState{Visible: false, Disabled: true, Text: "Finish Planning"},
		},
		{
			name:     "completed",
			schedule: models.Schedule{Status: models.StatusCompleted, IsRotationGenerated: true},
			isAdmin:  true,
			want:     ButtonState{Visible: true, Disabled: true, Text: "Schedule Finished"},
		},
		{
			name:     "active without lineup",
			schedule: models.Schedule{Status: models.StatusActive},
			isAdmin:  true,
			want:     ButtonState{Visible: true, Disabled: false, Text: "Generate Rotation"},
		},
		{
			name: "active generated and not yet due",
			schedule: models.Schedule{
				Status:                    models.StatusActive,
				IsRotationGenerated:       true,
				Recurring:                 true,
				Frequency:                 models.FrequencyWeek,
				LastRotationGeneratedDate: &recent,
			},
			isAdmin: true,
			want:    ButtonState{Visible: true, Disabled: true, Text: "Rotation Generated"},
		},
		{
			name: "active generated and due",
			schedule: models.Schedule{
				Status:                    models.StatusActive,
				IsRotationGenerated:       true,
				Recurring:                 true,
				Frequency:                 models.FrequencyWeek,
				LastRotationGeneratedDate: &stale,
			},
			isAdmin: true,
			want:    ButtonState{Visible: true, Disabled: false, Text: "Generate Rotation"},
		},
		{
			name: "non-recurring generated never becomes due",
			schedule: models.Schedule{
				Status:                    models.StatusActive,
				IsRotationGenerated:       true,
				Recurring:                 false,
				LastRotationGeneratedDate: &stale,
			},
			isAdmin: true,
			want:    ButtonState{Visible: true, Disabled: true, Text: "Rotation Generated"},
		},
		{
			name:     "non-admin sees nothing",
			schedule: models.Schedule{Status: models.StatusActive},
			isAdmin:  false,
			want:     ButtonState{Visible: false, Disabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ButtonStateFor(&tt.schedule, tt.isAdmin, now)
			if got != tt.want {
				t.Errorf("ButtonStateFor: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDueForRegeneration(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	s := models.Schedule{Status: models.StatusActive}
	if !DueForRegeneration(&s, now) {
		t.Error("never-generated schedule must be due")
	}

	s = models.Schedule{
		Status:                    models.StatusActive,
		IsRotationGenerated:       true,
		Recurring:                 true,
		Frequency:                 models.FrequencyWeek,
		LastRotationGeneratedDate: &weekAgo,
	}
	if !DueForRegeneration(&s, now) {
		t.Error("interval elapsed exactly: must be due")
	}

	s.Frequency = models.FrequencyBiWeek
	if DueForRegeneration(&s, now) {
		t.Error("bi-weekly schedule one week in: must not be due")
	}
}
