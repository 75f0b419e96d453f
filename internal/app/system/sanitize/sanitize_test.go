package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Morning Match", "Morning Match"},
		{"trims", "  Court 1  ", "Court 1"},
		{"strips tags", "<b>Team</b> Alpha", "Team Alpha"},
		{"strips script", `Team<script>alert("x")</script>`, "Team"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
