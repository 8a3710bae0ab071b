package ordering

import (
	"testing"

	"github.com/example/fastbite/pkg/models"
)

func TestValidStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{models.StatusNotDelivered, true},
		{models.StatusBeingDelivered, true},
		{models.StatusDelivered, true},
		{"Cancelled", false},
		{"notdelivered", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := ValidStatus(tt.status); got != tt.want {
				t.Errorf("ValidStatus(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"forward one step", models.StatusNotDelivered, models.StatusBeingDelivered, true},
		{"forward final step", models.StatusBeingDelivered, models.StatusDelivered, true},
		{"skip intermediate", models.StatusNotDelivered, models.StatusDelivered, true},
		{"backward", models.StatusDelivered, models.StatusBeingDelivered, false},
		{"backward to start", models.StatusBeingDelivered, models.StatusNotDelivered, false},
		{"same status", models.StatusDelivered, models.StatusDelivered, false},
		{"unknown source", "Cancelled", models.StatusDelivered, false},
		{"unknown target", models.StatusNotDelivered, "Cancelled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
