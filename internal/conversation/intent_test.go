package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPlanningIntent(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"my essay is due Friday", true},
		{"Deadline is next week", true},
		{"big PROJECT coming", true},
		{"two assignments left", true},
		{"exam!", true},
		{"open spotify", false},
		{"farms produce food", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasPlanningIntent(tt.in), "input %q", tt.in)
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"5", 5, true},
		{"2.5 hours", 2.5, true},
		{"  7 or so", 7, true},
		{"about 5", 0, false},
		{"0", 0, false},
		{"-1", 0, false},
		{"", 0, false},
		{"five", 0, false},
		{"0.001", 0, false},
		{"153722867.28", 0, false},
		{"1e9", 0, false},
		{"8784", 8784, true},
	}
	for _, tt := range tests {
		got, ok := ParseHours(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
