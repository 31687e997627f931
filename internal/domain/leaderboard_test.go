package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlacement_Matches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		placement Placement
		guess     string
		want      bool
	}{
		{PlacementEnd, "station", true},
		{PlacementEnd, "ionic", false},
		{PlacementStart, "ionic", true},
		{PlacementStart, "station", false},
		{PlacementMiddle, "lionize", true},
		{PlacementMiddle, "ionic", false},
		{PlacementMiddle, "station", false},
		{PlacementBookend, "ionic", false},
		{PlacementBookend, "ionion", true},
		{Placement(0), "station", false},
		{Placement(9), "station", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.placement.Matches(tt.guess, "ion"), "%d %q", tt.placement, tt.guess)
	}
}

func TestPlacement_EmptyLetters(t *testing.T) {
	t.Parallel()

	assert.False(t, PlacementStart.Matches("anything", ""))
}

func TestPlacement_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, PlacementEnd.Valid())
	assert.True(t, PlacementBookend.Valid())
	assert.False(t, Placement(0).Valid())
	assert.False(t, Placement(5).Valid())
}
