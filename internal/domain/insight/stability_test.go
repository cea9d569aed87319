package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStabilityScore(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"zero variance is maximally stable", []float64{10, 10, 10}, 1.0},
		{"variance 1 halves the score", []float64{0, 2}, 0.5},
		{"variance beyond scale clamps to zero", []float64{0, 10}, 0.0},
		{"empty series uses default", nil, DefaultStability},
		{"single value uses default", []float64{3}, DefaultStability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, StabilityScore(tt.scores), 1e-9)
		})
	}
}

func TestStabilityScore_AlwaysInUnitInterval(t *testing.T) {
	series := [][]float64{
		{0, 0.5, 1, 1.5, 2},
		{-5, 5},
		{100, 100, 100, 0},
		{0.1, 0.2},
	}

	for _, scores := range series {
		got := StabilityScore(scores)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestScoreStability_KeepsEverySubjectKey(t *testing.T) {
	stability := ScoreStability(map[string][]float64{
		"Mathematics": {1, 1, 1},
		"Science":     {2}, // too short, falls back to default
		"Geography":   {},  // only unusable scores in the window
	})

	assert.Len(t, stability, 3)
	assert.InDelta(t, 1.0, stability["Mathematics"], 1e-9)
	assert.Equal(t, DefaultStability, stability["Science"])
	assert.Equal(t, DefaultStability, stability["Geography"])
}
