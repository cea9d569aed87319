package redis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurosattva/insights-worker/internal/domain/insight"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "student_metrics:u-42", MetricsKey("u-42"))
	assert.Equal(t, "student_insights:u-42", InsightsKey("u-42"))
}

func TestBaseMetricsFromDoc(t *testing.T) {
	doc := map[string]json.RawMessage{
		"overall_accuracy":         json.RawMessage(`88.5`),
		"average_score":            json.RawMessage(`1.7`),
		"difficulty_wise_accuracy": json.RawMessage(`{"hard": 72, "medium": 80}`),
		"quizzes_taken_count":      json.RawMessage(`41`), // extra field, ignored
	}

	metrics, err := baseMetricsFromDoc(doc)
	require.NoError(t, err)

	assert.InDelta(t, 88.5, metrics.OverallAccuracy, 1e-9)
	assert.InDelta(t, 1.7, metrics.AverageScore, 1e-9)
	assert.InDelta(t, 72, metrics.DifficultyAccuracy["hard"], 1e-9)
	assert.InDelta(t, 80, metrics.DifficultyAccuracy["medium"], 1e-9)
}

func TestBaseMetricsFromDoc_InvalidField(t *testing.T) {
	doc := map[string]json.RawMessage{
		"overall_accuracy": json.RawMessage(`"not a number"`),
	}

	_, err := baseMetricsFromDoc(doc)
	assert.Error(t, err)
}

func TestProfileFields_CoversEverySection(t *testing.T) {
	profile := insight.ProfileRecord{
		KnowledgeMastery:    insight.MasteryIntermediate,
		ChallengePreference: insight.Balanced,
		ConceptualStability: insight.StabilityMap{"Science": 0.75},
		LearningEngagement:  insight.EngagementModerate,
		PeakLearningHours:   []insight.HourAttempts{{Hour: "10", Attempts: 3}},
		AdaptationStrategy:  map[string]insight.Strategy{"Science": insight.StrategyModerate},
	}

	fields := profileFields(profile)

	require.Len(t, fields, 6)
	assert.Equal(t, insight.MasteryIntermediate, fields["knowledge_mastery"])
	assert.Equal(t, insight.Balanced, fields["challenge_preference"])
	assert.Equal(t, insight.EngagementModerate, fields["learning_engagement"])

	// Every field must be JSON-encodable for the hash write.
	for name, value := range fields {
		_, err := json.Marshal(value)
		assert.NoError(t, err, "field %s", name)
	}
}
