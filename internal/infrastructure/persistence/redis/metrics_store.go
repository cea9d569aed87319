package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/neurosattva/insights-worker/internal/domain/insight"
)

// Base metrics document field names. These match the schema written by
// the metrics aggregation service that owns the documents.
const (
	fieldOverallAccuracy    = "overall_accuracy"
	fieldAverageScore       = "average_score"
	fieldDifficultyAccuracy = "difficulty_wise_accuracy"
)

// MetricsStore implements insight.MetricsStore on top of the document
// store. Documents are read-only snapshots for this worker.
type MetricsStore struct {
	store *DocStore
}

// NewMetricsStore creates a new MetricsStore.
func NewMetricsStore(store *DocStore) *MetricsStore {
	return &MetricsStore{store: store}
}

// GetBaseMetrics returns the base metrics snapshot for a user, or
// insight.ErrMetricsNotFound when no document exists.
func (m *MetricsStore) GetBaseMetrics(ctx context.Context, userID insight.UserID) (*insight.BaseMetrics, error) {
	doc, err := m.store.GetDocument(ctx, MetricsKey(userID.String()))
	if err != nil {
		if errors.Is(err, ErrDocNotFound) {
			return nil, fmt.Errorf("%w: %s", insight.ErrMetricsNotFound, userID)
		}
		return nil, err
	}

	metrics, err := baseMetricsFromDoc(doc)
	if err != nil {
		return nil, fmt.Errorf("docstore: invalid base metrics for user %s: %w", userID, err)
	}
	return metrics, nil
}

// baseMetricsFromDoc decodes the known base metrics fields, ignoring
// any extra fields the owning service may keep on the document.
func baseMetricsFromDoc(doc map[string]json.RawMessage) (*insight.BaseMetrics, error) {
	var metrics insight.BaseMetrics

	if raw, ok := doc[fieldOverallAccuracy]; ok {
		if err := json.Unmarshal(raw, &metrics.OverallAccuracy); err != nil {
			return nil, fmt.Errorf("%s: %w", fieldOverallAccuracy, err)
		}
	}
	if raw, ok := doc[fieldAverageScore]; ok {
		if err := json.Unmarshal(raw, &metrics.AverageScore); err != nil {
			return nil, fmt.Errorf("%s: %w", fieldAverageScore, err)
		}
	}
	if raw, ok := doc[fieldDifficultyAccuracy]; ok {
		if err := json.Unmarshal(raw, &metrics.DifficultyAccuracy); err != nil {
			return nil, fmt.Errorf("%s: %w", fieldDifficultyAccuracy, err)
		}
	}

	return &metrics, nil
}
