package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurosattva/insights-worker/internal/domain/insight"
)

// ─────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ─────────────────────────────────────────────────────────────────────────────

type fakeUserSource struct {
	ids []insight.UserID
	err error
}

func (f *fakeUserSource) ActiveUserIDs(ctx context.Context, since time.Time) ([]insight.UserID, error) {
	return f.ids, f.err
}

type fakeMetricsStore struct {
	metrics map[insight.UserID]*insight.BaseMetrics
	errs    map[insight.UserID]error
}

func (f *fakeMetricsStore) GetBaseMetrics(ctx context.Context, userID insight.UserID) (*insight.BaseMetrics, error) {
	if err, ok := f.errs[userID]; ok {
		return nil, err
	}
	m, ok := f.metrics[userID]
	if !ok {
		return nil, insight.ErrMetricsNotFound
	}
	return m, nil
}

type fakeAttemptStore struct {
	attempts map[insight.UserID][]insight.AttemptRecord
	errs     map[insight.UserID]error
}

func (f *fakeAttemptStore) AttemptsSince(ctx context.Context, userID insight.UserID, startUTC time.Time) ([]insight.AttemptRecord, error) {
	if err, ok := f.errs[userID]; ok {
		return nil, err
	}
	return f.attempts[userID], nil
}

type fakeProfileSink struct {
	profiles map[insight.UserID]insight.ProfileRecord
	errs     map[insight.UserID]error
}

func (f *fakeProfileSink) UpsertProfile(ctx context.Context, userID insight.UserID, profile insight.ProfileRecord) error {
	if err, ok := f.errs[userID]; ok {
		return err
	}
	if f.profiles == nil {
		f.profiles = make(map[insight.UserID]insight.ProfileRecord)
	}
	f.profiles[userID] = profile
	return nil
}

func score(v float64) *float64 {
	return &v
}

func baseMetrics() *insight.BaseMetrics {
	return &insight.BaseMetrics{
		OverallAccuracy:    90,
		AverageScore:       1.6,
		DifficultyAccuracy: map[string]float64{"hard": 75},
	}
}

func newJob(users *fakeUserSource, metrics *fakeMetricsStore, attempts *fakeAttemptStore, sink *fakeProfileSink) *ProfileStudentsJob {
	return NewProfileStudentsJob(users, metrics, attempts, sink, nil, DefaultProfileStudentsConfig())
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestProfileStudentsJob_WritesProfiles(t *testing.T) {
	users := &fakeUserSource{ids: []insight.UserID{"u1"}}
	metrics := &fakeMetricsStore{metrics: map[insight.UserID]*insight.BaseMetrics{"u1": baseMetrics()}}
	attempts := &fakeAttemptStore{attempts: map[insight.UserID][]insight.AttemptRecord{
		"u1": {
			{Subject: "Mathematics", Score: score(1), Timestamp: "2025-07-29 10:15:00"},
			{Subject: "Mathematics", Score: score(1), Timestamp: "2025-07-29 11:00:00"},
		},
	}}
	sink := &fakeProfileSink{}

	job := newJob(users, metrics, attempts, sink)
	require.NoError(t, job.Run(context.Background()))

	profile, ok := sink.profiles["u1"]
	require.True(t, ok)
	assert.Equal(t, insight.MasteryAdvanced, profile.KnowledgeMastery)
	assert.Equal(t, insight.EnjoysChallenge, profile.ChallengePreference)
	assert.Contains(t, profile.ConceptualStability, "Mathematics")
	assert.Contains(t, profile.AdaptationStrategy, "Mathematics")

	stats := job.LastRunStats()
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 1, stats.ProfiledCount)
	assert.NotEmpty(t, stats.RunID)
}

func TestProfileStudentsJob_OneFailureDoesNotAbortBatch(t *testing.T) {
	users := &fakeUserSource{ids: []insight.UserID{"u1", "u2", "u3"}}
	metrics := &fakeMetricsStore{
		metrics: map[insight.UserID]*insight.BaseMetrics{
			"u1": baseMetrics(),
			"u2": baseMetrics(),
			"u3": baseMetrics(),
		},
	}
	attempts := &fakeAttemptStore{
		attempts: map[insight.UserID][]insight.AttemptRecord{
			"u1": {{Subject: "Science", Score: score(1), Timestamp: "2025-07-29 10:00:00"}},
			"u3": {{Subject: "Science", Score: score(2), Timestamp: "2025-07-30 09:00:00"}},
		},
		errs: map[insight.UserID]error{
			"u2": errors.New("attempt query timed out"),
		},
	}
	sink := &fakeProfileSink{}

	job := newJob(users, metrics, attempts, sink)
	require.NoError(t, job.Run(context.Background()))

	assert.Contains(t, sink.profiles, insight.UserID("u1"))
	assert.NotContains(t, sink.profiles, insight.UserID("u2"))
	assert.Contains(t, sink.profiles, insight.UserID("u3"))

	stats := job.LastRunStats()
	assert.Equal(t, 2, stats.ProfiledCount)
	assert.Equal(t, 1, stats.FailedCount)
	require.Len(t, stats.Errors, 1)
	assert.Equal(t, insight.UserID("u2"), stats.Errors[0].UserID)
}

func TestProfileStudentsJob_MissingMetricsIsSkipNotFailure(t *testing.T) {
	users := &fakeUserSource{ids: []insight.UserID{"u1", "u2"}}
	metrics := &fakeMetricsStore{metrics: map[insight.UserID]*insight.BaseMetrics{"u2": baseMetrics()}}
	attempts := &fakeAttemptStore{}
	sink := &fakeProfileSink{}

	job := newJob(users, metrics, attempts, sink)
	require.NoError(t, job.Run(context.Background()))

	stats := job.LastRunStats()
	assert.Equal(t, 1, stats.SkippedCount)
	assert.Equal(t, 1, stats.ProfiledCount)
	assert.Equal(t, 0, stats.FailedCount)
	assert.NotContains(t, sink.profiles, insight.UserID("u1"))
}

func TestProfileStudentsJob_SinkErrorIsIsolatedPerUser(t *testing.T) {
	users := &fakeUserSource{ids: []insight.UserID{"u1", "u2"}}
	metrics := &fakeMetricsStore{metrics: map[insight.UserID]*insight.BaseMetrics{
		"u1": baseMetrics(),
		"u2": baseMetrics(),
	}}
	attempts := &fakeAttemptStore{}
	sink := &fakeProfileSink{errs: map[insight.UserID]error{"u1": errors.New("write rejected")}}

	job := newJob(users, metrics, attempts, sink)
	require.NoError(t, job.Run(context.Background()))

	stats := job.LastRunStats()
	assert.Equal(t, 1, stats.FailedCount)
	assert.Equal(t, 1, stats.ProfiledCount)
	assert.Contains(t, sink.profiles, insight.UserID("u2"))
}

func TestProfileStudentsJob_NoActiveUsersWritesNothing(t *testing.T) {
	users := &fakeUserSource{}
	sink := &fakeProfileSink{}

	job := newJob(users, &fakeMetricsStore{}, &fakeAttemptStore{}, sink)
	require.NoError(t, job.Run(context.Background()))

	assert.Empty(t, sink.profiles)
	assert.Equal(t, 0, job.LastRunStats().TotalUsers)
}

func TestProfileStudentsJob_ActiveUserFetchFailure(t *testing.T) {
	users := &fakeUserSource{err: errors.New("users query failed")}
	sink := &fakeProfileSink{}

	job := newJob(users, &fakeMetricsStore{}, &fakeAttemptStore{}, sink)
	err := job.Run(context.Background())

	assert.Error(t, err)
	assert.Empty(t, sink.profiles)
}

func TestProfileStudentsJob_EmptyWindowStillProfiles(t *testing.T) {
	// A user can be in the active set with zero attempts inside the
	// analytics window (active recently, but outside the window).
	users := &fakeUserSource{ids: []insight.UserID{"u1"}}
	metrics := &fakeMetricsStore{metrics: map[insight.UserID]*insight.BaseMetrics{"u1": baseMetrics()}}
	attempts := &fakeAttemptStore{}
	sink := &fakeProfileSink{}

	job := newJob(users, metrics, attempts, sink)
	require.NoError(t, job.Run(context.Background()))

	profile := sink.profiles["u1"]
	assert.Equal(t, insight.EngagementLow, profile.LearningEngagement)
	assert.Empty(t, profile.ConceptualStability)
	assert.Empty(t, profile.AdaptationStrategy)
	assert.Empty(t, profile.PeakLearningHours)
}
