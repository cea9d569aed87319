// Package jobs contains implementations of scheduled jobs for the
// insights worker.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/neurosattva/insights-worker/internal/domain/insight"
	"github.com/neurosattva/insights-worker/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE STUDENTS JOB
// ══════════════════════════════════════════════════════════════════════════════

// ProfileStudentsJob computes the intellectual profile for every
// recently active student and merge-upserts it into the insights
// store. One student's failure never aborts the batch: the error is
// logged with the student identifier and processing continues.
type ProfileStudentsJob struct {
	// Dependencies
	userSource   insight.ActiveUserSource
	metricsStore insight.MetricsStore
	attemptStore insight.AttemptStore
	profileSink  insight.ProfileSink
	logger       *slog.Logger

	// Configuration
	config ProfileStudentsConfig

	// State (for inspection)
	lastRunStats atomic.Value // *ProfileStats
}

// ProfileStudentsConfig contains configuration for the profile job.
type ProfileStudentsConfig struct {
	// LastActiveHours selects students whose last quiz submission is
	// within this many hours.
	LastActiveHours int

	// AnalyticsDays is the trailing attempt window in days.
	AnalyticsDays int

	// TopActiveHours is how many peak hour buckets to report.
	TopActiveHours int

	// Timeout is the maximum duration for the entire batch.
	Timeout time.Duration
}

// DefaultProfileStudentsConfig returns sensible defaults matching the
// worker's environment defaults.
func DefaultProfileStudentsConfig() ProfileStudentsConfig {
	return ProfileStudentsConfig{
		LastActiveHours: 24,
		AnalyticsDays:   7,
		TopActiveHours:  2,
		Timeout:         10 * time.Minute,
	}
}

// ProfileStats contains statistics from a profile run.
type ProfileStats struct {
	RunID         string
	StartedAt     time.Time
	CompletedAt   time.Time
	Duration      time.Duration
	TotalUsers    int
	ProfiledCount int
	SkippedCount  int
	FailedCount   int
	Errors        []ProfileError
}

// ProfileError records one student's failure within a run.
type ProfileError struct {
	UserID     insight.UserID
	Error      error
	OccurredAt time.Time
}

// NewProfileStudentsJob creates a new profile job.
func NewProfileStudentsJob(
	userSource insight.ActiveUserSource,
	metricsStore insight.MetricsStore,
	attemptStore insight.AttemptStore,
	profileSink insight.ProfileSink,
	logger *slog.Logger,
	config ProfileStudentsConfig,
) *ProfileStudentsJob {
	if logger == nil {
		logger = slog.Default()
	}
	if config.LastActiveHours <= 0 {
		config.LastActiveHours = 24
	}
	if config.AnalyticsDays <= 0 {
		config.AnalyticsDays = 7
	}
	if config.TopActiveHours <= 0 {
		config.TopActiveHours = 2
	}

	return &ProfileStudentsJob{
		userSource:   userSource,
		metricsStore: metricsStore,
		attemptStore: attemptStore,
		profileSink:  profileSink,
		logger:       logger,
		config:       config,
	}
}

// Name returns the job name.
func (j *ProfileStudentsJob) Name() string {
	return "profile_students"
}

// Description returns a human-readable description.
func (j *ProfileStudentsJob) Description() string {
	return "Computes intellectual profiles for recently active students"
}

// Run executes the profile batch.
func (j *ProfileStudentsJob) Run(ctx context.Context) error {
	startedAt := time.Now()
	stats := &ProfileStats{
		RunID:     uuid.NewString(),
		StartedAt: startedAt,
		Errors:    make([]ProfileError, 0),
	}
	defer func() {
		stats.CompletedAt = time.Now()
		stats.Duration = stats.CompletedAt.Sub(startedAt)
		j.lastRunStats.Store(stats)
	}()

	log := j.logger.With("run_id", stats.RunID)
	log.Info("starting profile_students job",
		"last_active_hours", j.config.LastActiveHours,
		"analytics_days", j.config.AnalyticsDays,
	)

	if j.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.config.Timeout)
		defer cancel()
	}

	cutoff := timeutil.LastActiveCutoff(time.Now(), j.config.LastActiveHours)
	userIDs, err := j.userSource.ActiveUserIDs(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	stats.TotalUsers = len(userIDs)
	if stats.TotalUsers == 0 {
		log.Info("no active users in window, nothing to do")
		return nil
	}
	log.Info("found active users", "count", stats.TotalUsers)

	windowStart := timeutil.TrailingWindowStart(time.Now(), j.config.AnalyticsDays)

	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := j.profileUser(ctx, userID, windowStart)
		switch {
		case err == nil:
			stats.ProfiledCount++
		case errors.Is(err, insight.ErrMetricsNotFound):
			stats.SkippedCount++
			log.Warn("skipping user without base metrics", "user_id", userID)
		default:
			stats.FailedCount++
			stats.Errors = append(stats.Errors, ProfileError{
				UserID:     userID,
				Error:      err,
				OccurredAt: time.Now(),
			})
			log.Error("failed to profile user",
				"user_id", userID,
				"error", err,
			)
		}
	}

	log.Info("profile_students job completed",
		"duration", time.Since(startedAt).String(),
		"total", stats.TotalUsers,
		"profiled", stats.ProfiledCount,
		"skipped", stats.SkippedCount,
		"failed", stats.FailedCount,
	)

	return nil
}

// profileUser runs the full pipeline for a single student:
// fetch base metrics and windowed attempts, aggregate, classify, plan,
// and merge-upsert the resulting profile document.
func (j *ProfileStudentsJob) profileUser(ctx context.Context, userID insight.UserID, windowStart time.Time) error {
	metrics, err := j.metricsStore.GetBaseMetrics(ctx, userID)
	if err != nil {
		return err
	}

	attempts, err := j.attemptStore.AttemptsSince(ctx, userID, windowStart)
	if err != nil {
		return fmt.Errorf("failed to fetch attempts: %w", err)
	}

	window, err := insight.AggregateWindow(attempts, j.config.TopActiveHours)
	if err != nil {
		return err
	}

	profile := insight.BuildProfile(*metrics, window)

	if err := j.profileSink.UpsertProfile(ctx, userID, profile); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// LastRunStats returns statistics from the last run, or nil if the job
// has not run yet.
func (j *ProfileStudentsJob) LastRunStats() *ProfileStats {
	stats := j.lastRunStats.Load()
	if stats == nil {
		return nil
	}
	return stats.(*ProfileStats)
}
