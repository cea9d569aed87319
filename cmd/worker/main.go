// Package main is the entrypoint for the student insights worker.
//
// The worker computes per-student intellectual profiles from quiz
// activity: it discovers recently active students, aggregates their
// trailing attempt window, classifies mastery, challenge preference
// and engagement, scores per-subject conceptual stability, and
// merge-upserts the resulting profile documents.
//
// By default the batch runs once and exits. With PROFILE_INTERVAL set,
// it keeps running on that interval until SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/neurosattva/insights-worker/config"
	"github.com/neurosattva/insights-worker/internal/infrastructure/persistence/postgres"
	"github.com/neurosattva/insights-worker/internal/infrastructure/persistence/redis"
	"github.com/neurosattva/insights-worker/internal/infrastructure/scheduler"
	"github.com/neurosattva/insights-worker/internal/infrastructure/scheduler/jobs"
	"github.com/neurosattva/insights-worker/pkg/timeutil"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Startup (configuration) errors are the only fatal ones; batch
	// errors are logged and the process still exits cleanly.
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────

	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting insights worker",
		"env", cfg.AppEnv,
		"timezone", cfg.Timezone,
		"last_active_hours", cfg.LastActiveHours,
		"analytics_days", cfg.AnalyticsDays,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. POSTGRES (users, quiz submissions)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	migrator := postgres.NewMigrator(dbConn, log)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database schema is up to date")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. REDIS (base metrics, insight documents)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to document store...")
	docStore, err := redis.NewDocStoreFromURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create document store: %w", err)
	}
	defer func() {
		log.Info("closing document store...")
		_ = docStore.Close()
	}()

	if err := docStore.Ping(ctx); err != nil {
		return fmt.Errorf("document store ping failed: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. STORES AND JOB
	// ─────────────────────────────────────────────────────────────────────────
	userRepo := postgres.NewUserRepository(dbConn)
	attemptRepo := postgres.NewAttemptRepository(dbConn, cfg.Timezone)
	metricsStore := redis.NewMetricsStore(docStore)
	profileSink := redis.NewProfileSink(docStore)

	job := jobs.NewProfileStudentsJob(
		userRepo,
		metricsStore,
		attemptRepo,
		profileSink,
		log,
		jobs.ProfileStudentsConfig{
			LastActiveHours: cfg.LastActiveHours,
			AnalyticsDays:   cfg.AnalyticsDays,
			TopActiveHours:  cfg.TopActiveHours,
			Timeout:         10 * time.Minute,
		},
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 6. RUN: SINGLE SHOT OR ON INTERVAL
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.ProfileInterval <= 0 {
		// Batch errors are logged, not propagated: the run completed
		// every user it could reach, so the process exits cleanly.
		if err := job.Run(ctx); err != nil {
			log.Error("profile batch failed", "error", err)
		}
		return nil
	}

	sched := scheduler.NewScheduler(scheduler.Config{
		Logger:   log,
		Timezone: timeutil.ISTZone,
	})
	if err := sched.Register(job, scheduler.NewIntervalSchedule(cfg.ProfileInterval)); err != nil {
		return fmt.Errorf("failed to register job: %w", err)
	}
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	// Run one batch immediately instead of waiting a full interval.
	if _, err := sched.RunJobNow(ctx, job.Name()); err != nil {
		log.Error("initial run failed", "error", err)
	}

	log.Info("insights worker is running", "interval", cfg.ProfileInterval.String())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Info("received shutdown signal", "signal", sig.String())

	stopped := make(chan struct{})
	go func() {
		_ = sched.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		log.Info("shutdown completed successfully")
	case <-time.After(cfg.ShutdownTimeout):
		log.Warn("shutdown timed out", "timeout", cfg.ShutdownTimeout.String())
	}

	return nil
}

// setupLogger configures structured logging: JSON in production for
// log aggregators, text otherwise.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if cfg.AppDebug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}
