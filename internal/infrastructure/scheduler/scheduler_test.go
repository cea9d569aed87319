package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name string
	runs int
	err  error
}

func (j *stubJob) Name() string        { return j.name }
func (j *stubJob) Description() string { return "stub job" }

func (j *stubJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

func TestIntervalSchedule(t *testing.T) {
	s := NewIntervalSchedule(5 * time.Minute)
	now := time.Date(2025, 7, 29, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(5*time.Minute), s.Next(now))
	assert.Equal(t, "@every 5m0s", s.String())
}

func TestRegister_DuplicateName(t *testing.T) {
	sched := NewScheduler(Config{})
	job := &stubJob{name: "batch"}

	require.NoError(t, sched.Register(job, NewIntervalSchedule(time.Minute)))
	assert.ErrorIs(t, sched.Register(job, NewIntervalSchedule(time.Minute)), ErrJobAlreadyExists)
}

func TestRegister_NilArguments(t *testing.T) {
	sched := NewScheduler(Config{})

	assert.ErrorIs(t, sched.Register(nil, NewIntervalSchedule(time.Minute)), ErrNilJob)
	assert.ErrorIs(t, sched.Register(&stubJob{name: "batch"}, nil), ErrNilSchedule)
}

func TestRunJobNow(t *testing.T) {
	sched := NewScheduler(Config{})
	job := &stubJob{name: "batch"}
	require.NoError(t, sched.Register(job, NewIntervalSchedule(time.Hour)))

	result, err := sched.RunJobNow(context.Background(), "batch")
	require.NoError(t, err)

	assert.Equal(t, 1, job.runs)
	assert.True(t, result.Success)

	last, ok := sched.LastRun("batch")
	require.True(t, ok)
	assert.True(t, last.Success)
}

func TestRunJobNow_RecordsFailure(t *testing.T) {
	sched := NewScheduler(Config{})
	job := &stubJob{name: "batch", err: errors.New("boom")}
	require.NoError(t, sched.Register(job, NewIntervalSchedule(time.Hour)))

	result, err := sched.RunJobNow(context.Background(), "batch")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Error(t, result.Error)
}

func TestRunJobNow_UnknownJob(t *testing.T) {
	sched := NewScheduler(Config{})

	_, err := sched.RunJobNow(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestStartStop(t *testing.T) {
	sched := NewScheduler(Config{})
	require.NoError(t, sched.Register(&stubJob{name: "batch"}, NewIntervalSchedule(time.Hour)))

	require.NoError(t, sched.Start(context.Background()))
	assert.True(t, sched.IsRunning())
	assert.ErrorIs(t, sched.Start(context.Background()), ErrSchedulerAlreadyRunning)

	require.NoError(t, sched.Stop())
	assert.False(t, sched.IsRunning())
	assert.ErrorIs(t, sched.Stop(), ErrSchedulerNotRunning)
}
