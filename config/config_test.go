package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/neurosattva")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.AppEnv)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.Equal(t, 24, cfg.LastActiveHours)
	assert.Equal(t, 7, cfg.AnalyticsDays)
	assert.Equal(t, 2, cfg.TopActiveHours)
	assert.Equal(t, time.Duration(0), cfg.ProfileInterval)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LAST_ACTIVE_HOURS", "48")
	t.Setenv("N_ANALYTICS_DAYS", "14")
	t.Setenv("N_MOST_ACTIVE_HOURS", "3")
	t.Setenv("PROFILE_INTERVAL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 48, cfg.LastActiveHours)
	assert.Equal(t, 14, cfg.AnalyticsDays)
	assert.Equal(t, 3, cfg.TopActiveHours)
	assert.Equal(t, time.Hour, cfg.ProfileInterval)
}

func TestLoad_MissingConnectionParamsIsFatal(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_RejectsNonPositiveWindow(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("N_ANALYTICS_DAYS", "0")

	_, err := Load()
	assert.Error(t, err)
}
