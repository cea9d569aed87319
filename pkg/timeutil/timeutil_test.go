package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateTime(t *testing.T) {
	// 2025-07-29 04:45:00 UTC is 10:15:00 IST.
	utc := time.Date(2025, 7, 29, 4, 45, 0, 0, time.UTC)
	assert.Equal(t, "2025-07-29 10:15:00", FormatDateTime(utc))
}

func TestBucketKeysCrossMidnight(t *testing.T) {
	// 19:00 UTC is 00:30 IST the next day.
	utc := time.Date(2025, 7, 29, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-07-30", DateKey(utc))
	assert.Equal(t, "00", HourKey(utc))
}

func TestTrailingWindowStart(t *testing.T) {
	now := time.Date(2025, 7, 30, 12, 0, 0, 0, time.UTC)
	start := TrailingWindowStart(now, 7)

	assert.Equal(t, time.Date(2025, 7, 23, 12, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.UTC, start.Location())
}

func TestLastActiveCutoff(t *testing.T) {
	now := time.Date(2025, 7, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 7, 29, 12, 0, 0, 0, time.UTC), LastActiveCutoff(now, 24))
}
