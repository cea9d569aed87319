// Package timeutil provides timezone utilities for the reporting
// timezone (IST, UTC+5:30) and trailing-window helpers for the
// analytics pipeline. All bucket keys (dates, hours) are rendered in
// the reporting zone; window boundaries are computed in UTC.
// No external dependencies - uses only standard library.
package timeutil

import "time"

// ISTZone is the Indian Standard Time zone (UTC+5:30, no DST).
// This is the fixed reporting zone of the quiz platform.
var ISTZone = time.FixedZone("Asia/Kolkata", 5*60*60+30*60)

// DateTimeLayout is the civil datetime layout used for attempt
// timestamps throughout the pipeline.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateLayout is the calendar-date layout used for day buckets.
const DateLayout = "2006-01-02"

// HourLayout is the hour-of-day layout used for hour buckets.
const HourLayout = "15"

// Now returns the current time in the reporting zone.
func Now() time.Time {
	return time.Now().In(ISTZone)
}

// ToReportingZone converts a time to the reporting zone.
func ToReportingZone(t time.Time) time.Time {
	return t.In(ISTZone)
}

// FormatDateTime renders a time as "YYYY-MM-DD HH:MM:SS" in the
// reporting zone.
func FormatDateTime(t time.Time) string {
	return t.In(ISTZone).Format(DateTimeLayout)
}

// TrailingWindowStart returns the UTC start of a trailing window of
// the given number of days, ending now.
func TrailingWindowStart(now time.Time, days int) time.Time {
	return now.UTC().Add(-time.Duration(days) * 24 * time.Hour)
}

// LastActiveCutoff returns the UTC cutoff for the last-active window
// of the given number of hours, ending now.
func LastActiveCutoff(now time.Time, hours int) time.Time {
	return now.UTC().Add(-time.Duration(hours) * time.Hour)
}

// DateKey returns the "YYYY-MM-DD" bucket key for a time in the
// reporting zone.
func DateKey(t time.Time) string {
	return t.In(ISTZone).Format(DateLayout)
}

// HourKey returns the "HH" bucket key for a time in the reporting zone.
func HourKey(t time.Time) string {
	return t.In(ISTZone).Format(HourLayout)
}
