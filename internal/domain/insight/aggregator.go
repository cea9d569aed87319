package insight

import (
	"fmt"
	"sort"
)

// Timestamp layout positions inside "YYYY-MM-DD HH:MM:SS".
const (
	dateLen      = len("2006-01-02")
	hourStart    = len("2006-01-02 ")
	hourEnd      = len("2006-01-02 15")
	timestampLen = len("2006-01-02 15:04:05")
)

// AggregateWindow reduces a student's attempt window into the three
// derived views in a single pass: per-subject score series, per-date
// attempt counts, and the topHours most active hour buckets.
//
// Aggregation is order-independent except that score series keep the
// input attempt order and hour ties keep first-seen order. An empty
// input yields empty views.
func AggregateWindow(attempts []AttemptRecord, topHours int) (WindowedMetrics, error) {
	metrics := WindowedMetrics{
		SubjectScores: make(map[string][]float64),
		DayAttempts:   make([]DayAttempts, 0),
		ActiveHours:   make([]HourAttempts, 0),
	}

	dayCounts := make(map[string]int)
	dayOrder := make([]string, 0)
	hourCounts := make(map[string]int)
	hourOrder := make([]string, 0)

	for _, attempt := range attempts {
		if len(attempt.Timestamp) < timestampLen {
			return WindowedMetrics{}, fmt.Errorf("%w: timestamp %q", ErrMalformedAttempt, attempt.Timestamp)
		}

		// Subject bucket exists from first sight even when the score
		// itself is unusable, so downstream key sets stay aligned.
		if _, seen := metrics.SubjectScores[attempt.Subject]; !seen {
			metrics.SubjectScores[attempt.Subject] = make([]float64, 0, 4)
		}
		if attempt.Score != nil {
			metrics.SubjectScores[attempt.Subject] = append(metrics.SubjectScores[attempt.Subject], *attempt.Score)
		}

		date := attempt.Timestamp[:dateLen]
		if _, seen := dayCounts[date]; !seen {
			dayOrder = append(dayOrder, date)
		}
		dayCounts[date]++

		hour := attempt.Timestamp[hourStart:hourEnd]
		if _, seen := hourCounts[hour]; !seen {
			hourOrder = append(hourOrder, hour)
		}
		hourCounts[hour]++
	}

	for _, date := range dayOrder {
		metrics.DayAttempts = append(metrics.DayAttempts, DayAttempts{Date: date, Attempts: dayCounts[date]})
	}

	// Rank hours descending by count. The sort is stable over the
	// first-seen order, so equal counts keep their encounter order.
	ranked := make([]HourAttempts, 0, len(hourOrder))
	for _, hour := range hourOrder {
		ranked = append(ranked, HourAttempts{Hour: hour, Attempts: hourCounts[hour]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Attempts > ranked[j].Attempts
	})
	if topHours > len(ranked) {
		topHours = len(ranked)
	}
	if topHours < 0 {
		topHours = 0
	}
	metrics.ActiveHours = ranked[:topHours]

	return metrics, nil
}

// TotalAttempts sums attempt counts over all dates in the window.
func (w WindowedMetrics) TotalAttempts() int {
	total := 0
	for _, day := range w.DayAttempts {
		total += day.Attempts
	}
	return total
}
