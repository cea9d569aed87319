package insight

// Stability scoring constants.
const (
	// stabilityVarianceScale normalizes score variance into [0,1].
	// It assumes the typical quiz score scale; it is a tunable
	// constant, not derived from data.
	stabilityVarianceScale = 2.0

	// DefaultStability is returned when a score series carries fewer
	// than two usable values: not enough evidence to call the subject
	// either stable or unstable.
	DefaultStability = 0.5
)

// StabilityScore computes the conceptual-stability score for one
// subject's score series. The result is always in [0,1]: 1 means a
// perfectly consistent series, 0 means variance at or beyond the
// normalization scale.
func StabilityScore(scores []float64) float64 {
	if len(scores) < 2 {
		return DefaultStability
	}

	mean := 0.0
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))

	// Population variance: divisor is the count, not count-1.
	variance := 0.0
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	variance /= float64(len(scores))

	normalized := variance / stabilityVarianceScale
	if normalized > 1 {
		normalized = 1
	}
	return 1 - normalized
}

// ScoreStability computes the stability map over all subjects in the
// window. Every subject key present in the window appears in the
// result, including subjects whose series was too short to score.
func ScoreStability(subjectScores map[string][]float64) StabilityMap {
	stability := make(StabilityMap, len(subjectScores))
	for subject, scores := range subjectScores {
		stability[subject] = StabilityScore(scores)
	}
	return stability
}
