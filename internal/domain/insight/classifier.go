package insight

// The three classifiers below are ordered rule tables evaluated
// first-match-wins. Each table ends with a catch-all rule, so every
// input maps to exactly one label and there is no "unknown" state.

// Mastery thresholds.
const (
	advancedAccuracyMin     = 85.0
	advancedAverageScoreMin = 1.5
	intermediateAccuracyMin = 60.0
)

type masteryRule struct {
	label MasteryLevel
	match func(m BaseMetrics) bool
}

var masteryRules = []masteryRule{
	{MasteryAdvanced, func(m BaseMetrics) bool {
		return m.OverallAccuracy >= advancedAccuracyMin && m.AverageScore >= advancedAverageScoreMin
	}},
	{MasteryIntermediate, func(m BaseMetrics) bool {
		return m.OverallAccuracy >= intermediateAccuracyMin
	}},
	{MasteryBeginner, func(BaseMetrics) bool { return true }},
}

// ClassifyMastery maps base metrics to a mastery tier.
func ClassifyMastery(m BaseMetrics) MasteryLevel {
	for _, rule := range masteryRules {
		if rule.match(m) {
			return rule.label
		}
	}
	return MasteryBeginner // unreachable, table has a catch-all
}

// Challenge preference threshold: accuracy at a difficulty needed to
// consider that difficulty "handled".
const challengeAccuracyMin = 70.0

type challengeRule struct {
	label ChallengePreference
	match func(m BaseMetrics) bool
}

var challengeRules = []challengeRule{
	{EnjoysChallenge, func(m BaseMetrics) bool {
		return m.DifficultyAccuracyOrZero("hard") >= challengeAccuracyMin
	}},
	{Balanced, func(m BaseMetrics) bool {
		return m.DifficultyAccuracyOrZero("medium") >= challengeAccuracyMin
	}},
	{PrefersEasy, func(BaseMetrics) bool { return true }},
}

// ClassifyChallengePreference maps difficulty-wise accuracy to a
// challenge preference. Missing difficulty labels read as 0.
func ClassifyChallengePreference(m BaseMetrics) ChallengePreference {
	for _, rule := range challengeRules {
		if rule.match(m) {
			return rule.label
		}
	}
	return PrefersEasy
}

// Engagement thresholds on average attempts per active day.
const (
	engagementHighMin     = 5.0
	engagementModerateMin = 2.0
)

type engagementRule struct {
	label EngagementLevel
	match func(avgPerDay float64) bool
}

var engagementRules = []engagementRule{
	{EngagementHigh, func(avg float64) bool { return avg >= engagementHighMin }},
	{EngagementModerate, func(avg float64) bool { return avg >= engagementModerateMin }},
	{EngagementLow, func(float64) bool { return true }},
}

// ClassifyEngagement maps the day-wise attempt counts to an engagement
// level. The denominator is the number of distinct dates actually
// present in the window. A student with no attempts in the window is
// still in the active set (activity outside the analytics window but
// inside the last-active window), so an empty window classifies as low
// rather than dividing by zero.
func ClassifyEngagement(days []DayAttempts) EngagementLevel {
	if len(days) == 0 {
		return EngagementLow
	}

	total := 0
	for _, day := range days {
		total += day.Attempts
	}
	avgPerDay := float64(total) / float64(len(days))

	for _, rule := range engagementRules {
		if rule.match(avgPerDay) {
			return rule.label
		}
	}
	return EngagementLow
}
