package insight

// unstableSubjectMax is the stability below which a subject is taught
// with the most remedial strategy regardless of mastery tier.
const unstableSubjectMax = 0.5

// PlanAdaptation maps each subject to a teaching strategy from the
// student's mastery tier and that subject's stability. The result has
// exactly the same key set as the stability map.
//
// Rule order matters: low stability on a subject forces the slow-paced
// strategy even for an advanced student.
func PlanAdaptation(mastery MasteryLevel, stability StabilityMap) map[string]Strategy {
	plan := make(map[string]Strategy, len(stability))
	for subject, score := range stability {
		switch {
		case mastery == MasteryBeginner || score < unstableSubjectMax:
			plan[subject] = StrategySlowPaced
		case mastery == MasteryIntermediate:
			plan[subject] = StrategyModerate
		default:
			plan[subject] = StrategyFastPaced
		}
	}
	return plan
}

// BuildProfile assembles the full profile record from the base metrics
// snapshot and the derived window views.
func BuildProfile(base BaseMetrics, window WindowedMetrics) ProfileRecord {
	mastery := ClassifyMastery(base)
	stability := ScoreStability(window.SubjectScores)

	return ProfileRecord{
		KnowledgeMastery:    mastery,
		ChallengePreference: ClassifyChallengePreference(base),
		ConceptualStability: stability,
		LearningEngagement:  ClassifyEngagement(window.DayAttempts),
		PeakLearningHours:   window.ActiveHours,
		AdaptationStrategy:  PlanAdaptation(mastery, stability),
	}
}
