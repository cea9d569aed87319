// Package insight contains the domain model and pure computation for
// student intellectual profiles: window aggregation of quiz attempts,
// conceptual-stability scoring, threshold classification, and
// adaptation-strategy planning.
// This is a pure domain layer with zero external dependencies.
package insight

import "errors"

// Domain errors for insight package.
var (
	ErrMetricsNotFound  = errors.New("insight: base metrics not found")
	ErrMalformedAttempt = errors.New("insight: malformed attempt record")
)

// UserID represents a unique identifier for a student.
// IDs are opaque strings owned by the user store.
type UserID string

// IsValid checks if the user ID is valid.
func (u UserID) IsValid() bool {
	return u != ""
}

// String returns the string representation of UserID.
func (u UserID) String() string {
	return string(u)
}

// BaseMetrics is the per-student aggregate snapshot maintained by the
// metrics store. It is read-only for this worker; a fresh copy is
// fetched on every run.
type BaseMetrics struct {
	// OverallAccuracy is the lifetime answer accuracy in percent [0,100].
	OverallAccuracy float64 `json:"overall_accuracy"`

	// AverageScore is the lifetime average quiz score.
	AverageScore float64 `json:"average_score"`

	// DifficultyAccuracy maps a difficulty label ("easy", "medium",
	// "hard", ...) to accuracy in percent. A missing label reads as 0.
	DifficultyAccuracy map[string]float64 `json:"difficulty_wise_accuracy"`
}

// DifficultyAccuracyOrZero returns the accuracy for a difficulty label,
// treating a missing label as zero.
func (m BaseMetrics) DifficultyAccuracyOrZero(label string) float64 {
	return m.DifficultyAccuracy[label]
}

// AttemptRecord is a single quiz attempt inside the analytics window.
// Timestamp is a civil datetime string "YYYY-MM-DD HH:MM:SS" already
// rendered in the reporting timezone by the attempt store.
type AttemptRecord struct {
	Subject   string   `json:"subject"`
	Score     *float64 `json:"score"` // nil when the source row has no usable score
	Timestamp string   `json:"timestamp"`
}

// DayAttempts is the attempt count for one calendar date present in the
// window. Dates with no attempts are not zero-filled.
type DayAttempts struct {
	Date     string `json:"date"` // "YYYY-MM-DD"
	Attempts int    `json:"attempts"`
}

// HourAttempts is the attempt count for one hour-of-day bucket.
type HourAttempts struct {
	Hour     string `json:"hour"` // "HH", 00-23
	Attempts int    `json:"attempts"`
}

// WindowedMetrics holds the derived views over one student's attempt
// window. Recomputed every run and discarded after use.
type WindowedMetrics struct {
	// SubjectScores maps subject to its score series in attempt order.
	// A subject seen only with unusable scores still has a key here,
	// with a shorter (possibly empty) series.
	SubjectScores map[string][]float64

	// DayAttempts has one entry per distinct date present in the window.
	// No chronological order is guaranteed.
	DayAttempts []DayAttempts

	// ActiveHours are the top-K hour buckets by attempt count,
	// descending, ties kept in first-seen order.
	ActiveHours []HourAttempts
}

// StabilityMap maps subject to a conceptual-stability score in [0,1].
type StabilityMap map[string]float64

// MasteryLevel is the ordered overall-proficiency tier.
type MasteryLevel string

const (
	MasteryBeginner     MasteryLevel = "beginner"
	MasteryIntermediate MasteryLevel = "intermediate"
	MasteryAdvanced     MasteryLevel = "advanced"
)

// ChallengePreference describes how a student handles difficulty.
type ChallengePreference string

const (
	PrefersEasy     ChallengePreference = "prefers easy"
	Balanced        ChallengePreference = "balanced"
	EnjoysChallenge ChallengePreference = "enjoys challenge"
)

// EngagementLevel describes recent activity intensity.
type EngagementLevel string

const (
	EngagementLow      EngagementLevel = "low"
	EngagementModerate EngagementLevel = "moderate"
	EngagementHigh     EngagementLevel = "high"
)

// Strategy is the per-subject teaching adaptation strategy.
type Strategy string

const (
	StrategySlowPaced Strategy = "slow-paced with analogies"
	StrategyModerate  Strategy = "moderate with examples"
	StrategyFastPaced Strategy = "fast-paced and concise"
)

// ProfileRecord is the persisted intellectual profile for one student.
// It is merge-upserted into the insights store: fields absent from a
// write never clobber previously written fields.
type ProfileRecord struct {
	KnowledgeMastery    MasteryLevel        `json:"knowledge_mastery"`
	ChallengePreference ChallengePreference `json:"challenge_preference"`
	ConceptualStability StabilityMap        `json:"conceptual_stability"`
	LearningEngagement  EngagementLevel     `json:"learning_engagement"`
	PeakLearningHours   []HourAttempts      `json:"peak_learning_hours"`
	AdaptationStrategy  map[string]Strategy `json:"adaptation_strategy"`
}
