package redis

import (
	"context"

	"github.com/neurosattva/insights-worker/internal/domain/insight"
)

// Profile document field names, one per top-level profile section.
const (
	fieldKnowledgeMastery    = "knowledge_mastery"
	fieldChallengePreference = "challenge_preference"
	fieldConceptualStability = "conceptual_stability"
	fieldLearningEngagement  = "learning_engagement"
	fieldPeakLearningHours   = "peak_learning_hours"
	fieldAdaptationStrategy  = "adaptation_strategy"
)

// ProfileSink implements insight.ProfileSink on top of the document
// store. Each upsert merges into the existing document: fields written
// by other services (or earlier schema versions) are preserved.
type ProfileSink struct {
	store *DocStore
}

// NewProfileSink creates a new ProfileSink.
func NewProfileSink(store *DocStore) *ProfileSink {
	return &ProfileSink{store: store}
}

// UpsertProfile merge-writes the profile document for a user.
func (p *ProfileSink) UpsertProfile(ctx context.Context, userID insight.UserID, profile insight.ProfileRecord) error {
	return p.store.MergeDocument(ctx, InsightsKey(userID.String()), profileFields(profile))
}

// profileFields flattens a profile record into document fields.
func profileFields(profile insight.ProfileRecord) map[string]any {
	return map[string]any{
		fieldKnowledgeMastery:    profile.KnowledgeMastery,
		fieldChallengePreference: profile.ChallengePreference,
		fieldConceptualStability: profile.ConceptualStability,
		fieldLearningEngagement:  profile.LearningEngagement,
		fieldPeakLearningHours:   profile.PeakLearningHours,
		fieldAdaptationStrategy:  profile.AdaptationStrategy,
	}
}
