// Package insight contains the domain model and pure computation for
// student intellectual profiles.
package insight

import (
	"context"
	"time"
)

// ActiveUserSource lists students considered active: anyone whose last
// quiz submission is at or after the given cutoff. The result may be
// empty; an empty result ends the run without error.
type ActiveUserSource interface {
	ActiveUserIDs(ctx context.Context, since time.Time) ([]UserID, error)
}

// MetricsStore is the keyed read side for per-student base metrics.
// A missing document is reported as ErrMetricsNotFound and handled as
// a skip, not a failure.
type MetricsStore interface {
	GetBaseMetrics(ctx context.Context, userID UserID) (*BaseMetrics, error)
}

// AttemptStore queries one student's quiz attempts inside a trailing
// window. The store owns timezone conversion: timestamps come back
// already formatted as "YYYY-MM-DD HH:MM:SS" in the reporting zone,
// ordered newest-first.
type AttemptStore interface {
	AttemptsSince(ctx context.Context, userID UserID, startUTC time.Time) ([]AttemptRecord, error)
}

// ProfileSink persists profile records with upsert-with-merge
// semantics: the write creates the document if absent, otherwise it
// merges the given fields without removing unrelated ones.
type ProfileSink interface {
	UpsertProfile(ctx context.Context, userID UserID, profile ProfileRecord) error
}
