package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/neurosattva/insights-worker/internal/domain/insight"
)

// ══════════════════════════════════════════════════════════════════════════════
// ATTEMPT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// AttemptRepository implements insight.AttemptStore for PostgreSQL.
// Timezone conversion happens in SQL: rows come back with timestamps
// already rendered in the reporting zone, so the domain layer never
// touches time.Time for attempts.
type AttemptRepository struct {
	conn     *Connection
	timezone string // IANA zone name, e.g. "Asia/Kolkata"
}

// NewAttemptRepository creates a new AttemptRepository reporting
// timestamps in the given IANA timezone.
func NewAttemptRepository(conn *Connection, timezone string) *AttemptRepository {
	return &AttemptRepository{conn: conn, timezone: timezone}
}

// AttemptsSince returns one user's quiz attempts with responded_at at
// or after startUTC, newest first.
func (r *AttemptRepository) AttemptsSince(ctx context.Context, userID insight.UserID, startUTC time.Time) ([]insight.AttemptRecord, error) {
	query := `
		SELECT subject,
		       score,
		       to_char(responded_at AT TIME ZONE $3, 'YYYY-MM-DD HH24:MI:SS')
		FROM quiz_submissions
		WHERE user_id = $1
		  AND responded_at >= $2
		ORDER BY responded_at DESC
	`

	rows, err := r.conn.Query(ctx, query, userID.String(), startUTC, r.timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts for user %s: %w", userID, err)
	}
	defer rows.Close()

	attempts := make([]insight.AttemptRecord, 0)
	for rows.Next() {
		var record insight.AttemptRecord
		if err := rows.Scan(&record.Subject, &record.Score, &record.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attempts: %w", err)
	}

	return attempts, nil
}
