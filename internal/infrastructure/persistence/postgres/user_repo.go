package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/neurosattva/insights-worker/internal/domain/insight"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// UserRepository implements insight.ActiveUserSource for PostgreSQL.
type UserRepository struct {
	conn *Connection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{conn: conn}
}

// ActiveUserIDs returns the identifiers of users whose last quiz
// submission is at or after the given cutoff. The result may be empty.
func (r *UserRepository) ActiveUserIDs(ctx context.Context, since time.Time) ([]insight.UserID, error) {
	query := `
		SELECT id
		FROM users
		WHERE last_quiz_submission_time >= $1
	`

	rows, err := r.conn.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query active users: %w", err)
	}
	defer rows.Close()

	ids := make([]insight.UserID, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, insight.UserID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read active users: %w", err)
	}

	return ids, nil
}
