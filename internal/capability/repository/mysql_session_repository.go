package repository

import (
	"context"
	"database/sql"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	"github.com/allisson/sharelink/internal/database"
	apperrors "github.com/allisson/sharelink/internal/errors"
)

// MySQLSessionRepository records token presentations in MySQL.
type MySQLSessionRepository struct {
	db *sql.DB
}

// NewMySQLSessionRepository creates a new MySQLSessionRepository.
func NewMySQLSessionRepository(db *sql.DB) *MySQLSessionRepository {
	return &MySQLSessionRepository{db: db}
}

// Record appends the session row and increments the per-token counter, returning the number
// of presentations including this one.
//
// The counter update stores hits+1 through LAST_INSERT_ID(expr) so the new value comes back
// on the same statement. MySQL reports one affected row for the first presentation and two
// for every later one.
func (m *MySQLSessionRepository) Record(
	ctx context.Context,
	session *capabilityDomain.Session,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := session.ID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal session id")
	}

	_, err = querier.ExecContext(
		ctx,
		`INSERT INTO sessions (id, token_hash, viewer_id, created_at) VALUES (?, ?, ?, ?)`,
		id,
		session.TokenHash,
		session.ViewerID,
		session.CreatedAt,
	)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to insert session")
	}

	query := `INSERT INTO presentation_counters (token_hash, hits, updated_at)
			  VALUES (?, 1, ?)
			  ON DUPLICATE KEY UPDATE
				  hits = LAST_INSERT_ID(hits + 1),
				  updated_at = VALUES(updated_at)`

	result, err := querier.ExecContext(ctx, query, session.TokenHash, session.CreatedAt)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to increment presentation counter")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read counter result")
	}
	if affected == 1 {
		return 1, nil
	}

	hits, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read presentation counter")
	}
	return hits, nil
}

// CountByTokenHash returns the number of session rows recorded for a token.
func (m *MySQLSessionRepository) CountByTokenHash(ctx context.Context, tokenHash string) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM sessions WHERE token_hash = ?`,
		tokenHash,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count sessions")
	}
	return count, nil
}
