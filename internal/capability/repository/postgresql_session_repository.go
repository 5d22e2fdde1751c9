// Package repository provides PostgreSQL and MySQL implementations of the session ledger.
package repository

import (
	"context"
	"database/sql"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	"github.com/allisson/sharelink/internal/database"
	apperrors "github.com/allisson/sharelink/internal/errors"
)

// PostgreSQLSessionRepository records token presentations in PostgreSQL.
type PostgreSQLSessionRepository struct {
	db *sql.DB
}

// NewPostgreSQLSessionRepository creates a new PostgreSQLSessionRepository.
func NewPostgreSQLSessionRepository(db *sql.DB) *PostgreSQLSessionRepository {
	return &PostgreSQLSessionRepository{db: db}
}

// Record appends the session row and increments the per-token counter, returning the number
// of presentations including this one. Callers run it inside a transaction so both writes
// land together.
func (p *PostgreSQLSessionRepository) Record(
	ctx context.Context,
	session *capabilityDomain.Session,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	_, err := querier.ExecContext(
		ctx,
		`INSERT INTO sessions (id, token_hash, viewer_id, created_at) VALUES ($1, $2, $3, $4)`,
		session.ID,
		session.TokenHash,
		session.ViewerID,
		session.CreatedAt,
	)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to insert session")
	}

	query := `INSERT INTO presentation_counters (token_hash, hits, updated_at)
			  VALUES ($1, 1, $2)
			  ON CONFLICT (token_hash) DO UPDATE
			  SET hits = presentation_counters.hits + 1,
				  updated_at = EXCLUDED.updated_at
			  RETURNING hits`

	var hits int64
	if err := querier.QueryRowContext(ctx, query, session.TokenHash, session.CreatedAt).Scan(&hits); err != nil {
		return 0, apperrors.Wrap(err, "failed to increment presentation counter")
	}
	return hits, nil
}

// CountByTokenHash returns the number of session rows recorded for a token.
func (p *PostgreSQLSessionRepository) CountByTokenHash(ctx context.Context, tokenHash string) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM sessions WHERE token_hash = $1`,
		tokenHash,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count sessions")
	}
	return count, nil
}
