// Package repository provides PostgreSQL and MySQL persistence for recipients.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/sharelink/internal/database"
	apperrors "github.com/allisson/sharelink/internal/errors"
	"github.com/allisson/sharelink/internal/user/domain"
)

// PostgreSQLRecipientRepository handles recipient persistence for PostgreSQL.
type PostgreSQLRecipientRepository struct {
	db *sql.DB
}

// NewPostgreSQLRecipientRepository creates a new PostgreSQLRecipientRepository.
func NewPostgreSQLRecipientRepository(db *sql.DB) *PostgreSQLRecipientRepository {
	return &PostgreSQLRecipientRepository{db: db}
}

// Create inserts a new recipient.
func (r *PostgreSQLRecipientRepository) Create(ctx context.Context, recipient *domain.Recipient) error {
	querier := database.GetTx(ctx, r.db)

	attributes, err := marshalAttributes(recipient.Attributes)
	if err != nil {
		return err
	}

	query := `INSERT INTO recipients (id, name, email, attributes, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = querier.ExecContext(
		ctx,
		query,
		recipient.ID,
		recipient.Name,
		recipient.Email,
		attributes,
		recipient.CreatedAt,
		recipient.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrRecipientAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create recipient")
	}
	return nil
}

// Get retrieves a recipient by ID.
func (r *PostgreSQLRecipientRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, attributes, created_at, updated_at
			  FROM recipients WHERE id = $1`

	var recipient domain.Recipient
	var attributes []byte

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&recipient.ID,
		&recipient.Name,
		&recipient.Email,
		&attributes,
		&recipient.CreatedAt,
		&recipient.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get recipient")
	}

	if recipient.Attributes, err = unmarshalAttributes(attributes); err != nil {
		return nil, err
	}
	return &recipient, nil
}

// List retrieves recipients ordered by id (creation order for UUIDv7).
func (r *PostgreSQLRecipientRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Recipient, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, attributes, created_at, updated_at
			  FROM recipients ORDER BY id ASC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list recipients")
	}
	defer func() { _ = rows.Close() }()

	recipients := make([]*domain.Recipient, 0)
	for rows.Next() {
		var recipient domain.Recipient
		var attributes []byte

		if err := rows.Scan(
			&recipient.ID,
			&recipient.Name,
			&recipient.Email,
			&attributes,
			&recipient.CreatedAt,
			&recipient.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan recipient")
		}

		if recipient.Attributes, err = unmarshalAttributes(attributes); err != nil {
			return nil, err
		}
		recipients = append(recipients, &recipient)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate recipients")
	}
	return recipients, nil
}

func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func marshalAttributes(attributes map[string]string) ([]byte, error) {
	if attributes == nil {
		attributes = map[string]string{}
	}
	data, err := json.Marshal(attributes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal recipient attributes")
	}
	return data, nil
}

func unmarshalAttributes(data []byte) (map[string]string, error) {
	attributes := map[string]string{}
	if len(data) == 0 {
		return attributes, nil
	}
	if err := json.Unmarshal(data, &attributes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal recipient attributes")
	}
	return attributes, nil
}
