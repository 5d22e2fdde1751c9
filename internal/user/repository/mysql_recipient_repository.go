package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/sharelink/internal/database"
	apperrors "github.com/allisson/sharelink/internal/errors"
	"github.com/allisson/sharelink/internal/user/domain"
)

// MySQLRecipientRepository handles recipient persistence for MySQL.
// Uses BINARY(16) for UUIDs.
type MySQLRecipientRepository struct {
	db *sql.DB
}

// NewMySQLRecipientRepository creates a new MySQLRecipientRepository.
func NewMySQLRecipientRepository(db *sql.DB) *MySQLRecipientRepository {
	return &MySQLRecipientRepository{db: db}
}

// Create inserts a new recipient.
func (r *MySQLRecipientRepository) Create(ctx context.Context, recipient *domain.Recipient) error {
	querier := database.GetTx(ctx, r.db)

	id, err := recipient.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal recipient id")
	}

	attributes, err := marshalAttributes(recipient.Attributes)
	if err != nil {
		return err
	}

	query := `INSERT INTO recipients (id, name, email, attributes, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		recipient.Name,
		recipient.Email,
		attributes,
		recipient.CreatedAt,
		recipient.UpdatedAt,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return domain.ErrRecipientAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create recipient")
	}
	return nil
}

// Get retrieves a recipient by ID.
func (r *MySQLRecipientRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal recipient id")
	}

	query := `SELECT id, name, email, attributes, created_at, updated_at
			  FROM recipients WHERE id = ?`

	recipient, err := scanMySQLRecipient(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, err
	}
	return recipient, nil
}

// List retrieves recipients ordered by id (creation order for UUIDv7).
func (r *MySQLRecipientRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Recipient, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, attributes, created_at, updated_at
			  FROM recipients ORDER BY id ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list recipients")
	}
	defer func() { _ = rows.Close() }()

	recipients := make([]*domain.Recipient, 0)
	for rows.Next() {
		recipient, err := scanMySQLRecipient(rows)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, recipient)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate recipients")
	}
	return recipients, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLRecipient(row rowScanner) (*domain.Recipient, error) {
	var recipient domain.Recipient
	var idBytes, attributes []byte

	err := row.Scan(
		&idBytes,
		&recipient.Name,
		&recipient.Email,
		&attributes,
		&recipient.CreatedAt,
		&recipient.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, "failed to scan recipient")
	}

	if err := recipient.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal recipient id")
	}
	if recipient.Attributes, err = unmarshalAttributes(attributes); err != nil {
		return nil, err
	}
	return &recipient, nil
}

func isMySQLDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
