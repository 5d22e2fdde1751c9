package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/sharelink/internal/database"
	apperrors "github.com/allisson/sharelink/internal/errors"
	templateDomain "github.com/allisson/sharelink/internal/template/domain"
)

// MySQLTemplateRepository implements Template persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLTemplateRepository struct {
	db *sql.DB
}

// Upsert inserts the template or updates the row sharing its name. MySQL reports one
// affected row for an insert and two (or zero when nothing changed) for an update.
func (m *MySQLTemplateRepository) Upsert(
	ctx context.Context,
	template *templateDomain.Template,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO templates (id, name, layout, max_hits, password_hash, ttl_seconds, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
				  layout = VALUES(layout),
				  max_hits = VALUES(max_hits),
				  password_hash = VALUES(password_hash),
				  ttl_seconds = VALUES(ttl_seconds),
				  updated_at = VALUES(updated_at)`

	id, err := template.ID.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal template id")
	}

	result, err := querier.ExecContext(
		ctx,
		query,
		id,
		template.Name,
		[]byte(template.Layout),
		template.MaxHits,
		template.PasswordHash,
		template.TTLSeconds,
		template.CreatedAt,
		template.UpdatedAt,
	)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to upsert template")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read upsert result")
	}
	if affected == 1 {
		return false, nil
	}

	// Update path: the stored id and created_at win.
	var idBytes []byte
	err = querier.QueryRowContext(
		ctx,
		`SELECT id, created_at FROM templates WHERE name = ?`,
		template.Name,
	).Scan(&idBytes, &template.CreatedAt)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to load upserted template")
	}
	if err := template.ID.UnmarshalBinary(idBytes); err != nil {
		return false, apperrors.Wrap(err, "failed to unmarshal template id")
	}

	return true, nil
}

// Get retrieves a Template by ID. Required fields are not loaded.
func (m *MySQLTemplateRepository) Get(
	ctx context.Context,
	templateID uuid.UUID,
) (*templateDomain.Template, error) {
	id, err := templateID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal template id")
	}

	query := `SELECT id, name, layout, max_hits, password_hash, ttl_seconds, created_at, updated_at
			  FROM templates WHERE id = ?`
	return m.getOne(ctx, query, id)
}

// GetByName retrieves a Template by its unique name. Required fields are not loaded.
func (m *MySQLTemplateRepository) GetByName(
	ctx context.Context,
	name string,
) (*templateDomain.Template, error) {
	query := `SELECT id, name, layout, max_hits, password_hash, ttl_seconds, created_at, updated_at
			  FROM templates WHERE name = ?`
	return m.getOne(ctx, query, name)
}

func (m *MySQLTemplateRepository) getOne(
	ctx context.Context,
	query string,
	arg any,
) (*templateDomain.Template, error) {
	querier := database.GetTx(ctx, m.db)

	var template templateDomain.Template
	var idBytes []byte
	var layout []byte

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&idBytes,
		&template.Name,
		&layout,
		&template.MaxHits,
		&template.PasswordHash,
		&template.TTLSeconds,
		&template.CreatedAt,
		&template.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, templateDomain.ErrTemplateNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get template")
	}

	if err := template.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal template id")
	}
	template.Layout = layout

	return &template, nil
}

// DeleteRequiredFields removes every required field row of a template.
func (m *MySQLTemplateRepository) DeleteRequiredFields(ctx context.Context, templateID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := templateID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal template id")
	}

	if _, err := querier.ExecContext(ctx, `DELETE FROM template_required_fields WHERE template_id = ?`, id); err != nil {
		return apperrors.Wrap(err, "failed to delete template required fields")
	}
	return nil
}

// CreateRequiredField inserts one required field row.
func (m *MySQLTemplateRepository) CreateRequiredField(
	ctx context.Context,
	templateID uuid.UUID,
	position int,
	name string,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := templateID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal template id")
	}

	query := `INSERT INTO template_required_fields (template_id, position, name) VALUES (?, ?, ?)`

	if _, err := querier.ExecContext(ctx, query, id, position, name); err != nil {
		return apperrors.Wrap(err, "failed to create template required field")
	}
	return nil
}

// ListRequiredFields returns the required field names of a template in insertion order.
func (m *MySQLTemplateRepository) ListRequiredFields(
	ctx context.Context,
	templateID uuid.UUID,
) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := templateID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal template id")
	}

	query := `SELECT name FROM template_required_fields WHERE template_id = ? ORDER BY position ASC`

	rows, err := querier.QueryContext(ctx, query, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list template required fields")
	}
	defer func() {
		_ = rows.Close()
	}()

	fields := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan template required field")
		}
		fields = append(fields, name)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate template required fields")
	}

	return fields, nil
}

// NewMySQLTemplateRepository creates a new MySQL Template repository.
func NewMySQLTemplateRepository(db *sql.DB) *MySQLTemplateRepository {
	return &MySQLTemplateRepository{db: db}
}
