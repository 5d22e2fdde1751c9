// Package repository provides PostgreSQL and MySQL persistence for templates and
// their required fields.
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

// PostgreSQLTemplateRepository implements Template persistence for PostgreSQL.
type PostgreSQLTemplateRepository struct {
	db *sql.DB
}

// Upsert inserts the template or, when a template with the same name exists, updates it in
// place. template.ID and template.CreatedAt are replaced with the stored values. The returned
// flag is true when an existing row was updated.
func (p *PostgreSQLTemplateRepository) Upsert(
	ctx context.Context,
	template *templateDomain.Template,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO templates (id, name, layout, max_hits, password_hash, ttl_seconds, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (name) DO UPDATE
			  SET layout = EXCLUDED.layout,
				  max_hits = EXCLUDED.max_hits,
				  password_hash = EXCLUDED.password_hash,
				  ttl_seconds = EXCLUDED.ttl_seconds,
				  updated_at = EXCLUDED.updated_at
			  RETURNING id, created_at, (xmax <> 0) AS was_update`

	var wasUpdate bool
	err := querier.QueryRowContext(
		ctx,
		query,
		template.ID,
		template.Name,
		[]byte(template.Layout),
		template.MaxHits,
		template.PasswordHash,
		template.TTLSeconds,
		template.CreatedAt,
		template.UpdatedAt,
	).Scan(&template.ID, &template.CreatedAt, &wasUpdate)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to upsert template")
	}

	return wasUpdate, nil
}

// Get retrieves a Template by ID. Required fields are not loaded.
func (p *PostgreSQLTemplateRepository) Get(
	ctx context.Context,
	templateID uuid.UUID,
) (*templateDomain.Template, error) {
	query := `SELECT id, name, layout, max_hits, password_hash, ttl_seconds, created_at, updated_at
			  FROM templates WHERE id = $1`
	return p.getOne(ctx, query, templateID)
}

// GetByName retrieves a Template by its unique name. Required fields are not loaded.
func (p *PostgreSQLTemplateRepository) GetByName(
	ctx context.Context,
	name string,
) (*templateDomain.Template, error) {
	query := `SELECT id, name, layout, max_hits, password_hash, ttl_seconds, created_at, updated_at
			  FROM templates WHERE name = $1`
	return p.getOne(ctx, query, name)
}

func (p *PostgreSQLTemplateRepository) getOne(
	ctx context.Context,
	query string,
	arg any,
) (*templateDomain.Template, error) {
	querier := database.GetTx(ctx, p.db)

	var template templateDomain.Template
	var layout []byte

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&template.ID,
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
	template.Layout = layout

	return &template, nil
}

// DeleteRequiredFields removes every required field row of a template.
func (p *PostgreSQLTemplateRepository) DeleteRequiredFields(ctx context.Context, templateID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM template_required_fields WHERE template_id = $1`

	if _, err := querier.ExecContext(ctx, query, templateID); err != nil {
		return apperrors.Wrap(err, "failed to delete template required fields")
	}
	return nil
}

// CreateRequiredField inserts one required field row.
func (p *PostgreSQLTemplateRepository) CreateRequiredField(
	ctx context.Context,
	templateID uuid.UUID,
	position int,
	name string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO template_required_fields (template_id, position, name) VALUES ($1, $2, $3)`

	if _, err := querier.ExecContext(ctx, query, templateID, position, name); err != nil {
		return apperrors.Wrap(err, "failed to create template required field")
	}
	return nil
}

// ListRequiredFields returns the required field names of a template in insertion order.
func (p *PostgreSQLTemplateRepository) ListRequiredFields(
	ctx context.Context,
	templateID uuid.UUID,
) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT name FROM template_required_fields WHERE template_id = $1 ORDER BY position ASC`

	rows, err := querier.QueryContext(ctx, query, templateID)
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

// NewPostgreSQLTemplateRepository creates a new PostgreSQL Template repository.
func NewPostgreSQLTemplateRepository(db *sql.DB) *PostgreSQLTemplateRepository {
	return &PostgreSQLTemplateRepository{db: db}
}
