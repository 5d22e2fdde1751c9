package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	templateDomain "github.com/allisson/sharelink/internal/template/domain"
)

func mustBinary(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestMySQLTemplateRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Insert", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLTemplateRepository(db)
		template := newTemplate()

		mock.ExpectExec("INSERT INTO templates").
			WithArgs(
				mustBinary(t, template.ID), "certificate", sqlmock.AnyArg(), 3, "", int64(3600),
				sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		wasUpdate, err := repo.Upsert(ctx, template)
		require.NoError(t, err)
		assert.False(t, wasUpdate)
	})

	t.Run("Success_Update", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLTemplateRepository(db)
		template := newTemplate()
		storedID := uuid.Must(uuid.NewV7())
		storedCreatedAt := time.Now().UTC().Add(-time.Hour)

		mock.ExpectExec("INSERT INTO templates").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery("SELECT id, created_at FROM templates WHERE name").
			WithArgs("certificate").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
				AddRow(mustBinary(t, storedID), storedCreatedAt))

		wasUpdate, err := repo.Upsert(ctx, template)
		require.NoError(t, err)
		assert.True(t, wasUpdate)
		assert.Equal(t, storedID, template.ID)
		assert.Equal(t, storedCreatedAt, template.CreatedAt)
	})

	t.Run("Success_UnchangedUpdate", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLTemplateRepository(db)
		template := newTemplate()

		mock.ExpectExec("INSERT INTO templates").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT id, created_at FROM templates WHERE name").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
				AddRow(mustBinary(t, template.ID), template.CreatedAt))

		wasUpdate, err := repo.Upsert(ctx, template)
		require.NoError(t, err)
		assert.True(t, wasUpdate)
	})
}

func TestMySQLTemplateRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLTemplateRepository(db)
		template := newTemplate()

		mock.ExpectQuery("SELECT (.+) FROM templates WHERE id").
			WithArgs(mustBinary(t, template.ID)).
			WillReturnRows(sqlmock.NewRows(templateColumns).AddRow(
				mustBinary(t, template.ID), template.Name, []byte(template.Layout), 5, "", int64(0),
				template.CreatedAt, template.UpdatedAt,
			))

		got, err := repo.Get(ctx, template.ID)
		require.NoError(t, err)
		assert.Equal(t, template.ID, got.ID)
		assert.Equal(t, 5, got.MaxHits)
		assert.Equal(t, int64(0), got.TTLSeconds)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLTemplateRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM templates WHERE name").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByName(ctx, "missing")
		assert.ErrorIs(t, err, templateDomain.ErrTemplateNotFound)
	})
}

func TestMySQLTemplateRepository_RequiredFields(t *testing.T) {
	ctx := context.Background()
	templateID := uuid.Must(uuid.NewV7())

	db, mock := newMockDB(t)
	repo := NewMySQLTemplateRepository(db)

	mock.ExpectExec("DELETE FROM template_required_fields").
		WithArgs(mustBinary(t, templateID)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO template_required_fields").
		WithArgs(mustBinary(t, templateID), 0, "userId").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT name FROM template_required_fields").
		WithArgs(mustBinary(t, templateID)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("userId"))

	require.NoError(t, repo.DeleteRequiredFields(ctx, templateID))
	require.NoError(t, repo.CreateRequiredField(ctx, templateID, 0, "userId"))

	fields, err := repo.ListRequiredFields(ctx, templateID)
	require.NoError(t, err)
	assert.Equal(t, []string{"userId"}, fields)
}
