package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/sharelink/internal/user/domain"
)

func mustBinary(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestMySQLRecipientRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLRecipientRepository(db)
		recipient := newRecipient()

		mock.ExpectExec("INSERT INTO recipients").
			WithArgs(
				mustBinary(t, recipient.ID), "Ada Lovelace", "ada@example.com",
				[]byte(`{"course":"Engines"}`), sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, recipient))
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLRecipientRepository(db)

		mock.ExpectExec("INSERT INTO recipients").
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		err := repo.Create(ctx, newRecipient())
		assert.ErrorIs(t, err, domain.ErrRecipientAlreadyExists)
	})

	t.Run("Error_OtherMySQLError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLRecipientRepository(db)

		mock.ExpectExec("INSERT INTO recipients").
			WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"})

		err := repo.Create(ctx, newRecipient())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrRecipientAlreadyExists)
	})
}

func TestMySQLRecipientRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLRecipientRepository(db)
		expected := newRecipient()

		mock.ExpectQuery("SELECT id, name, email, attributes").
			WithArgs(mustBinary(t, expected.ID)).
			WillReturnRows(sqlmock.NewRows(recipientColumns).AddRow(
				mustBinary(t, expected.ID), expected.Name, expected.Email, []byte(`{"course":"Engines"}`),
				expected.CreatedAt, expected.UpdatedAt,
			))

		recipient, err := repo.Get(ctx, expected.ID)
		require.NoError(t, err)
		assert.Equal(t, expected.ID, recipient.ID)
		assert.Equal(t, "ada@example.com", recipient.Email)
		assert.Equal(t, "Engines", recipient.Attributes["course"])
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLRecipientRepository(db)

		mock.ExpectQuery("SELECT id, name, email, attributes").WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrRecipientNotFound)
	})
}

func TestMySQLRecipientRepository_List(t *testing.T) {
	ctx := context.Background()

	db, mock := newMockDB(t)
	repo := NewMySQLRecipientRepository(db)
	first := newRecipient()

	mock.ExpectQuery("SELECT id, name, email, attributes").
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows(recipientColumns).AddRow(
			mustBinary(t, first.ID), first.Name, first.Email, []byte(`{}`), first.CreatedAt, first.UpdatedAt,
		))

	recipients, err := repo.List(ctx, 0, 50)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, first.ID, recipients[0].ID)
}
