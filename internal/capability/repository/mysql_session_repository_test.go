package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLSessionRepository_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_FirstPresentation", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLSessionRepository(db)
		session := newSession(nil)
		id, err := session.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO sessions").
			WithArgs(id, session.TokenHash, nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO presentation_counters").
			WithArgs(session.TokenHash, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		hits, err := repo.Record(ctx, session)
		require.NoError(t, err)
		assert.Equal(t, int64(1), hits)
	})

	t.Run("Success_LaterPresentationReadsCounter", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLSessionRepository(db)

		mock.ExpectExec("INSERT INTO sessions").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO presentation_counters").
			WillReturnResult(sqlmock.NewResult(4, 2))

		hits, err := repo.Record(ctx, newSession(nil))
		require.NoError(t, err)
		assert.Equal(t, int64(4), hits)
	})

	t.Run("Error_CounterFails", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLSessionRepository(db)

		mock.ExpectExec("INSERT INTO sessions").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO presentation_counters").WillReturnError(assert.AnError)

		_, err := repo.Record(ctx, newSession(nil))
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestMySQLSessionRepository_CountByTokenHash(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLSessionRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	count, err := repo.CountByTokenHash(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
