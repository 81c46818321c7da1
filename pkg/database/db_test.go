package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestPing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing()

	require.NoError(t, Ping(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPingFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	err := Ping(context.Background(), db)
	assert.EqualError(t, err, "connection refused")
}

func TestDSN(t *testing.T) {
	cfg := Config{Host: "db", User: "club", Password: "secret", Name: "puglia", Port: "5432"}
	assert.Equal(t, "host=db user=club password=secret dbname=puglia port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}

func TestTransactionCommitsAndNests(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	assert.False(t, InTransaction(context.Background()))

	err := Transaction(context.Background(), db, func(ctx context.Context) error {
		assert.True(t, InTransaction(ctx))
		outer := Conn(ctx, db)
		return Transaction(ctx, db, func(inner context.Context) error {
			assert.Same(t, outer, Conn(inner, db))
			return nil
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := Transaction(context.Background(), db, func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
