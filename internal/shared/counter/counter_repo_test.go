package counter

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockGorm(t *testing.T) (*gorm.DB, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gdb, db, mock
}

func TestRepository_GetNextValue(t *testing.T) {
	gdb, db, mock := newMockGorm(t)
	companyID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "company_counters" .* ON CONFLICT \("company_id","counter_type"\) DO UPDATE SET "last_value"=company_counters.last_value \+ 1,"updated_at"=now\(\) RETURNING "last_value"`).
		WithArgs(companyID, TypeEmployeeNumber, int64(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(42)))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	next, err := NewRepository(gdb).WithTx(tx).GetNextValue(context.Background(), companyID, TypeEmployeeNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(42), next)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetNextValueRejectsBadCompany(t *testing.T) {
	gdb, _, mock := newMockGorm(t)

	_, err := NewRepository(gdb).GetNextValue(context.Background(), "acme", TypeEmployeeNumber)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
