package payroll

import (
	"context"
	"errors"
	"testing"

	payrollerrors "go-hris-payroll/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return gdb, mock
}

func TestRepository_CommittedRunExists(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)
	companyID := uuid.NewString()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "payroll_runs" WHERE company_id = \$1 AND \(period_year = \$2 AND period_month = \$3\) AND status = \$4`).
		WithArgs(companyID, 2025, 11, RunStatusCommitted).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.CommittedRunExists(context.Background(), companyID, 2025, 11)
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindActiveEmployees_TenantScoped(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)
	companyID := uuid.New()
	employeeID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE company_id = \$1 AND is_active = \$2 AND deleted_at IS NULL ORDER BY employee_number ASC`).
		WithArgs(companyID.String(), true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "employee_number", "full_name"}).
			AddRow(employeeID, companyID, "EMP-001", "Amina"))

	rows, err := repo.FindActiveEmployees(context.Background(), companyID.String())
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "EMP-001", rows[0].EmployeeNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapRepositoryError(t *testing.T) {
	runLock := &pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_runs_period"}
	itemLock := &pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_line_items_employee_period"}
	otherUnique := &pgconn.PgError{Code: "23505", ConstraintName: "payroll_runs_pkey"}
	plain := errors.New("boom")

	assert.ErrorIs(t, mapRepositoryError(runLock), payrollerrors.ErrPeriodAlreadyProcessed)
	assert.ErrorIs(t, mapRepositoryError(itemLock), payrollerrors.ErrPeriodAlreadyProcessed)
	assert.Equal(t, otherUnique, mapRepositoryError(otherUnique))
	assert.Equal(t, plain, mapRepositoryError(plain))
	assert.Nil(t, mapRepositoryError(nil))
}
