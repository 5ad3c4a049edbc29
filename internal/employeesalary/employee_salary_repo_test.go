package employeesalary

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

var profileColumns = []string{
	"id", "company_id", "employee_id", "base_salary", "housing_allowance",
	"transport_allowance", "other_allowances", "deductions", "created_at", "updated_at",
}

func TestRepository_Upsert_ReturnsStoredRow(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)

	companyID, employeeID, storedID := uuid.New(), uuid.New(), uuid.New()
	createdAt := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC)

	profile := &SalaryProfile{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		BaseSalary: decimal.RequireFromString("5000"),
		UpdatedAt:  updatedAt,
	}

	mock.ExpectQuery(`INSERT INTO "salary_profiles" .* ON CONFLICT \("employee_id"\) DO UPDATE SET .* RETURNING \*`).
		WillReturnRows(sqlmock.NewRows(profileColumns).AddRow(
			storedID.String(), companyID.String(), employeeID.String(),
			"5000.00", "0.00", "0.00", "0.00", "0.00", createdAt, updatedAt,
		))

	err := repo.Upsert(context.Background(), profile)

	assert.NoError(t, err)
	assert.Equal(t, storedID, profile.ID)
	assert.Equal(t, createdAt, profile.CreatedAt)
	assert.True(t, profile.BaseSalary.Equal(decimal.RequireFromString("5000")))
	assert.NoError(t, mock.ExpectationsWereMet())

	resp := mapToResponse(*profile)
	assert.Equal(t, storedID.String(), resp.ID)
	assert.Equal(t, "2025-01-15T08:00:00Z", resp.CreatedAt)
}
