package employeesalary_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-hris-payroll/internal/employeesalary"
	employeesalaryerrors "go-hris-payroll/internal/employeesalary/errors"
	"go-hris-payroll/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSalaryRepository struct {
	upsertFn           func(ctx context.Context, profile *employeesalary.SalaryProfile) error
	createIfMissingFn  func(ctx context.Context, profile *employeesalary.SalaryProfile) (bool, error)
	findByEmployeeFn   func(ctx context.Context, companyID, employeeID string) (*employeesalary.SalaryProfile, error)
	findAllByCompanyFn func(ctx context.Context, companyID string) ([]employeesalary.SalaryProfile, error)
	employeeExistsFn   func(ctx context.Context, companyID, employeeID string) (bool, error)
}

func (f *fakeSalaryRepository) WithTx(tx *sql.Tx) employeesalary.Repository { return f }

func (f *fakeSalaryRepository) Upsert(ctx context.Context, profile *employeesalary.SalaryProfile) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, profile)
	}
	return nil
}

func (f *fakeSalaryRepository) CreateIfMissing(ctx context.Context, profile *employeesalary.SalaryProfile) (bool, error) {
	if f.createIfMissingFn != nil {
		return f.createIfMissingFn(ctx, profile)
	}
	return true, nil
}

func (f *fakeSalaryRepository) FindByEmployee(ctx context.Context, companyID, employeeID string) (*employeesalary.SalaryProfile, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSalaryRepository) FindAllByCompany(ctx context.Context, companyID string) ([]employeesalary.SalaryProfile, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeSalaryRepository) EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, companyID, employeeID)
	}
	return true, nil
}

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	service employeesalary.Service
	repo    *fakeSalaryRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeSalaryRepository{}
	return &serviceDeps{
		sqlMock: sqlMock,
		service: employeesalary.NewService(db, repo),
		repo:    repo,
	}
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestService_Upsert(t *testing.T) {
	id := tenant.Identity{CompanyID: uuid.NewString(), EmployeeID: uuid.NewString(), Role: tenant.RoleHR}
	employeeID := uuid.NewString()

	t.Run("saves profile with zero defaults", func(t *testing.T) {
		deps := setupServiceTest(t)
		var saved employeesalary.SalaryProfile
		deps.repo.upsertFn = func(ctx context.Context, p *employeesalary.SalaryProfile) error {
			saved = *p
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Upsert(context.Background(), id, employeeID, employeesalary.UpsertSalaryProfileRequest{
			BaseSalary:       amount("3000"),
			HousingAllowance: amount("500.50"),
		})
		assert.NoError(t, err)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.True(t, saved.BaseSalary.Equal(decimal.NewFromInt(3000)))
		assert.True(t, saved.HousingAllowance.Equal(decimal.RequireFromString("500.50")))
		assert.True(t, saved.Deductions.IsZero())
		assert.Equal(t, id.CompanyID, saved.CompanyID.String())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("update reports the stored profile", func(t *testing.T) {
		deps := setupServiceTest(t)
		storedID := uuid.New()
		createdAt := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
		deps.repo.upsertFn = func(ctx context.Context, p *employeesalary.SalaryProfile) error {
			p.ID = storedID
			p.CreatedAt = createdAt
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Upsert(context.Background(), id, employeeID, employeesalary.UpsertSalaryProfileRequest{
			BaseSalary: amount("4200"),
		})
		assert.NoError(t, err)
		assert.Equal(t, storedID.String(), resp.ID)
		assert.Equal(t, "2025-01-15T08:00:00Z", resp.CreatedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("employee of another tenant", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.employeeExistsFn = func(ctx context.Context, companyID, eid string) (bool, error) {
			assert.Equal(t, id.CompanyID, companyID)
			return false, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Upsert(context.Background(), id, employeeID, employeesalary.UpsertSalaryProfileRequest{
			BaseSalary: amount("3000"),
		})
		assert.ErrorIs(t, err, employeesalaryerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative amount", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Upsert(context.Background(), id, employeeID, employeesalary.UpsertSalaryProfileRequest{
			BaseSalary: amount("3000"),
			Deductions: amount("-1"),
		})
		assert.ErrorIs(t, err, employeesalaryerrors.ErrNegativeAmount)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Upsert(context.Background(), id, "nope", employeesalary.UpsertSalaryProfileRequest{
			BaseSalary: amount("3000"),
		})
		assert.ErrorIs(t, err, employeesalaryerrors.ErrInvalidEmployeeID)
	})
}

func TestService_GetByEmployee(t *testing.T) {
	deps := setupServiceTest(t)
	id := tenant.Identity{CompanyID: uuid.NewString(), EmployeeID: uuid.NewString(), Role: tenant.RoleHR}

	_, err := deps.service.GetByEmployee(context.Background(), id, uuid.NewString())
	assert.ErrorIs(t, err, employeesalaryerrors.ErrSalaryProfileNotFound)

	employeeID := uuid.New()
	deps.repo.findByEmployeeFn = func(ctx context.Context, companyID, eid string) (*employeesalary.SalaryProfile, error) {
		return &employeesalary.SalaryProfile{EmployeeID: employeeID, BaseSalary: decimal.NewFromInt(4500)}, nil
	}
	resp, err := deps.service.GetByEmployee(context.Background(), id, employeeID.String())
	assert.NoError(t, err)
	assert.Equal(t, "4500", resp.BaseSalary.String())
}

func TestService_EnsureDefault(t *testing.T) {
	deps := setupServiceTest(t)
	companyID := uuid.NewString()
	employeeID := uuid.NewString()

	deps.repo.createIfMissingFn = func(ctx context.Context, p *employeesalary.SalaryProfile) (bool, error) {
		assert.Equal(t, employeeID, p.EmployeeID.String())
		assert.True(t, p.BaseSalary.IsZero())
		return false, nil
	}
	created, err := deps.service.EnsureDefault(context.Background(), companyID, employeeID)
	assert.NoError(t, err)
	assert.False(t, created)

	deps.repo.createIfMissingFn = func(ctx context.Context, p *employeesalary.SalaryProfile) (bool, error) {
		return false, errors.New("db down")
	}
	_, err = deps.service.EnsureDefault(context.Background(), companyID, employeeID)
	assert.Error(t, err)
}

func TestService_ProfilesByEmployee(t *testing.T) {
	deps := setupServiceTest(t)
	a, b := uuid.New(), uuid.New()
	deps.repo.findAllByCompanyFn = func(ctx context.Context, companyID string) ([]employeesalary.SalaryProfile, error) {
		return []employeesalary.SalaryProfile{
			{EmployeeID: a, BaseSalary: decimal.NewFromInt(3000)},
			{EmployeeID: b, BaseSalary: decimal.NewFromInt(5000), Deductions: decimal.NewFromInt(200)},
		}, nil
	}

	profiles, err := deps.service.ProfilesByEmployee(context.Background(), uuid.NewString())
	assert.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.True(t, profiles[b.String()].Deductions.Equal(decimal.NewFromInt(200)))
}
