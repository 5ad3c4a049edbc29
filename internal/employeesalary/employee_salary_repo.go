package employeesalary

import (
	"context"
	"database/sql"

	"go-hris-payroll/internal/shared/txdb"
	"go-hris-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_salary_repo.go -destination=mock/employee_salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, profile *SalaryProfile) error
	CreateIfMissing(ctx context.Context, profile *SalaryProfile) (bool, error)
	FindByEmployee(ctx context.Context, companyID, employeeID string) (*SalaryProfile, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]SalaryProfile, error)
	EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: txdb.Bind(r.db, tx)}
}

var upsertColumns = []string{
	"base_salary",
	"housing_allowance",
	"transport_allowance",
	"other_allowances",
	"deductions",
	"updated_at",
}

// Upsert keeps exactly one profile per employee. profile is refreshed from
// the stored row, so on update it carries the existing id and created_at.
func (r *repository) Upsert(ctx context.Context, profile *SalaryProfile) error {
	return r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "employee_id"}},
				DoUpdates: clause.AssignmentColumns(upsertColumns),
			},
			clause.Returning{},
		).
		Create(profile).Error
}

// CreateIfMissing inserts profile unless the employee already has one and
// reports whether a row was written.
func (r *repository) CreateIfMissing(ctx context.Context, profile *SalaryProfile) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}},
			DoNothing: true,
		}).
		Create(profile)
	return res.RowsAffected == 1, res.Error
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string) (*SalaryProfile, error) {
	var profile SalaryProfile
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Take(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]SalaryProfile, error) {
	var profiles []SalaryProfile
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Find(&profiles).Error
	return profiles, err
}

func (r *repository) EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
