package payroll

import (
	"context"
	"database/sql"

	"go-hris-payroll/internal/shared/txdb"
	"go-hris-payroll/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CommittedRunExists(ctx context.Context, companyID string, year, month int) (bool, error)
	FindActiveEmployees(ctx context.Context, companyID string) ([]PayrollEmployee, error)
	CreateRun(ctx context.Context, run *PayrollRun) error
	CreateLineItems(ctx context.Context, items []PayrollLineItem) error
	FindRuns(ctx context.Context, companyID string) ([]PayrollRun, error)
	FindLineItems(ctx context.Context, companyID string, year, month int) ([]PayrollLineItem, error)
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

func (r *repository) CommittedRunExists(ctx context.Context, companyID string, year, month int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollRun{}).
		Scopes(tenant.Scope(companyID)).
		Where("period_year = ? AND period_month = ?", year, month).
		Where("status = ?", RunStatusCommitted).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindActiveEmployees(ctx context.Context, companyID string) ([]PayrollEmployee, error) {
	var employees []PayrollEmployee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Where("deleted_at IS NULL").
		Order("employee_number ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(run).Error)
}

func (r *repository) CreateLineItems(ctx context.Context, items []PayrollLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return mapRepositoryError(r.db.WithContext(ctx).Omit("Employee").CreateInBatches(items, 200).Error)
}

func (r *repository) FindRuns(ctx context.Context, companyID string) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", RunStatusCommitted).
		Order("period_year DESC, period_month DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) FindLineItems(ctx context.Context, companyID string, year, month int) ([]PayrollLineItem, error) {
	var items []PayrollLineItem
	err := r.db.WithContext(ctx).
		Scopes(tenant.ScopeTable("payroll_line_items", companyID)).
		Where("payroll_line_items.period_year = ? AND payroll_line_items.period_month = ?", year, month).
		Preload("Employee").
		Order("payroll_line_items.created_at ASC").
		Find(&items).Error
	return items, err
}
