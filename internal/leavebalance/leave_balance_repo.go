package leavebalance

import (
	"context"
	"database/sql"
	"errors"

	"go-hris-payroll/internal/shared/txdb"
	"go-hris-payroll/internal/tenant"

	"gorm.io/gorm"
)

const employeesTable = "employees"

//go:generate mockgen -source=leave_balance_repo.go -destination=mock/leave_balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// DecrementIfSufficient subtracts days in one conditional statement and
	// reports whether a row changed.
	DecrementIfSufficient(ctx context.Context, companyID, employeeID string, days int) (bool, error)
	// Balance returns (0, false, nil) when the employee does not exist in
	// companyID.
	Balance(ctx context.Context, companyID, employeeID string) (int, bool, error)
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

func (r *repository) DecrementIfSufficient(ctx context.Context, companyID, employeeID string, days int) (bool, error) {
	res := r.db.WithContext(ctx).
		Table(employeesTable).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Where("leave_balance >= ?", days).
		Update("leave_balance", gorm.Expr("leave_balance - ?", days))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) Balance(ctx context.Context, companyID, employeeID string) (int, bool, error) {
	var row struct {
		LeaveBalance int
	}
	err := r.db.WithContext(ctx).
		Table(employeesTable).
		Scopes(tenant.Scope(companyID)).
		Select("leave_balance").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return row.LeaveBalance, true, nil
}
