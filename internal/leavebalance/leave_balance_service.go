package leavebalance

import (
	"context"
	"database/sql"

	leavebalanceerrors "go-hris-payroll/internal/leavebalance/errors"
	"go-hris-payroll/internal/tenant"

	"go.uber.org/zap"
)

// Ledger is the leave balance of every employee. The balance only goes down;
// there is no accrual path.
//
//go:generate mockgen -source=leave_balance_service.go -destination=mock/leave_balance_service_mock.go -package=mock
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	DecrementIfSufficient(ctx context.Context, companyID, employeeID string, days int) error
	Balance(ctx context.Context, companyID, employeeID string) (int, error)
	MyBalance(ctx context.Context, id tenant.Identity) (BalanceResponse, error)
}

type ledger struct {
	repo   Repository
	logger *zap.Logger
}

func NewLedger(repo Repository, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("leavebalance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.ledger")
	}
	return &ledger{repo: repo, logger: l}
}

func (l *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{repo: l.repo.WithTx(tx), logger: l.logger}
}

// DecrementIfSufficient subtracts days only while the balance covers them.
// Concurrent callers are serialised by the row lock of the single UPDATE, so
// the balance never goes below zero. On failure the row is re-read to tell a
// missing employee from a short balance.
func (l *ledger) DecrementIfSufficient(ctx context.Context, companyID, employeeID string, days int) error {
	if days <= 0 {
		return leavebalanceerrors.ErrInvalidDays
	}

	ok, err := l.repo.DecrementIfSufficient(ctx, companyID, employeeID, days)
	if err != nil {
		return err
	}
	if ok {
		l.logger.Info("leave balance decremented",
			zap.String("company_id", companyID),
			zap.String("employee_id", employeeID),
			zap.Int("days", days),
		)
		return nil
	}

	available, found, err := l.repo.Balance(ctx, companyID, employeeID)
	if err != nil {
		return err
	}
	if !found {
		return leavebalanceerrors.ErrEmployeeNotFound
	}
	return leavebalanceerrors.Insufficient(days, available)
}

func (l *ledger) Balance(ctx context.Context, companyID, employeeID string) (int, error) {
	balance, found, err := l.repo.Balance(ctx, companyID, employeeID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, leavebalanceerrors.ErrEmployeeNotFound
	}
	return balance, nil
}

func (l *ledger) MyBalance(ctx context.Context, id tenant.Identity) (BalanceResponse, error) {
	balance, err := l.Balance(ctx, id.CompanyID, id.EmployeeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	return BalanceResponse{EmployeeID: id.EmployeeID, LeaveBalance: balance}, nil
}
