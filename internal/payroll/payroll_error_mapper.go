package payroll

import (
	"errors"

	payrollerrors "go-hris-payroll/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_payroll_runs_period", "uq_payroll_line_items_employee_period":
			return payrollerrors.ErrPeriodAlreadyProcessed.WithCause(err)
		}
	}

	return err
}
