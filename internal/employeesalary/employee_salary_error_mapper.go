package employeesalary

import (
	"errors"

	employeesalaryerrors "go-hris-payroll/internal/employeesalary/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeesalaryerrors.ErrSalaryProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return employeesalaryerrors.ErrEmployeeNotFound.WithCause(err)
	}

	return err
}
