package attendance

import (
	"errors"

	attendanceerrors "go-hris-payroll/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendances_employee_date" {
		return attendanceerrors.ErrAlreadyCheckedIn.WithCause(err)
	}

	return err
}
