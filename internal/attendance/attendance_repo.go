package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hris-payroll/internal/shared/txdb"
	"go-hris-payroll/internal/tenant"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	CloseOpenSession(ctx context.Context, companyID, employeeID string, date, at time.Time) (int64, error)
	FindByEmployeeBetween(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error)
	CountAttendedDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error)
	CountAttendedDaysByEmployee(ctx context.Context, companyID string, from, to time.Time) (map[string]int, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(a).Error)
}

// FindByEmployeeAndDate returns (nil, nil) when there is no row for date.
func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format(dateLayout)).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CloseOpenSession stamps check_out_time on the row for date only while it
// is still open. It reports how many rows changed (0 or 1).
func (r *repository) CloseOpenSession(ctx context.Context, companyID, employeeID string, date, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format(dateLayout)).
		Where("check_out_time IS NULL").
		Updates(map[string]any{
			"check_out_time": at,
			"updated_at":     at,
		})
	return res.RowsAffected, res.Error
}

// FindByEmployeeBetween lists rows with from <= attendance_date < to.
func (r *repository) FindByEmployeeBetween(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date >= ? AND attendance_date < ?", from.Format(dateLayout), to.Format(dateLayout)).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountAttendedDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error) {
	var days int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", AttendedStatuses).
		Where("attendance_date >= ? AND attendance_date < ?", from.Format(dateLayout), to.Format(dateLayout)).
		Distinct("attendance_date").
		Count(&days).Error
	return int(days), err
}

func (r *repository) CountAttendedDaysByEmployee(ctx context.Context, companyID string, from, to time.Time) (map[string]int, error) {
	var rows []struct {
		EmployeeID string
		Days       int
	}
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(tenant.Scope(companyID)).
		Select("employee_id, COUNT(DISTINCT attendance_date) AS days").
		Where("status IN ?", AttendedStatuses).
		Where("attendance_date >= ? AND attendance_date < ?", from.Format(dateLayout), to.Format(dateLayout)).
		Group("employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.EmployeeID] = row.Days
	}
	return counts, nil
}
