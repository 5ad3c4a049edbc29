package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	attendanceerrors "go-hris-payroll/internal/attendance/errors"
	"go-hris-payroll/internal/shared/apperror"
	"go-hris-payroll/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn                      func(tx *sql.Tx) Repository
	createFn                      func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn       func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	closeOpenSessionFn            func(ctx context.Context, companyID, employeeID string, date, at time.Time) (int64, error)
	findByEmployeeBetweenFn       func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error)
	countAttendedDaysFn           func(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error)
	countAttendedDaysByEmployeeFn func(ctx context.Context, companyID string, from, to time.Time) (map[string]int, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
}
func (f *fakeRepo) CloseOpenSession(ctx context.Context, companyID, employeeID string, date, at time.Time) (int64, error) {
	return f.closeOpenSessionFn(ctx, companyID, employeeID, date, at)
}
func (f *fakeRepo) FindByEmployeeBetween(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error) {
	return f.findByEmployeeBetweenFn(ctx, companyID, employeeID, from, to)
}
func (f *fakeRepo) CountAttendedDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error) {
	return f.countAttendedDaysFn(ctx, companyID, employeeID, from, to)
}
func (f *fakeRepo) CountAttendedDaysByEmployee(ctx context.Context, companyID string, from, to time.Time) (map[string]int, error) {
	return f.countAttendedDaysByEmployeeFn(ctx, companyID, from, to)
}

// memoryRepo keeps one row per (company, employee, date), like the unique
// index does.
func memoryRepo() *fakeRepo {
	rows := map[string]*Attendance{}
	key := func(companyID, employeeID string, date time.Time) string {
		return companyID + "|" + employeeID + "|" + date.Format(dateLayout)
	}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		k := key(a.CompanyID.String(), a.EmployeeID.String(), a.AttendanceDate)
		if _, ok := rows[k]; ok {
			return mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_attendances_employee_date"})
		}
		cp := *a
		rows[k] = &cp
		return nil
	}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		if row, ok := rows[key(companyID, employeeID, date)]; ok {
			cp := *row
			return &cp, nil
		}
		return nil, nil
	}
	repo.closeOpenSessionFn = func(ctx context.Context, companyID, employeeID string, date, at time.Time) (int64, error) {
		row, ok := rows[key(companyID, employeeID, date)]
		if !ok || row.CheckOutTime != nil {
			return 0, nil
		}
		row.CheckOutTime = &at
		return 1, nil
	}
	return repo
}

func newTestService(db *sql.DB, repo Repository, now time.Time) *service {
	svc := NewService(db, repo, time.UTC).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_CheckInStatusCheckOut(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	id := tenant.Identity{CompanyID: uuid.NewString(), EmployeeID: uuid.NewString(), Role: tenant.RoleEmployee}
	now := time.Date(2025, 11, 3, 8, 30, 0, 0, time.UTC)
	svc := newTestService(db, memoryRepo(), now)
	ctx := context.Background()

	st, err := svc.Status(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, SessionOut, st.Status)
	assert.Nil(t, st.Record)

	mock.ExpectBegin()
	mock.ExpectCommit()
	in, err := svc.CheckIn(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "2025-11-03T08:30:00Z", in.Time)
	assert.Equal(t, StatusPresent, in.Record.Status)
	assert.Equal(t, "2025-11-03", in.Record.AttendanceDate)

	st, err = svc.Status(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, SessionIn, st.Status)
	assert.NotNil(t, st.Record)

	svc.now = func() time.Time { return now.Add(9 * time.Hour) }
	out, err := svc.CheckOut(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "2025-11-03T17:30:00Z", out.Time)

	st, err = svc.Status(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, SessionCompleted, st.Status)
	assert.NotNil(t, st.Record.CheckOutTime)

	_, err = svc.CheckOut(ctx, id)
	assert.ErrorIs(t, err, attendanceerrors.ErrNoOpenSession)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_SecondCheckInSameDayRejected(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	id := tenant.Identity{CompanyID: uuid.NewString(), EmployeeID: uuid.NewString(), Role: tenant.RoleEmployee}
	svc := newTestService(db, memoryRepo(), time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC))

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(context.Background(), id)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckIn(context.Background(), id)
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_ConcurrentInsertMapsToAlreadyCheckedIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := memoryRepo()
	repo.findByEmployeeAndDateFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
		return nil, nil
	}
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		return mapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_attendances_employee_date"})
	}

	id := tenant.Identity{CompanyID: uuid.NewString(), EmployeeID: uuid.NewString()}
	svc := newTestService(db, repo, time.Now())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckIn(context.Background(), id)
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckOut_WithoutCheckIn(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	id := tenant.Identity{CompanyID: uuid.NewString(), EmployeeID: uuid.NewString()}
	svc := newTestService(db, memoryRepo(), time.Now())

	_, err := svc.CheckOut(context.Background(), id)
	assert.ErrorIs(t, err, attendanceerrors.ErrNoOpenSession)
}

func TestService_TodayUsesConfiguredTimezone(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	riyadh, err := time.LoadLocation("Asia/Riyadh")
	assert.NoError(t, err)

	var gotDate time.Time
	repo := memoryRepo()
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		gotDate = a.AttendanceDate
		return nil
	}

	svc := NewService(db, repo, riyadh).(*service)
	// 22:30 UTC on the 2nd is 01:30 on the 3rd in Riyadh.
	svc.now = func() time.Time { return time.Date(2025, 11, 2, 22, 30, 0, 0, time.UTC) }

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.CheckIn(context.Background(), tenant.Identity{CompanyID: uuid.NewString(), EmployeeID: uuid.NewString()})
	assert.NoError(t, err)
	assert.Equal(t, "2025-11-03", gotDate.Format(dateLayout))
}

func TestService_AttendedDayCount(t *testing.T) {
	companyID := uuid.NewString()
	self := uuid.NewString()
	other := uuid.NewString()

	repo := memoryRepo()
	repo.countAttendedDaysFn = func(ctx context.Context, cid, eid string, from, to time.Time) (int, error) {
		assert.Equal(t, companyID, cid)
		assert.Equal(t, "2025-11-01", from.Format(dateLayout))
		assert.Equal(t, "2025-12-01", to.Format(dateLayout))
		return 20, nil
	}
	svc := newTestService(nil, repo, time.Now())
	ctx := context.Background()

	t.Run("self", func(t *testing.T) {
		days, err := svc.AttendedDayCount(ctx, tenant.Identity{CompanyID: companyID, EmployeeID: self, Role: tenant.RoleEmployee}, self, 11, 2025)
		assert.NoError(t, err)
		assert.Equal(t, 20, days)
	})

	t.Run("other employee as employee", func(t *testing.T) {
		_, err := svc.AttendedDayCount(ctx, tenant.Identity{CompanyID: companyID, EmployeeID: self, Role: tenant.RoleEmployee}, other, 11, 2025)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("other employee as hr", func(t *testing.T) {
		days, err := svc.AttendedDayCount(ctx, tenant.Identity{CompanyID: companyID, EmployeeID: self, Role: tenant.RoleHR}, other, 11, 2025)
		assert.NoError(t, err)
		assert.Equal(t, 20, days)
	})

	t.Run("invalid month", func(t *testing.T) {
		_, err := svc.AttendedDayCount(ctx, tenant.Identity{CompanyID: companyID, EmployeeID: self}, self, 13, 2025)
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPeriod)
	})
}

func TestService_AttendedDayCounts(t *testing.T) {
	companyID := uuid.NewString()
	repo := memoryRepo()
	repo.countAttendedDaysByEmployeeFn = func(ctx context.Context, cid string, from, to time.Time) (map[string]int, error) {
		assert.Equal(t, companyID, cid)
		assert.Equal(t, "2024-02-01", from.Format(dateLayout))
		assert.Equal(t, "2024-03-01", to.Format(dateLayout))
		return map[string]int{"a": 18, "b": 22}, nil
	}
	svc := newTestService(nil, repo, time.Now())

	counts, err := svc.AttendedDayCounts(context.Background(), companyID, 2, 2024)
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 18, "b": 22}, counts)

	repo.countAttendedDaysByEmployeeFn = func(ctx context.Context, cid string, from, to time.Time) (map[string]int, error) {
		return nil, errors.New("db down")
	}
	_, err = svc.AttendedDayCounts(context.Background(), companyID, 2, 2024)
	assert.Error(t, err)
}

func TestService_History(t *testing.T) {
	id := tenant.Identity{CompanyID: uuid.NewString(), EmployeeID: uuid.NewString()}
	out := time.Date(2025, 11, 3, 17, 0, 0, 0, time.UTC)

	repo := memoryRepo()
	repo.findByEmployeeBetweenFn = func(ctx context.Context, cid, eid string, from, to time.Time) ([]Attendance, error) {
		assert.Equal(t, id.CompanyID, cid)
		assert.Equal(t, id.EmployeeID, eid)
		return []Attendance{{
			ID:             uuid.New(),
			EmployeeID:     uuid.MustParse(eid),
			AttendanceDate: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
			CheckInTime:    time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC),
			CheckOutTime:   &out,
			Status:         StatusLate,
		}}, nil
	}
	svc := newTestService(nil, repo, time.Now())

	rows, err := svc.History(context.Background(), id, 11, 2025)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, StatusLate, rows[0].Status)
	assert.Equal(t, "2025-11-03T17:00:00Z", *rows[0].CheckOutTime)
}
