package attendance

import (
	"context"
	"database/sql"
	"time"

	attendanceerrors "go-hris-payroll/internal/attendance/errors"
	"go-hris-payroll/internal/shared/apperror"
	"go-hris-payroll/internal/shared/contextutil"
	"go-hris-payroll/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, id tenant.Identity) (CheckInResponse, error)
	CheckOut(ctx context.Context, id tenant.Identity) (CheckOutResponse, error)
	Status(ctx context.Context, id tenant.Identity) (StatusResponse, error)
	History(ctx context.Context, id tenant.Identity, month, year int) ([]AttendanceResponse, error)
	AttendedDayCount(ctx context.Context, id tenant.Identity, employeeID string, month, year int) (int, error)
	AttendedDayCounts(ctx context.Context, companyID string, month, year int) (map[string]int, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewService builds the attendance ledger. "Today" is the calendar date in
// loc (UTC when nil).
func NewService(db *sql.DB, repo Repository, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{db: db, repo: repo, loc: loc, now: time.Now, logger: l}
}

func (s *service) today() (time.Time, time.Time) {
	now := s.now().In(s.loc)
	y, m, d := now.Date()
	return now, time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) CheckIn(ctx context.Context, id tenant.Identity) (CheckInResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CheckInResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now, today := s.today()

	existing, err := qtx.FindByEmployeeAndDate(ctx, id.CompanyID, id.EmployeeID, today)
	if err != nil {
		return CheckInResponse{}, err
	}
	if existing != nil {
		return CheckInResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	companyID, err := uuid.Parse(id.CompanyID)
	if err != nil {
		return CheckInResponse{}, apperror.InvalidField("company_id")
	}
	employeeID, err := uuid.Parse(id.EmployeeID)
	if err != nil {
		return CheckInResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      companyID,
		EmployeeID:     employeeID,
		AttendanceDate: today,
		CheckInTime:    now,
		Status:         StatusPresent,
	}

	// A concurrent check-in that passed the lookup still loses on the unique
	// index and comes back as ErrAlreadyCheckedIn.
	if err := qtx.Create(ctx, row); err != nil {
		return CheckInResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CheckInResponse{}, err
	}

	contextutil.Logger(ctx, s.logger).Info("checked in",
		zap.String("company_id", id.CompanyID),
		zap.String("employee_id", id.EmployeeID),
		zap.String("date", today.Format(dateLayout)),
	)

	return CheckInResponse{
		Time:   now.Format(time.RFC3339),
		Record: mapToResponse(*row),
	}, nil
}

func (s *service) CheckOut(ctx context.Context, id tenant.Identity) (CheckOutResponse, error) {
	now, today := s.today()

	affected, err := s.repo.CloseOpenSession(ctx, id.CompanyID, id.EmployeeID, today, now)
	if err != nil {
		return CheckOutResponse{}, err
	}
	if affected == 0 {
		return CheckOutResponse{}, attendanceerrors.ErrNoOpenSession
	}

	contextutil.Logger(ctx, s.logger).Info("checked out",
		zap.String("company_id", id.CompanyID),
		zap.String("employee_id", id.EmployeeID),
		zap.String("date", today.Format(dateLayout)),
	)
	return CheckOutResponse{Time: now.Format(time.RFC3339)}, nil
}

func (s *service) Status(ctx context.Context, id tenant.Identity) (StatusResponse, error) {
	_, today := s.today()

	row, err := s.repo.FindByEmployeeAndDate(ctx, id.CompanyID, id.EmployeeID, today)
	if err != nil {
		return StatusResponse{}, err
	}
	if row == nil {
		return StatusResponse{Status: SessionOut}, nil
	}

	resp := mapToResponse(*row)
	if row.CheckOutTime == nil {
		return StatusResponse{Status: SessionIn, Record: &resp}, nil
	}
	return StatusResponse{Status: SessionCompleted, Record: &resp}, nil
}

func (s *service) History(ctx context.Context, id tenant.Identity, month, year int) ([]AttendanceResponse, error) {
	from, to, err := monthRange(month, year)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByEmployeeBetween(ctx, id.CompanyID, id.EmployeeID, from, to)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// AttendedDayCount counts distinct dates in the month on which employeeID
// was present, late or on a half day. Non-privileged callers may only ask
// about themselves.
func (s *service) AttendedDayCount(ctx context.Context, id tenant.Identity, employeeID string, month, year int) (int, error) {
	if employeeID == "" {
		employeeID = id.EmployeeID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return 0, attendanceerrors.ErrInvalidEmployeeID
	}
	if employeeID != id.EmployeeID && !id.IsPrivileged() {
		return 0, apperror.ErrForbidden
	}

	from, to, err := monthRange(month, year)
	if err != nil {
		return 0, err
	}
	return s.repo.CountAttendedDays(ctx, id.CompanyID, employeeID, from, to)
}

func (s *service) AttendedDayCounts(ctx context.Context, companyID string, month, year int) (map[string]int, error) {
	from, to, err := monthRange(month, year)
	if err != nil {
		return nil, err
	}
	return s.repo.CountAttendedDaysByEmployee(ctx, companyID, from, to)
}

// monthRange returns [first day of month, first day of next month).
func monthRange(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidPeriod
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		CheckInTime:    a.CheckInTime.Format(time.RFC3339),
		Status:         a.Status,
	}
	if a.CheckOutTime != nil {
		v := a.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	return resp
}
