package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return gdb, mock
}

func TestRepository_CloseOpenSession_OnlyTouchesOpenRow(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)

	companyID := uuid.NewString()
	employeeID := uuid.NewString()
	day := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE "attendances" SET .* WHERE company_id = \$\d+ AND employee_id = \$\d+ AND attendance_date = \$\d+ AND check_out_time IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.CloseOpenSession(context.Background(), companyID, employeeID, day, day.Add(17*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByEmployeeAndDate_NotFoundIsNil(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "attendances" WHERE company_id = \$1 AND employee_id = \$2 AND attendance_date = \$3`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	row, err := repo.FindByEmployeeAndDate(context.Background(), uuid.NewString(), uuid.NewString(), time.Now())
	assert.NoError(t, err)
	assert.Nil(t, row)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountAttendedDaysByEmployee(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)

	mock.ExpectQuery(`SELECT employee_id, COUNT\(DISTINCT attendance_date\) AS days FROM "attendances" WHERE company_id = .* AND status IN .* GROUP BY .*employee_id`).
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "days"}).
			AddRow("e-1", 20).
			AddRow("e-2", 18))

	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	counts, err := repo.CountAttendedDaysByEmployee(context.Background(), uuid.NewString(), from, from.AddDate(0, 1, 0))
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"e-1": 20, "e-2": 18}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
