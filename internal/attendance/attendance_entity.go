package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusHalfDay = "half_day"
	StatusAbsent  = "absent"
)

// AttendedStatuses are the statuses that count as an attended day.
var AttendedStatuses = []string{StatusPresent, StatusLate, StatusHalfDay}

const (
	SessionOut       = "out"
	SessionIn        = "in"
	SessionCompleted = "completed"
)

type Attendance struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID  `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_attendances_employee_date,priority:1"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendances_employee_date,priority:2"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendances_employee_date,priority:3"`
	CheckInTime    time.Time  `gorm:"column:check_in_time;type:timestamptz;not null"`
	CheckOutTime   *time.Time `gorm:"column:check_out_time;type:timestamptz"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:present"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
