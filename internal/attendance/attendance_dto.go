package attendance

type PeriodQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
}

type SummaryQuery struct {
	EmployeeID string `form:"employee_id"`
	Month      int    `form:"month" binding:"required,min=1,max=12"`
	Year       int    `form:"year" binding:"required,min=2000,max=2100"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	AttendanceDate string  `json:"attendance_date"`
	CheckInTime    string  `json:"check_in_time"`
	CheckOutTime   *string `json:"check_out_time,omitempty"`
	Status         string  `json:"status"`
}

type CheckInResponse struct {
	Time   string             `json:"time"`
	Record AttendanceResponse `json:"record"`
}

type CheckOutResponse struct {
	Time string `json:"time"`
}

type StatusResponse struct {
	Status string              `json:"status"`
	Record *AttendanceResponse `json:"record,omitempty"`
}

type SummaryResponse struct {
	EmployeeID   string `json:"employee_id"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	AttendedDays int    `json:"attended_days"`
}
