package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	FlagNonPositiveNet         = "NON_POSITIVE_NET"
	FlagMissingSalaryProfile   = "MISSING_SALARY_PROFILE"
	FlagUnknownEmployee        = "UNKNOWN_EMPLOYEE"
	dailyRateDivisor     int64 = 30
)

var daysPerMonth = decimal.NewFromInt(dailyRateDivisor)

// CalculationInput is everything the calculator needs for one employee and
// one period.
type CalculationInput struct {
	BaseSalary         decimal.Decimal
	HousingAllowance   decimal.Decimal
	TransportAllowance decimal.Decimal
	OtherAllowances    decimal.Decimal
	FixedDeductions    decimal.Decimal
	WorkingDays        int
	AttendedDays       int
}

type Calculation struct {
	DailyRate        decimal.Decimal
	AbsentDays       int
	AbsenceDeduction decimal.Decimal
	TotalAllowances  decimal.Decimal
	TotalDeductions  decimal.Decimal
	NetSalary        decimal.Decimal
}

// Payable reports whether the line may be committed.
func (c Calculation) Payable() bool {
	return c.NetSalary.IsPositive()
}

// Calculate is deterministic and has no side effects. The daily rate is
// always base/30 regardless of the month's working days; the absence
// deduction is rounded half up to a whole currency unit.
func Calculate(in CalculationInput) Calculation {
	dailyRate := in.BaseSalary.Div(daysPerMonth)

	absent := in.WorkingDays - in.AttendedDays
	if absent < 0 {
		absent = 0
	}

	absenceDeduction := dailyRate.Mul(decimal.NewFromInt(int64(absent))).Round(0)
	allowances := in.HousingAllowance.Add(in.TransportAllowance).Add(in.OtherAllowances)
	deductions := in.FixedDeductions.Add(absenceDeduction)

	return Calculation{
		DailyRate:        dailyRate,
		AbsentDays:       absent,
		AbsenceDeduction: absenceDeduction,
		TotalAllowances:  allowances,
		TotalDeductions:  deductions,
		NetSalary:        in.BaseSalary.Add(allowances).Sub(deductions),
	}
}

// WorkingDaysInMonth counts the days of the month that fall outside the
// Friday/Saturday weekend.
func WorkingDaysInMonth(year, month int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := 0
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Friday && wd != time.Saturday {
			days++
		}
	}
	return days
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// lastDayOfMonth is the payment date of every line item in the period.
func lastDayOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}
