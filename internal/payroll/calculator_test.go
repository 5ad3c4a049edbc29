package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		in            CalculationInput
		wantAbsent    int
		wantDeduction string
		wantNet       string
		wantPayable   bool
	}{
		{
			name:          "two absent days",
			in:            CalculationInput{BaseSalary: dec("3000"), WorkingDays: 22, AttendedDays: 20},
			wantAbsent:    2,
			wantDeduction: "200",
			wantNet:       "2800",
			wantPayable:   true,
		},
		{
			name: "allowances and fixed deductions",
			in: CalculationInput{
				BaseSalary:         dec("3000"),
				HousingAllowance:   dec("500"),
				TransportAllowance: dec("250.50"),
				OtherAllowances:    dec("100"),
				FixedDeductions:    dec("75.25"),
				WorkingDays:        22,
				AttendedDays:       22,
			},
			wantAbsent:    0,
			wantDeduction: "0",
			wantNet:       "3775.25",
			wantPayable:   true,
		},
		{
			name:          "attended more than working days",
			in:            CalculationInput{BaseSalary: dec("3000"), WorkingDays: 20, AttendedDays: 23},
			wantAbsent:    0,
			wantDeduction: "0",
			wantNet:       "3000",
			wantPayable:   true,
		},
		{
			name:          "deduction rounds half up",
			in:            CalculationInput{BaseSalary: dec("1005"), WorkingDays: 22, AttendedDays: 21},
			wantAbsent:    1,
			wantDeduction: "34",
			wantNet:       "971",
			wantPayable:   true,
		},
		{
			name:          "deduction rounds down below half",
			in:            CalculationInput{BaseSalary: dec("1000"), WorkingDays: 22, AttendedDays: 21},
			wantAbsent:    1,
			wantDeduction: "33",
			wantNet:       "967",
			wantPayable:   true,
		},
		{
			name:          "never attended",
			in:            CalculationInput{BaseSalary: dec("900"), WorkingDays: 30, AttendedDays: 0},
			wantAbsent:    30,
			wantDeduction: "900",
			wantNet:       "0",
			wantPayable:   false,
		},
		{
			name:          "deductions exceed pay",
			in:            CalculationInput{BaseSalary: dec("1000"), FixedDeductions: dec("1200"), WorkingDays: 22, AttendedDays: 22},
			wantAbsent:    0,
			wantDeduction: "0",
			wantNet:       "-200",
			wantPayable:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.in)

			assert.Equal(t, tt.wantAbsent, got.AbsentDays)
			assert.True(t, got.AbsenceDeduction.Equal(dec(tt.wantDeduction)), "deduction %s", got.AbsenceDeduction)
			assert.True(t, got.NetSalary.Equal(dec(tt.wantNet)), "net %s", got.NetSalary)
			assert.Equal(t, tt.wantPayable, got.Payable())
		})
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	in := CalculationInput{BaseSalary: dec("4321.77"), HousingAllowance: dec("12.3"), WorkingDays: 21, AttendedDays: 17}
	assert.Equal(t, Calculate(in), Calculate(in))
}

func TestWorkingDaysInMonth(t *testing.T) {
	// November 2025 starts on a Saturday: 30 days, 4 Fridays, 5 Saturdays.
	assert.Equal(t, 21, WorkingDaysInMonth(2025, 11))
	// February 2024 is a leap month starting on Thursday.
	assert.Equal(t, 21, WorkingDaysInMonth(2024, 2))
	// January 2026 starts on Thursday: 5 Fridays, 5 Saturdays.
	assert.Equal(t, 21, WorkingDaysInMonth(2026, 1))
	// June 2025 starts on Sunday: 4 Fridays, 4 Saturdays.
	assert.Equal(t, 22, WorkingDaysInMonth(2025, 6))
}

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, 30, lastDayOfMonth(2025, 11).Day())
	assert.Equal(t, 29, lastDayOfMonth(2024, 2).Day())
	assert.Equal(t, 31, lastDayOfMonth(2025, 12).Day())
	assert.Equal(t, 28, daysInMonth(2025, 2))
}
