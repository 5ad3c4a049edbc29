package employeesalary

import (
	"context"
	"database/sql"
	"time"

	employeesalaryerrors "go-hris-payroll/internal/employeesalary/errors"
	"go-hris-payroll/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_salary_service.go -destination=mock/employee_salary_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, id tenant.Identity, employeeID string, req UpsertSalaryProfileRequest) (SalaryProfileResponse, error)
	GetByEmployee(ctx context.Context, id tenant.Identity, employeeID string) (SalaryProfileResponse, error)
	EnsureDefault(ctx context.Context, companyID, employeeID string) (bool, error)
	ProfilesByEmployee(ctx context.Context, companyID string) (map[string]Compensation, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Upsert(ctx context.Context, id tenant.Identity, employeeID string, req UpsertSalaryProfileRequest) (SalaryProfileResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return SalaryProfileResponse{}, employeesalaryerrors.ErrInvalidEmployeeID
	}
	companyUUID, err := uuid.Parse(id.CompanyID)
	if err != nil {
		return SalaryProfileResponse{}, employeesalaryerrors.ErrInvalidEmployeeID
	}

	profile := &SalaryProfile{
		ID:                 uuid.New(),
		CompanyID:          companyUUID,
		EmployeeID:         employeeUUID,
		BaseSalary:         amountOrZero(req.BaseSalary),
		HousingAllowance:   amountOrZero(req.HousingAllowance),
		TransportAllowance: amountOrZero(req.TransportAllowance),
		OtherAllowances:    amountOrZero(req.OtherAllowances),
		Deductions:         amountOrZero(req.Deductions),
		UpdatedAt:          time.Now().UTC(),
	}
	for _, amount := range []decimal.Decimal{
		profile.BaseSalary, profile.HousingAllowance, profile.TransportAllowance,
		profile.OtherAllowances, profile.Deductions,
	} {
		if amount.IsNegative() {
			return SalaryProfileResponse{}, employeesalaryerrors.ErrNegativeAmount
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, id.CompanyID, employeeID)
	if err != nil {
		return SalaryProfileResponse{}, err
	}
	if !exists {
		return SalaryProfileResponse{}, employeesalaryerrors.ErrEmployeeNotFound
	}

	if err := qtx.Upsert(ctx, profile); err != nil {
		s.logger.Error("upsert salary profile failed",
			zap.String("company_id", id.CompanyID),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return SalaryProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryProfileResponse{}, err
	}

	s.logger.Info("salary profile saved",
		zap.String("company_id", id.CompanyID),
		zap.String("employee_id", employeeID),
		zap.String("actor_id", id.EmployeeID),
	)
	return mapToResponse(*profile), nil
}

func (s *service) GetByEmployee(ctx context.Context, id tenant.Identity, employeeID string) (SalaryProfileResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SalaryProfileResponse{}, employeesalaryerrors.ErrInvalidEmployeeID
	}

	profile, err := s.repo.FindByEmployee(ctx, id.CompanyID, employeeID)
	if err != nil {
		return SalaryProfileResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*profile), nil
}

// EnsureDefault gives a newly created employee a zero profile. Replayed
// events find the profile already present and change nothing.
func (s *service) EnsureDefault(ctx context.Context, companyID, employeeID string) (bool, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return false, employeesalaryerrors.ErrInvalidEmployeeID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return false, employeesalaryerrors.ErrInvalidEmployeeID
	}

	created, err := s.repo.CreateIfMissing(ctx, &SalaryProfile{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
	})
	if err != nil {
		return false, mapRepositoryError(err)
	}
	return created, nil
}

func (s *service) ProfilesByEmployee(ctx context.Context, companyID string) (map[string]Compensation, error) {
	profiles, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	res := make(map[string]Compensation, len(profiles))
	for _, p := range profiles {
		res[p.EmployeeID.String()] = p.Compensation()
	}
	return res, nil
}

func amountOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

func mapToResponse(p SalaryProfile) SalaryProfileResponse {
	return SalaryProfileResponse{
		ID:                 p.ID.String(),
		EmployeeID:         p.EmployeeID.String(),
		BaseSalary:         p.BaseSalary,
		HousingAllowance:   p.HousingAllowance,
		TransportAllowance: p.TransportAllowance,
		OtherAllowances:    p.OtherAllowances,
		Deductions:         p.Deductions,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          p.UpdatedAt.Format(time.RFC3339),
	}
}
