package employee

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	employeeerrors "go-hris-payroll/internal/employee/errors"
	"go-hris-payroll/internal/events"
	"go-hris-payroll/internal/messaging/kafka"
	"go-hris-payroll/internal/shared/apperror"
	"go-hris-payroll/internal/shared/contextutil"
	"go-hris-payroll/internal/shared/counter"
	"go-hris-payroll/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxManagerDepth bounds the ancestor walk when assigning a manager.
const maxManagerDepth = 64

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, id tenant.Identity, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, id tenant.Identity) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id tenant.Identity, employeeID string) (EmployeeResponse, error)
	AssignManager(ctx context.Context, id tenant.Identity, employeeID string, req AssignManagerRequest) (EmployeeResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		now:     time.Now,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, id tenant.Identity, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", id.CompanyID),
		zap.String("email", req.Email),
	)

	companyUUID, err := uuid.Parse(id.CompanyID)
	if err != nil {
		return EmployeeResponse{}, apperror.InvalidField("company_id")
	}

	var hireDate *time.Time
	if req.HireDate != "" {
		d, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
		}
		hireDate = &d
	}

	var managerID *uuid.UUID
	if req.ManagerID != nil && *req.ManagerID != "" {
		m, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
		}
		managerID = &m
	}

	leaveBalance := DefaultLeaveBalance
	if req.LeaveBalance != nil {
		leaveBalance = *req.LeaveBalance
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if managerID != nil {
		if _, found, err := qtx.ManagerOf(ctx, id.CompanyID, *managerID); err != nil {
			return EmployeeResponse{}, err
		} else if !found {
			return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
		}
	}

	next, err := s.counter.WithTx(tx).GetNextValue(ctx, id.CompanyID, counter.TypeEmployeeNumber)
	if err != nil {
		s.logger.Error("create employee generate number failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		EmployeeNumber: fmt.Sprintf("EMP-%03d", next),
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		HireDate:       hireDate,
		ManagerID:      managerID,
		LeaveBalance:   leaveBalance,
		IsActive:       true,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Warn("create employee persist failed",
			zap.String("request_id", rid),
			zap.String("employee_number", empl.EmployeeNumber),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	payload := events.EmployeeCreatedEvent{
		EventType:      events.EmployeeCreatedType,
		EmployeeID:     empl.ID.String(),
		CompanyID:      id.CompanyID,
		EmployeeNumber: empl.EmployeeNumber,
		OccurredAt:     s.now().UTC(),
	}
	event, err := kafka.NewOutboxEvent(id.CompanyID, "employee", empl.ID.String(),
		events.EmployeeCreatedType, events.EmployeeLifecycleTopic, payload)
	if err != nil {
		return EmployeeResponse{}, err
	}
	event.RequestID = rid
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("create employee outbox persist failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, id tenant.Identity) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAllByCompany(ctx, id.CompanyID)
	if err != nil {
		return nil, err
	}

	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

// GetByID lets non-privileged callers read only their own record.
func (s *service) GetByID(ctx context.Context, id tenant.Identity, employeeID string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if !id.IsPrivileged() && employeeID != id.EmployeeID {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	e, err := s.repo.FindByIDAndCompany(ctx, id.CompanyID, employeeID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

// AssignManager walks the new manager's reporting chain upwards, locking each
// row, and refuses the write if the chain reaches employeeID.
func (s *service) AssignManager(ctx context.Context, id tenant.Identity, employeeID string, req AssignManagerRequest) (EmployeeResponse, error) {
	target, err := uuid.Parse(employeeID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	var managerID *uuid.UUID
	if req.ManagerID != nil && *req.ManagerID != "" {
		m, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
		}
		if m == target {
			return EmployeeResponse{}, employeeerrors.ErrSelfManagement
		}
		managerID = &m
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, found, err := qtx.ManagerOf(ctx, id.CompanyID, target); err != nil {
		return EmployeeResponse{}, err
	} else if !found {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	if managerID != nil {
		if err := s.checkChain(ctx, qtx, id.CompanyID, target, *managerID); err != nil {
			s.logger.Warn("assign manager rejected",
				zap.String("company_id", id.CompanyID),
				zap.String("employee_id", employeeID),
				zap.String("manager_id", managerID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := qtx.UpdateManager(ctx, id.CompanyID, target, managerID); err != nil {
		return EmployeeResponse{}, err
	}

	e, err := qtx.FindByIDAndCompany(ctx, id.CompanyID, employeeID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("manager assigned",
		zap.String("company_id", id.CompanyID),
		zap.String("employee_id", employeeID),
		zap.Any("manager_id", managerID),
	)
	return mapToResponse(*e), nil
}

func (s *service) checkChain(ctx context.Context, repo Repository, companyID string, target, manager uuid.UUID) error {
	cur := manager
	for depth := 0; depth < maxManagerDepth; depth++ {
		if cur == target {
			return employeeerrors.ErrManagerCycle
		}
		parent, found, err := repo.ManagerOf(ctx, companyID, cur)
		if err != nil {
			return err
		}
		if !found {
			if depth == 0 {
				return employeeerrors.ErrManagerNotFound
			}
			return nil
		}
		if parent == nil {
			return nil
		}
		cur = *parent
	}
	return employeeerrors.ErrManagerChainTooDeep
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID.String(),
		CompanyID:      e.CompanyID.String(),
		EmployeeNumber: e.EmployeeNumber,
		FullName:       e.FullName,
		Email:          e.Email,
		Phone:          e.Phone,
		LeaveBalance:   e.LeaveBalance,
		IsActive:       e.IsActive,
	}
	if e.HireDate != nil {
		v := e.HireDate.Format("2006-01-02")
		resp.HireDate = &v
	}
	if e.ManagerID != nil {
		v := e.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}
