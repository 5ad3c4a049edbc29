package request

import (
	"context"
	"database/sql"
	"math"
	"time"

	"go-hris-payroll/internal/events"
	"go-hris-payroll/internal/leavebalance"
	"go-hris-payroll/internal/messaging/kafka"
	requesterrors "go-hris-payroll/internal/request/errors"
	"go-hris-payroll/internal/shared/apperror"
	"go-hris-payroll/internal/shared/contextutil"
	"go-hris-payroll/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, id tenant.Identity, req CreateRequestRequest) (RequestResponse, error)
	GetAll(ctx context.Context, id tenant.Identity, filter ListFilter) ([]RequestResponse, error)
	GetByID(ctx context.Context, id tenant.Identity, requestID string) (RequestResponse, error)
	Update(ctx context.Context, id tenant.Identity, requestID string, req UpdateRequestRequest) (RequestResponse, error)
	UpdateStatus(ctx context.Context, id tenant.Identity, requestID string, req UpdateStatusRequest) (RequestResponse, error)
	Cancel(ctx context.Context, id tenant.Identity, requestID string) (RequestResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	ledger leavebalance.Ledger
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	ledger leavebalance.Ledger,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{db: db, repo: repo, ledger: ledger, outbox: outbox, now: time.Now, logger: l}
}

func (s *service) Create(ctx context.Context, id tenant.Identity, req CreateRequestRequest) (RequestResponse, error) {
	companyUUID, err := uuid.Parse(id.CompanyID)
	if err != nil {
		return RequestResponse{}, apperror.InvalidField("company_id")
	}
	employeeUUID, err := uuid.Parse(id.EmployeeID)
	if err != nil {
		return RequestResponse{}, apperror.InvalidField("employee_id")
	}

	r := &Request{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		Status:        StatusPending,
		AttachmentRef: req.AttachmentRef,
		Reason:        req.Reason,
	}
	if err := applyFields(r, req); err != nil {
		return RequestResponse{}, err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.Error("create request failed",
			zap.String("company_id", id.CompanyID),
			zap.String("employee_id", id.EmployeeID),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	contextutil.Logger(ctx, s.logger).Info("request created",
		zap.String("employee_request_id", r.ID.String()),
		zap.String("company_id", id.CompanyID),
		zap.String("type", r.Type),
	)
	return mapToResponse(*r), nil
}

// GetAll returns the caller's own requests, or the whole tenant's for
// privileged roles.
func (s *service) GetAll(ctx context.Context, id tenant.Identity, filter ListFilter) ([]RequestResponse, error) {
	employeeID := id.EmployeeID
	if id.IsPrivileged() {
		employeeID = ""
	}

	rows, err := s.repo.FindAll(ctx, id.CompanyID, employeeID, filter)
	if err != nil {
		return nil, err
	}

	res := make([]RequestResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id tenant.Identity, requestID string) (RequestResponse, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return RequestResponse{}, requesterrors.ErrRequestNotFound
	}

	r, err := s.repo.FindByID(ctx, id.CompanyID, requestID)
	if err != nil {
		return RequestResponse{}, err
	}
	if r.EmployeeID.String() != id.EmployeeID && !id.IsPrivileged() {
		return RequestResponse{}, requesterrors.ErrRequestNotFound
	}
	return mapToResponse(*r), nil
}

func (s *service) Update(ctx context.Context, id tenant.Identity, requestID string, req UpdateRequestRequest) (RequestResponse, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return RequestResponse{}, requesterrors.ErrRequestNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := qtx.FindByID(ctx, id.CompanyID, requestID)
	if err != nil {
		return RequestResponse{}, err
	}
	if r.EmployeeID.String() != id.EmployeeID {
		return RequestResponse{}, requesterrors.ErrNotOwner
	}
	if r.Status != StatusPending {
		return RequestResponse{}, requesterrors.ErrRequestLocked
	}

	r.AttachmentRef = req.AttachmentRef
	r.Reason = req.Reason
	r.UpdatedAt = s.now().UTC()
	if err := applyFields(r, req); err != nil {
		return RequestResponse{}, err
	}

	affected, err := qtx.UpdatePending(ctx, r)
	if err != nil {
		return RequestResponse{}, err
	}
	if affected == 0 {
		return RequestResponse{}, requesterrors.ErrRequestLocked
	}

	if err := tx.Commit(); err != nil {
		return RequestResponse{}, err
	}
	return mapToResponse(*r), nil
}

// UpdateStatus decides a PENDING request. Approving a LEAVE request takes the
// days from the employee's balance in the same transaction; when the balance
// is short the whole decision rolls back and the request stays PENDING.
func (s *service) UpdateStatus(ctx context.Context, id tenant.Identity, requestID string, req UpdateStatusRequest) (RequestResponse, error) {
	if req.Status != StatusApproved && req.Status != StatusRejected {
		return RequestResponse{}, requesterrors.ErrInvalidStatus
	}
	if _, err := uuid.Parse(requestID); err != nil {
		return RequestResponse{}, requesterrors.ErrRequestNotFound
	}
	reviewerID, err := uuid.Parse(id.EmployeeID)
	if err != nil {
		return RequestResponse{}, apperror.InvalidField("employee_id")
	}

	log := contextutil.Logger(ctx, s.logger)
	log.Debug("update request status requested",
		zap.String("employee_request_id", requestID),
		zap.String("company_id", id.CompanyID),
		zap.String("reviewer_id", id.EmployeeID),
		zap.String("target_status", req.Status),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := qtx.FindByID(ctx, id.CompanyID, requestID)
	if err != nil {
		return RequestResponse{}, err
	}
	if r.EmployeeID == reviewerID {
		log.Warn("self review rejected", zap.String("employee_request_id", requestID))
		return RequestResponse{}, requesterrors.ErrSelfReview
	}
	if r.Status != StatusPending {
		log.Warn("request status transition rejected",
			zap.String("employee_request_id", requestID),
			zap.String("from_status", r.Status),
			zap.String("to_status", req.Status),
		)
		return RequestResponse{}, requesterrors.ErrInvalidTransition
	}

	days := 0
	if req.Status == StatusApproved && r.Type == TypeLeave {
		days = r.LeaveDays()
		if err := s.ledger.WithTx(tx).DecrementIfSufficient(ctx, id.CompanyID, r.EmployeeID.String(), days); err != nil {
			log.Warn("leave approval failed",
				zap.String("employee_request_id", requestID),
				zap.Int("days", days),
				zap.Error(err),
			)
			return RequestResponse{}, err
		}
	}

	change := StatusChange{
		Status:     req.Status,
		ReviewerID: &reviewerID,
		Comment:    req.Comment,
		At:         s.now().UTC(),
	}
	if err := s.transition(ctx, tx, qtx, r, change, days); err != nil {
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update request status commit failed", zap.String("employee_request_id", requestID), zap.Error(err))
		return RequestResponse{}, err
	}

	log.Info("request status updated",
		zap.String("employee_request_id", requestID),
		zap.String("status", r.Status),
		zap.Int("leave_days", days),
	)
	return mapToResponse(*r), nil
}

func (s *service) Cancel(ctx context.Context, id tenant.Identity, requestID string) (RequestResponse, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return RequestResponse{}, requesterrors.ErrRequestNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := qtx.FindByID(ctx, id.CompanyID, requestID)
	if err != nil {
		return RequestResponse{}, err
	}
	if r.EmployeeID.String() != id.EmployeeID {
		return RequestResponse{}, requesterrors.ErrNotOwner
	}
	if r.Status != StatusPending {
		return RequestResponse{}, requesterrors.ErrInvalidTransition
	}

	change := StatusChange{Status: StatusCancelled, At: s.now().UTC()}
	if err := s.transition(ctx, tx, qtx, r, change, 0); err != nil {
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RequestResponse{}, err
	}

	contextutil.Logger(ctx, s.logger).Info("request cancelled", zap.String("employee_request_id", requestID))
	return mapToResponse(*r), nil
}

// transition applies change to r inside tx and records the outbox event.
func (s *service) transition(ctx context.Context, tx *sql.Tx, qtx Repository, r *Request, change StatusChange, days int) error {
	affected, err := qtx.TransitionFromPending(ctx, r.CompanyID.String(), r.ID.String(), change)
	if err != nil {
		return err
	}
	if affected == 0 {
		return requesterrors.ErrInvalidTransition
	}

	from := r.Status
	r.Status = change.Status
	r.ReviewerID = change.ReviewerID
	r.ReviewerComment = change.Comment
	r.ReviewedAt = &change.At
	r.UpdatedAt = change.At

	payload := events.RequestStatusChangedEvent{
		EventType:   events.RequestStatusChangedType,
		RequestID:   r.ID.String(),
		CompanyID:   r.CompanyID.String(),
		EmployeeID:  r.EmployeeID.String(),
		RequestType: r.Type,
		FromStatus:  from,
		ToStatus:    r.Status,
		LeaveDays:   days,
		OccurredAt:  change.At,
	}
	if change.ReviewerID != nil {
		payload.ReviewerID = change.ReviewerID.String()
	}

	event, err := kafka.NewOutboxEvent(payload.CompanyID, "request", payload.RequestID,
		events.RequestStatusChangedType, events.RequestLifecycleTopic, payload)
	if err != nil {
		return err
	}
	event.RequestID = contextutil.GetRequestID(ctx)
	return s.outbox.WithTx(tx).Create(ctx, event)
}

// applyFields validates the type-specific fields of req and copies them to r.
func applyFields(r *Request, req CreateRequestRequest) error {
	r.Type = req.Type
	r.StartDate, r.EndDate, r.Amount = nil, nil, nil

	if req.StartDate != "" || req.EndDate != "" {
		if req.StartDate == "" || req.EndDate == "" {
			return requesterrors.ErrDateRangeRequired
		}
		start, err := parseDate(req.StartDate)
		if err != nil {
			return err
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			return err
		}
		if start.After(end) {
			return requesterrors.ErrInvalidDateRange
		}
		r.StartDate, r.EndDate = &start, &end
	}

	switch req.Type {
	case TypeLeave, TypeSickLeave:
		if r.StartDate == nil {
			return requesterrors.ErrDateRangeRequired
		}
	case TypeLoan:
		if req.Amount == nil || !req.Amount.IsPositive() {
			return requesterrors.ErrAmountRequired
		}
	}
	if req.Amount != nil {
		amount := *req.Amount
		r.Amount = &amount
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

// inclusiveDays counts calendar days from start to end, both included.
func inclusiveDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

func mapToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:              r.ID.String(),
		EmployeeID:      r.EmployeeID.String(),
		Type:            r.Type,
		Status:          r.Status,
		Days:            r.LeaveDays(),
		Amount:          r.Amount,
		AttachmentRef:   r.AttachmentRef,
		Reason:          r.Reason,
		ReviewerComment: r.ReviewerComment,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.StartDate != nil {
		v := r.StartDate.Format(dateLayout)
		resp.StartDate = &v
	}
	if r.EndDate != nil {
		v := r.EndDate.Format(dateLayout)
		resp.EndDate = &v
	}
	if r.ReviewerID != nil {
		v := r.ReviewerID.String()
		resp.ReviewerID = &v
	}
	if r.ReviewedAt != nil {
		v := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}
