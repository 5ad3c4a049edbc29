package request

import (
	"context"
	"database/sql"
	"errors"
	"time"

	requesterrors "go-hris-payroll/internal/request/errors"
	"go-hris-payroll/internal/shared/txdb"
	"go-hris-payroll/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Request) error
	FindByID(ctx context.Context, companyID, id string) (*Request, error)
	FindAll(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]Request, error)
	UpdatePending(ctx context.Context, r *Request) (int64, error)
	TransitionFromPending(ctx context.Context, companyID, id string, change StatusChange) (int64, error)
}

// StatusChange is the reviewer (or owner, on cancel) side of a transition.
type StatusChange struct {
	Status     string
	ReviewerID *uuid.UUID
	Comment    *string
	At         time.Time
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: txdb.Bind(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Take(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, requesterrors.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindAll lists requests newest first. An empty employeeID lists the whole
// tenant.
func (r *repository) FindAll(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]Request, error) {
	db := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if employeeID != "" {
		db = db.Where("employee_id = ?", employeeID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}

	var rows []Request
	err := db.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// UpdatePending rewrites the editable fields while the request is still
// PENDING and reports how many rows changed.
func (r *repository) UpdatePending(ctx context.Context, req *Request) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Request{}).
		Scopes(tenant.Scope(req.CompanyID.String())).
		Where("id = ?", req.ID).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"type":           req.Type,
			"start_date":     req.StartDate,
			"end_date":       req.EndDate,
			"amount":         req.Amount,
			"attachment_ref": req.AttachmentRef,
			"reason":         req.Reason,
			"updated_at":     req.UpdatedAt,
		})
	return res.RowsAffected, res.Error
}

// TransitionFromPending moves a PENDING request to change.Status. Zero rows
// means someone else decided it first.
func (r *repository) TransitionFromPending(ctx context.Context, companyID, id string, change StatusChange) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Request{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":           change.Status,
			"reviewer_id":      change.ReviewerID,
			"reviewer_comment": change.Comment,
			"reviewed_at":      change.At,
			"updated_at":       change.At,
		})
	return res.RowsAffected, res.Error
}
