package employee

import (
	"context"
	"database/sql"
	"errors"

	"go-hris-payroll/internal/shared/txdb"
	"go-hris-payroll/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	// ManagerOf locks the employee row and returns its manager. found is
	// false when the employee does not exist in companyID.
	ManagerOf(ctx context.Context, companyID string, id uuid.UUID) (manager *uuid.UUID, found bool, err error)
	UpdateManager(ctx context.Context, companyID string, id uuid.UUID, managerID *uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(e).Error)
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("employee_number ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &e, nil
}

func (r *repository) ManagerOf(ctx context.Context, companyID string, id uuid.UUID) (*uuid.UUID, bool, error) {
	var row struct {
		ManagerID *uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("manager_id").
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return row.ManagerID, true, nil
}

func (r *repository) UpdateManager(ctx context.Context, companyID string, id uuid.UUID, managerID *uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("manager_id", managerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return mapRepositoryError(gorm.ErrRecordNotFound)
	}
	return nil
}
