package counter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-hris-payroll/internal/shared/txdb"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const TypeEmployeeNumber = "employee_number"

// CompanyCounter is one per-tenant sequence.
type CompanyCounter struct {
	CompanyID   uuid.UUID `gorm:"column:company_id;type:uuid;primaryKey"`
	CounterType string    `gorm:"column:counter_type;type:varchar(50);primaryKey"`
	LastValue   int64     `gorm:"column:last_value;not null;default:0"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (CompanyCounter) TableName() string {
	return "company_counters"
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
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

// GetNextValue bumps the sequence with a single upsert. On a transaction
// the counter row stays locked until commit, so two creators in the same
// tenant queue up instead of both reading the same value.
func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return 0, fmt.Errorf("counter company id: %w", err)
	}

	row := CompanyCounter{
		CompanyID:   companyUUID,
		CounterType: counterType,
		LastValue:   1,
		UpdatedAt:   time.Now().UTC(),
	}
	err = r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "company_id"}, {Name: "counter_type"}},
				DoUpdates: clause.Assignments(map[string]any{
					"last_value": gorm.Expr("company_counters.last_value + 1"),
					"updated_at": gorm.Expr("now()"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "last_value"}}},
		).
		Create(&row).Error
	if err != nil {
		return 0, err
	}

	return row.LastValue, nil
}
