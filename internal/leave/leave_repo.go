package leave

import (
	"context"
	"database/sql"

	"go-leave/internal/shared/gormtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, filter Filter) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	// LockByID reads the request with SELECT ... FOR UPDATE.
	LockByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	// LockEmployee takes a transaction-scoped advisory lock so overlap
	// checks for one employee run one at a time.
	LockEmployee(ctx context.Context, employeeID uuid.UUID) error
	// FindActiveByEmployee returns the employee's pending and approved
	// requests ordered by start date, skipping excludeID when set.
	FindActiveByEmployee(ctx context.Context, employeeID uuid.UUID, excludeID *uuid.UUID) ([]LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return gormtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	q := r.conn(ctx).Model(&LeaveRequest{})
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.LeaveTypeKey != "" {
		q = q.Where("leave_type_key = ?", filter.LeaveTypeKey)
	}
	err := q.Order("start_date DESC").Order("created_at DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := r.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) LockByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) LockEmployee(ctx context.Context, employeeID uuid.UUID) error {
	return r.conn(ctx).Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", employeeID.String()).Error
}

func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID uuid.UUID, excludeID *uuid.UUID) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	q := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved})
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	err := q.Order("start_date ASC").Order("created_at ASC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&LeaveRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
