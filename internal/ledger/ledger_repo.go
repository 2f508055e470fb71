package ledger

import (
	"context"
	"database/sql"
	"time"

	"go-leave/internal/shared/gormtx"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// LockBalance reads the row with SELECT ... FOR UPDATE. It returns
	// gorm.ErrRecordNotFound when the employee has no row for the type.
	LockBalance(ctx context.Context, employeeID uuid.UUID, leaveTypeKey string) (*Balance, error)
	// EnsureBalance inserts a row with the given balance unless one exists
	// and reports whether it inserted.
	EnsureBalance(ctx context.Context, employeeID uuid.UUID, leaveTypeKey string, initial decimal.Decimal) (bool, error)
	UpdateBalance(ctx context.Context, b *Balance) error
	CreateEntry(ctx context.Context, e *Entry) error
	FindBalances(ctx context.Context, employeeID uuid.UUID) ([]Balance, error)
	FindEntries(ctx context.Context, employeeID uuid.UUID) ([]Entry, error)
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

func (r *repository) LockBalance(ctx context.Context, employeeID uuid.UUID, leaveTypeKey string) (*Balance, error) {
	var b Balance
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND leave_type_key = ?", employeeID, leaveTypeKey).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) EnsureBalance(ctx context.Context, employeeID uuid.UUID, leaveTypeKey string, initial decimal.Decimal) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Balance{
			EmployeeID:   employeeID,
			LeaveTypeKey: leaveTypeKey,
			Balance:      initial,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) UpdateBalance(ctx context.Context, b *Balance) error {
	b.UpdatedAt = time.Now()
	return r.conn(ctx).
		Model(&Balance{}).
		Where("employee_id = ? AND leave_type_key = ?", b.EmployeeID, b.LeaveTypeKey).
		Updates(map[string]any{
			"balance":    b.Balance,
			"updated_at": b.UpdatedAt,
		}).Error
}

func (r *repository) CreateEntry(ctx context.Context, e *Entry) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) FindBalances(ctx context.Context, employeeID uuid.UUID) ([]Balance, error) {
	var balances []Balance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("leave_type_key ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindEntries(ctx context.Context, employeeID uuid.UUID) ([]Entry, error) {
	var entries []Entry
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
