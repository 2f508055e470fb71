package leavetype

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_type_repo.go -destination=mock/leave_type_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]LeaveType, error)
	FindByKey(ctx context.Context, key string) (*LeaveType, error)
	Save(ctx context.Context, lt *LeaveType) error
	Delete(ctx context.Context, key string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Order("key ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindByKey(ctx context.Context, key string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "key = ?", key).Error
	return &lt, err
}

func (r *repository) Save(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"label", "initial_balance", "updated_at"}),
		}).
		Create(lt).Error
}

func (r *repository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&LeaveType{}, "key = ?", key).Error
}
