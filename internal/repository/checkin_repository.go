package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// CheckInRepository stores completion facts: one row per task and
// civil date. The unique index on (task_id, date) backs the
// no-duplicates invariant the streak engine relies on.
type CheckInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) *CheckInRepository {
	return &CheckInRepository{db: db}
}

func (r *CheckInRepository) Create(ctx context.Context, checkIn *model.CheckIn) error {
	if err := r.db.WithContext(ctx).Create(checkIn).Error; err != nil {
		return fmt.Errorf("create check-in: %w", err)
	}
	return nil
}

func (r *CheckInRepository) FindByTaskAndDate(ctx context.Context, taskID uint, date string) (*model.CheckIn, error) {
	var checkIn model.CheckIn
	if err := r.db.WithContext(ctx).Where("task_id = ? AND date = ?", taskID, date).First(&checkIn).Error; err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (r *CheckInRepository) DeleteByTaskAndDate(ctx context.Context, taskID uint, date string) error {
	result := r.db.WithContext(ctx).Where("task_id = ? AND date = ?", taskID, date).Delete(&model.CheckIn{})
	if result.Error != nil {
		return fmt.Errorf("delete check-in: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByUserSince returns the user's check-ins on or after the given
// date, oldest first.
func (r *CheckInRepository) ListByUserSince(ctx context.Context, userID uint, date string) ([]model.CheckIn, error) {
	var checkIns []model.CheckIn
	if err := r.db.WithContext(ctx).Where("user_id = ? AND date >= ?", userID, date).
		Order("date ASC").
		Find(&checkIns).Error; err != nil {
		return nil, err
	}
	return checkIns, nil
}

// ListAllByUser returns the user's complete check-in history, oldest
// first.
func (r *CheckInRepository) ListAllByUser(ctx context.Context, userID uint) ([]model.CheckIn, error) {
	var checkIns []model.CheckIn
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("date ASC").
		Find(&checkIns).Error; err != nil {
		return nil, err
	}
	return checkIns, nil
}

// ListByUserAndDate returns the user's check-ins on one date.
func (r *CheckInRepository) ListByUserAndDate(ctx context.Context, userID uint, date string) ([]model.CheckIn, error) {
	var checkIns []model.CheckIn
	if err := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).
		Find(&checkIns).Error; err != nil {
		return nil, err
	}
	return checkIns, nil
}
