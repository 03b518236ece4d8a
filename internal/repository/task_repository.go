package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// TaskRepository handles CRUD for habit tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListActive returns the user's active tasks, newest first.
func (r *TaskRepository) ListActive(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAll returns every task the user ever created, archived ones
// included, active first and newest first within each group.
func (r *TaskRepository) ListAll(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("is_active DESC, created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// SetActive archives or restores a task. Check-in history is kept
// either way.
func (r *TaskRepository) SetActive(ctx context.Context, task *model.Task, active bool) error {
	if err := r.db.WithContext(ctx).Model(task).Update("is_active", active).Error; err != nil {
		return fmt.Errorf("set task active: %w", err)
	}
	task.IsActive = active
	return nil
}

// Delete removes a task and its check-ins permanently.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND task_id = ?", userID, taskID).
			Delete(&model.CheckIn{}).Error; err != nil {
			return fmt.Errorf("delete check-ins: %w", err)
		}
		if err := tx.Where("user_id = ? AND id = ?", userID, taskID).
			Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}
