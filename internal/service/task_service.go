package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/schedule"
)

// TaskInput represents data required to create a habit task.
type TaskInput struct {
	Title  string
	Icon   string
	Preset schedule.Preset
	Days   []int
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) CreateTask(ctx context.Context, user *model.User, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if _, err := schedule.ParsePreset(string(input.Preset)); err != nil {
		return nil, err
	}
	if input.Preset == schedule.PresetCustom {
		if len(input.Days) == 0 {
			return nil, fmt.Errorf("custom schedule requires at least one day")
		}
		if !schedule.ValidDays(input.Days) {
			return nil, fmt.Errorf("invalid custom day set %v", input.Days)
		}
	}

	task := model.Task{
		PublicID: uuid.NewString(),
		UserID:   user.ID,
		Title:    input.Title,
		Icon:     input.Icon,
		Preset:   string(input.Preset),
		IsActive: true,
	}
	if input.Preset == schedule.PresetCustom {
		task.DaysOfWeek = schedule.FormatDays(input.Days)
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListActive(ctx context.Context, user *model.User) ([]model.Task, error) {
	return s.taskRepo.ListActive(ctx, user.ID)
}

func (s *TaskService) ListAll(ctx context.Context, user *model.User) ([]model.Task, error) {
	return s.taskRepo.ListAll(ctx, user.ID)
}

func (s *TaskService) GetTask(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, user.ID, taskID)
}

// ArchiveTask deactivates a task without touching its check-in
// history, so past streaks stay intact.
func (s *TaskService) ArchiveTask(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.SetActive(ctx, task, false); err != nil {
		return nil, err
	}
	return task, nil
}

// RestoreTask reactivates an archived task.
func (s *TaskService) RestoreTask(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.SetActive(ctx, task, true); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task and its history permanently.
func (s *TaskService) DeleteTask(ctx context.Context, user *model.User, taskID uint) error {
	return s.taskRepo.Delete(ctx, user.ID, taskID)
}

// Rule reconstructs the recurrence rule stored on a task. A malformed
// stored preset or day set surfaces as an error rather than a task
// that silently never schedules.
func Rule(task model.Task) (schedule.Rule, error) {
	preset, err := schedule.ParsePreset(task.Preset)
	if err != nil {
		return schedule.Rule{}, fmt.Errorf("task %d: %w", task.ID, err)
	}
	rule := schedule.Rule{Preset: preset}
	if preset == schedule.PresetCustom {
		days, err := schedule.ParseDays(task.DaysOfWeek)
		if err != nil {
			return schedule.Rule{}, fmt.Errorf("task %d: %w", task.ID, err)
		}
		rule.Days = days
	}
	return rule, nil
}
