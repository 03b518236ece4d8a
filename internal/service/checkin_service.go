package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"habit-tracker/internal/dateutil"
	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
)

var (
	// ErrTaskArchived is returned when checking in on an archived task.
	ErrTaskArchived = errors.New("task is archived")
	// ErrNotScheduled is returned when the task is not due on the date.
	ErrNotScheduled = errors.New("task is not scheduled for this date")
	// ErrDuplicateCheckIn is returned when a check-in already exists
	// for the task and date.
	ErrDuplicateCheckIn = errors.New("check-in already exists for this date")
)

// CheckInService guards the check-in invariants: the task must belong
// to the user, be active, be scheduled on the date, and not be
// checked in yet.
type CheckInService struct {
	taskRepo    *repository.TaskRepository
	checkInRepo *repository.CheckInRepository
}

func NewCheckInService(taskRepo *repository.TaskRepository, checkInRepo *repository.CheckInRepository) *CheckInService {
	return &CheckInService{taskRepo: taskRepo, checkInRepo: checkInRepo}
}

// CheckIn records a completion of the task on the given date.
func (s *CheckInService) CheckIn(ctx context.Context, user *model.User, taskID uint, date string) (*model.CheckIn, error) {
	if !dateutil.IsValid(date) {
		return nil, fmt.Errorf("invalid date %q", date)
	}

	task, err := s.taskRepo.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}
	if !task.IsActive {
		return nil, ErrTaskArchived
	}

	rule, err := Rule(*task)
	if err != nil {
		return nil, err
	}
	due, err := rule.IsDue(date)
	if err != nil {
		return nil, err
	}
	if !due {
		return nil, ErrNotScheduled
	}

	if _, err := s.checkInRepo.FindByTaskAndDate(ctx, task.ID, date); err == nil {
		return nil, ErrDuplicateCheckIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find check-in: %w", err)
	}

	checkIn := model.CheckIn{
		UserID: user.ID,
		TaskID: task.ID,
		Date:   date,
	}
	if err := s.checkInRepo.Create(ctx, &checkIn); err != nil {
		return nil, err
	}
	return &checkIn, nil
}

// Undo removes a completion previously recorded for the task and date.
func (s *CheckInService) Undo(ctx context.Context, user *model.User, taskID uint, date string) error {
	if !dateutil.IsValid(date) {
		return fmt.Errorf("invalid date %q", date)
	}
	if _, err := s.taskRepo.FindByID(ctx, user.ID, taskID); err != nil {
		return err
	}
	return s.checkInRepo.DeleteByTaskAndDate(ctx, taskID, date)
}

// IsCheckedIn reports whether the task is completed on the date.
func (s *CheckInService) IsCheckedIn(ctx context.Context, taskID uint, date string) (bool, error) {
	_, err := s.checkInRepo.FindByTaskAndDate(ctx, taskID, date)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("find check-in: %w", err)
	}
}
