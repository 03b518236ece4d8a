package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"habit-tracker/internal/schedule"
)

func TestCheckInHappyPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)

	task, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Lezen", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)
	assert.NotEmpty(t, task.PublicID)

	checkIn, err := env.checkInSvc.CheckIn(ctx, user, task.ID, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, task.ID, checkIn.TaskID)
	assert.Equal(t, "2024-01-01", checkIn.Date)

	done, err := env.checkInSvc.IsCheckedIn(ctx, task.ID, "2024-01-01")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestCheckInRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)

	task, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Sporten", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)

	_, err = env.checkInSvc.CheckIn(ctx, user, task.ID, "2024-01-01")
	require.NoError(t, err)

	_, err = env.checkInSvc.CheckIn(ctx, user, task.ID, "2024-01-01")
	assert.ErrorIs(t, err, ErrDuplicateCheckIn)
}

func TestCheckInRejectsUnscheduledDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)

	task, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Wandelen", Preset: schedule.PresetWeekend})
	require.NoError(t, err)

	// 2024-01-01 is a Monday.
	_, err = env.checkInSvc.CheckIn(ctx, user, task.ID, "2024-01-01")
	assert.ErrorIs(t, err, ErrNotScheduled)

	// 2024-01-06 is a Saturday.
	_, err = env.checkInSvc.CheckIn(ctx, user, task.ID, "2024-01-06")
	assert.NoError(t, err)
}

func TestCheckInRejectsArchivedTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)

	task, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Mediteren", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)

	_, err = env.taskSvc.ArchiveTask(ctx, user, task.ID)
	require.NoError(t, err)

	_, err = env.checkInSvc.CheckIn(ctx, user, task.ID, "2024-01-01")
	assert.ErrorIs(t, err, ErrTaskArchived)
}

func TestCheckInRejectsInvalidDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)

	task, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Lezen", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)

	_, err = env.checkInSvc.CheckIn(ctx, user, task.ID, "01-01-2024")
	assert.Error(t, err)
}

func TestCheckInRejectsForeignTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, 1)
	other := env.createUser(t, 2)

	task, err := env.taskSvc.CreateTask(ctx, owner, TaskInput{Title: "Lezen", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)

	_, err = env.checkInSvc.CheckIn(ctx, other, task.ID, "2024-01-01")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUndoCheckIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)

	task, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Lezen", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)

	_, err = env.checkInSvc.CheckIn(ctx, user, task.ID, "2024-01-01")
	require.NoError(t, err)

	require.NoError(t, env.checkInSvc.Undo(ctx, user, task.ID, "2024-01-01"))

	done, err := env.checkInSvc.IsCheckedIn(ctx, task.ID, "2024-01-01")
	require.NoError(t, err)
	assert.False(t, done)

	err = env.checkInSvc.Undo(ctx, user, task.ID, "2024-01-01")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateTaskValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)

	_, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Preset: schedule.PresetAllWeek})
	assert.Error(t, err)

	_, err = env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "X", Preset: "SOMETIMES"})
	assert.Error(t, err)

	_, err = env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "X", Preset: schedule.PresetCustom})
	assert.Error(t, err)

	_, err = env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "X", Preset: schedule.PresetCustom, Days: []int{9}})
	assert.Error(t, err)

	task, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "X", Preset: schedule.PresetCustom, Days: []int{4, 0}})
	require.NoError(t, err)
	assert.Equal(t, "0,4", task.DaysOfWeek)
}

func TestDeleteTaskRemovesHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)

	task, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Lezen", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)

	_, err = env.checkInSvc.CheckIn(ctx, user, task.ID, "2024-01-01")
	require.NoError(t, err)

	require.NoError(t, env.taskSvc.DeleteTask(ctx, user, task.ID))

	_, err = env.taskSvc.GetTask(ctx, user, task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	checkIns, err := env.checkInRepo.ListAllByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, checkIns)
}
