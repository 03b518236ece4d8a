package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
)

type testEnv struct {
	db          *gorm.DB
	userRepo    *repository.UserRepository
	taskRepo    *repository.TaskRepository
	checkInRepo *repository.CheckInRepository
	taskSvc     *TaskService
	checkInSvc  *CheckInService
	insightSvc  *InsightService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Task{}, &model.CheckIn{}))

	taskRepo := repository.NewTaskRepository(db)
	checkInRepo := repository.NewCheckInRepository(db)
	return &testEnv{
		db:          db,
		userRepo:    repository.NewUserRepository(db, 1),
		taskRepo:    taskRepo,
		checkInRepo: checkInRepo,
		taskSvc:     NewTaskService(taskRepo),
		checkInSvc:  NewCheckInService(taskRepo, checkInRepo),
		insightSvc:  NewInsightService(taskRepo, checkInRepo, time.UTC, 365),
	}
}

func (e *testEnv) createUser(t *testing.T, target int) *model.User {
	t.Helper()
	user, err := e.userRepo.UpsertFromTelegram(context.Background(), 1000+int64(target), "Test", "", "tester")
	require.NoError(t, err)
	if target != 1 {
		require.NoError(t, e.userRepo.UpdateDailyTarget(context.Background(), user, target))
	}
	return user
}
