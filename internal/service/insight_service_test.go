package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/dateutil"
	"habit-tracker/internal/schedule"
)

func TestTodayOverview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)
	today := dateutil.Today(time.UTC)

	daily, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Lezen", Icon: "📚", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)
	_, err = env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Schrijven", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)

	// A custom task scheduled on every weekday except today must not
	// show up in the today view.
	weekday, err := dateutil.Weekday(today)
	require.NoError(t, err)
	_, err = env.taskSvc.CreateTask(ctx, user, TaskInput{
		Title:  "Niet vandaag",
		Preset: schedule.PresetCustom,
		Days:   []int{(weekday + 1) % 7},
	})
	require.NoError(t, err)

	_, err = env.checkInSvc.CheckIn(ctx, user, daily.ID, today)
	require.NoError(t, err)

	overview, err := env.insightSvc.Today(ctx, user)
	require.NoError(t, err)

	assert.Equal(t, today, overview.Date)
	assert.Equal(t, 2, overview.Scheduled)
	assert.Equal(t, 1, overview.Completed)
	assert.Len(t, overview.Tasks, 2)
	assert.True(t, overview.Successful) // target 1, one done

	var found bool
	for _, entry := range overview.Tasks {
		if entry.Task.ID == daily.ID {
			found = true
			assert.True(t, entry.Completed)
		}
	}
	assert.True(t, found)
}

func TestTodayOverviewNothingScheduled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)

	overview, err := env.insightSvc.Today(ctx, user)
	require.NoError(t, err)
	assert.Zero(t, overview.Scheduled)
	assert.False(t, overview.Successful)
	assert.Empty(t, overview.Tasks)
}

func TestCurrentStreakFromStorage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)
	today := dateutil.Today(time.UTC)

	task, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Lezen", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)

	yesterday, err := dateutil.AddDays(today, -1)
	require.NoError(t, err)
	_, err = env.checkInSvc.CheckIn(ctx, user, task.ID, yesterday)
	require.NoError(t, err)
	_, err = env.checkInSvc.CheckIn(ctx, user, task.ID, today)
	require.NoError(t, err)

	current, err := env.insightSvc.CurrentStreak(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 2, current)
}

func TestCurrentStreakZeroWithoutTasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)

	current, err := env.insightSvc.CurrentStreak(ctx, user)
	require.NoError(t, err)
	assert.Zero(t, current)

	best, err := env.insightSvc.BestStreak(ctx, user)
	require.NoError(t, err)
	assert.Zero(t, best)
}

// Archiving a task must not erase the streaks it contributed to: the
// best streak is computed over all tasks ever created.
func TestBestStreakIncludesArchivedTasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)

	task, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Oude gewoonte", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		_, err := env.checkInSvc.CheckIn(ctx, user, task.ID, date)
		require.NoError(t, err)
	}

	_, err = env.taskSvc.ArchiveTask(ctx, user, task.ID)
	require.NoError(t, err)

	best, err := env.insightSvc.BestStreak(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 3, best)

	// The archived task no longer schedules anything today, so the
	// current streak ignores it.
	current, err := env.insightSvc.CurrentStreak(ctx, user)
	require.NoError(t, err)
	assert.Zero(t, current)
}

func TestRecentInsights(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)
	today := dateutil.Today(time.UTC)

	task, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Lezen", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)
	_, err = env.checkInSvc.CheckIn(ctx, user, task.ID, today)
	require.NoError(t, err)

	insights, err := env.insightSvc.Recent(ctx, user, 7)
	require.NoError(t, err)

	require.Len(t, insights.Days, 7)
	assert.Equal(t, 1, insights.DailyTarget)
	assert.Equal(t, 1, insights.CurrentStreak)
	assert.GreaterOrEqual(t, insights.BestStreak, insights.CurrentStreak)

	last := insights.Days[len(insights.Days)-1]
	assert.Equal(t, today, last.Date)
	assert.Equal(t, 1, last.Completed)
	assert.True(t, last.Successful)
}

func TestDailySummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)
	today := dateutil.Today(time.UTC)

	task, err := env.taskSvc.CreateTask(ctx, user, TaskInput{Title: "Lezen", Icon: "📚", Preset: schedule.PresetAllWeek})
	require.NoError(t, err)
	_, err = env.checkInSvc.CheckIn(ctx, user, task.ID, today)
	require.NoError(t, err)

	reminderSvc := NewReminderService(env.insightSvc)
	summary, err := reminderSvc.DailySummary(ctx, *user)
	require.NoError(t, err)

	assert.Contains(t, summary, "Dagelijks overzicht")
	assert.Contains(t, summary, "Lezen")
	assert.Contains(t, summary, today)
	assert.Contains(t, summary, "Huidige reeks: 1 dag")
}

func TestDailySummaryRestDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, 1)

	reminderSvc := NewReminderService(env.insightSvc)
	summary, err := reminderSvc.DailySummary(ctx, *user)
	require.NoError(t, err)
	assert.Contains(t, summary, "geen taken gepland")
}
