package service

import (
	"context"
	"time"

	"habit-tracker/internal/dateutil"
	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/streak"
)

// TodayTask is one entry of the today view.
type TodayTask struct {
	Task      model.Task
	Completed bool
}

// TodayOverview is the state of the current day: which tasks are due,
// which are done, and whether the day already counts as successful.
type TodayOverview struct {
	Date        string
	Tasks       []TodayTask
	Completed   int
	Scheduled   int
	DailyTarget int
	Successful  bool
}

// Insights bundles the recent per-day outcomes with both streaks.
type Insights struct {
	Days          []streak.DayOutcome
	DailyTarget   int
	CurrentStreak int
	BestStreak    int
}

// InsightService assembles streak engine snapshots from stored tasks
// and check-ins. The current streak runs over active tasks within the
// lookback window; the best streak runs over every task ever created,
// archived ones included, so archiving never shrinks history.
type InsightService struct {
	taskRepo     *repository.TaskRepository
	checkInRepo  *repository.CheckInRepository
	loc          *time.Location
	lookbackDays int
}

func NewInsightService(taskRepo *repository.TaskRepository, checkInRepo *repository.CheckInRepository, loc *time.Location, lookbackDays int) *InsightService {
	if lookbackDays <= 0 {
		lookbackDays = streak.DefaultLookbackDays
	}
	return &InsightService{
		taskRepo:     taskRepo,
		checkInRepo:  checkInRepo,
		loc:          loc,
		lookbackDays: lookbackDays,
	}
}

// Today returns the today view for a user.
func (s *InsightService) Today(ctx context.Context, user *model.User) (*TodayOverview, error) {
	today := dateutil.Today(s.loc)

	tasks, err := s.taskRepo.ListActive(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	checkIns, err := s.checkInRepo.ListByUserAndDate(ctx, user.ID, today)
	if err != nil {
		return nil, err
	}
	done := make(map[uint]bool, len(checkIns))
	for _, ci := range checkIns {
		done[ci.TaskID] = true
	}

	overview := &TodayOverview{
		Date:        today,
		DailyTarget: user.DailyTarget,
	}
	for _, task := range tasks {
		rule, err := Rule(task)
		if err != nil {
			return nil, err
		}
		due, err := rule.IsDue(today)
		if err != nil {
			return nil, err
		}
		if !due {
			continue
		}
		entry := TodayTask{Task: task, Completed: done[task.ID]}
		overview.Tasks = append(overview.Tasks, entry)
		overview.Scheduled++
		if entry.Completed {
			overview.Completed++
		}
	}

	if overview.Scheduled > 0 {
		ok, err := streak.IsDaySuccessful(overview.Completed, overview.Scheduled, user.DailyTarget)
		if err != nil {
			return nil, err
		}
		overview.Successful = ok
	}
	return overview, nil
}

// Recent computes per-day outcomes for the last n days plus the
// current and best streak.
func (s *InsightService) Recent(ctx context.Context, user *model.User, days int) (*Insights, error) {
	if days <= 0 {
		days = 7
	}
	dates := dateutil.LastN(s.loc, days)

	active, err := s.activeHistory(ctx, user)
	if err != nil {
		return nil, err
	}

	insights := &Insights{DailyTarget: user.DailyTarget}
	for _, date := range dates {
		outcome, err := active.Outcome(date)
		if err != nil {
			return nil, err
		}
		insights.Days = append(insights.Days, outcome)
	}

	current, err := s.CurrentStreak(ctx, user)
	if err != nil {
		return nil, err
	}
	best, err := s.BestStreak(ctx, user)
	if err != nil {
		return nil, err
	}
	insights.CurrentStreak = current
	insights.BestStreak = best
	return insights, nil
}

// CurrentStreak walks backward from today over active tasks, bounded
// by the configured lookback window.
func (s *InsightService) CurrentStreak(ctx context.Context, user *model.User) (int, error) {
	history, err := s.activeHistory(ctx, user)
	if err != nil {
		return 0, err
	}
	return history.Current(dateutil.Today(s.loc), s.lookbackDays)
}

// BestStreak scans the full check-in history over all tasks ever
// created.
func (s *InsightService) BestStreak(ctx context.Context, user *model.User) (int, error) {
	tasks, err := s.taskRepo.ListAll(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	checkIns, err := s.checkInRepo.ListAllByUser(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	history, err := buildHistory(user.DailyTarget, tasks, checkIns)
	if err != nil {
		return 0, err
	}
	return history.Best()
}

func (s *InsightService) activeHistory(ctx context.Context, user *model.User) (streak.History, error) {
	tasks, err := s.taskRepo.ListActive(ctx, user.ID)
	if err != nil {
		return streak.History{}, err
	}
	since, err := dateutil.AddDays(dateutil.Today(s.loc), -(s.lookbackDays - 1))
	if err != nil {
		return streak.History{}, err
	}
	checkIns, err := s.checkInRepo.ListByUserSince(ctx, user.ID, since)
	if err != nil {
		return streak.History{}, err
	}
	return buildHistory(user.DailyTarget, tasks, checkIns)
}

func buildHistory(dailyTarget int, tasks []model.Task, checkIns []model.CheckIn) (streak.History, error) {
	history := streak.History{DailyTarget: dailyTarget}
	for _, task := range tasks {
		rule, err := Rule(task)
		if err != nil {
			return streak.History{}, err
		}
		history.Tasks = append(history.Tasks, streak.TaskRule{TaskID: task.ID, Rule: rule})
	}
	for _, ci := range checkIns {
		history.CheckIns = append(history.CheckIns, streak.CheckIn{TaskID: ci.TaskID, Date: ci.Date})
	}
	return history, nil
}
