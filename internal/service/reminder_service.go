package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"habit-tracker/internal/model"
)

// ReminderService builds human-readable summaries for daily notifications.
type ReminderService struct {
	insightSvc *InsightService
}

func NewReminderService(insightSvc *InsightService) *ReminderService {
	return &ReminderService{insightSvc: insightSvc}
}

// DailySummary renders today's habits with their completion state and
// the user's streak standing.
func (s *ReminderService) DailySummary(ctx context.Context, user model.User) (string, error) {
	overview, err := s.insightSvc.Today(ctx, &user)
	if err != nil {
		return "", err
	}
	currentStreak, err := s.insightSvc.CurrentStreak(ctx, &user)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Dagelijks overzicht</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", overview.Date))

	if overview.Scheduled == 0 {
		builder.WriteString("Vandaag staan er geen taken gepland. Rustdag!\n")
	} else {
		builder.WriteString("🔥 <b>Taken van vandaag</b>\n")
		for _, entry := range overview.Tasks {
			builder.WriteString(formatTodayTask(entry))
		}
		builder.WriteString(fmt.Sprintf("\nVoortgang: %d van %d (doel %d)\n",
			overview.Completed, overview.Scheduled, effectiveTarget(overview.DailyTarget, overview.Scheduled)))
		if overview.Successful {
			builder.WriteString("✅ Vandaag al gehaald, goed bezig!\n")
		}
	}

	if currentStreak > 0 {
		builder.WriteString(fmt.Sprintf("\n🔥 Huidige reeks: %d %s\n", currentStreak, dayWord(currentStreak)))
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatTodayTask(entry TodayTask) string {
	mark := "▫️"
	if entry.Completed {
		mark = "✅"
	}
	title := html.EscapeString(strings.TrimSpace(entry.Task.Title))
	if entry.Task.Icon != "" {
		return fmt.Sprintf("%s %s %s\n", mark, entry.Task.Icon, title)
	}
	return fmt.Sprintf("%s %s\n", mark, title)
}

func effectiveTarget(dailyTarget, scheduled int) int {
	if scheduled < dailyTarget {
		return scheduled
	}
	return dailyTarget
}

func dayWord(n int) string {
	if n == 1 {
		return "dag"
	}
	return "dagen"
}
