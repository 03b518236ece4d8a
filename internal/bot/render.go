package bot

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"habit-tracker/internal/dateutil"
	"habit-tracker/internal/model"
	"habit-tracker/internal/schedule"
	"habit-tracker/internal/service"
	"habit-tracker/internal/streak"
)

const (
	btnSkip       = "⏭️ Overslaan"
	btnConfirm    = "✅ Bevestigen"
	btnCancel     = "↩️ Annuleren"
	btnStopDialog = "⏪ Stoppen"

	menuLabelNewTask  = "➕ Nieuwe taak"
	menuLabelToday    = "📅 Vandaag"
	menuLabelTasks    = "📋 Taken"
	menuLabelInsights = "📈 Inzichten"
)

func renderToday(overview *service.TodayOverview) (string, [][]tgbotapi.InlineKeyboardButton) {
	var builder strings.Builder
	builder.WriteString("📅 <b>Vandaag</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", overview.Date))

	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, entry := range overview.Tasks {
		mark := "▫️"
		if entry.Completed {
			mark = "✅"
		}
		title := escape(strings.TrimSpace(entry.Task.Title))
		if entry.Task.Icon != "" {
			builder.WriteString(fmt.Sprintf("%s %s %s\n", mark, entry.Task.Icon, title))
		} else {
			builder.WriteString(fmt.Sprintf("%s %s\n", mark, title))
		}

		var btn tgbotapi.InlineKeyboardButton
		if entry.Completed {
			btn = tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("↩️ %s", shortTitle(entry.Task.Title, 24)),
				fmt.Sprintf("%s%d:%s", cbUncheckPrefix, entry.Task.ID, overview.Date))
		} else {
			btn = tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("✅ %s", shortTitle(entry.Task.Title, 24)),
				fmt.Sprintf("%s%d:%s", cbCheckPrefix, entry.Task.ID, overview.Date))
		}
		buttons = append(buttons, []tgbotapi.InlineKeyboardButton{btn})
	}

	target := overview.DailyTarget
	if overview.Scheduled < target {
		target = overview.Scheduled
	}
	builder.WriteString(fmt.Sprintf("\nVoortgang: <b>%d/%d</b> · doel %d\n", overview.Completed, overview.Scheduled, target))
	if overview.Successful {
		builder.WriteString("🎉 Dagdoel gehaald!\n")
	}

	return strings.TrimSpace(builder.String()), buttons
}

func renderTaskList(tasks []model.Task) (string, [][]tgbotapi.InlineKeyboardButton, error) {
	var builder strings.Builder
	builder.WriteString("📋 <b>Je taken</b>\n")
	builder.WriteString("Archiveer een taak om te pauzeren zonder je geschiedenis te verliezen.\n\n")

	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, task := range tasks {
		rule, err := service.Rule(task)
		if err != nil {
			return "", nil, err
		}

		icon := "🟢"
		if !task.IsActive {
			icon = "📦"
		}
		line := fmt.Sprintf("%s <b>#%d</b> %s", icon, task.ID, escape(strings.TrimSpace(task.Title)))
		if task.Icon != "" {
			line += " " + escape(task.Icon)
		}
		builder.WriteString(line + "\n")
		builder.WriteString(fmt.Sprintf("   📅 %s\n", escape(rule.Label())))
		if !task.IsActive {
			builder.WriteString("   📦 Gearchiveerd\n")
		}

		var row []tgbotapi.InlineKeyboardButton
		if task.IsActive {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("📦 #%d · %s", task.ID, shortTitle(task.Title, 16)),
				fmt.Sprintf("%s%d", cbArchivePrefix, task.ID)))
		} else {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("♻️ #%d · %s", task.ID, shortTitle(task.Title, 16)),
				fmt.Sprintf("%s%d", cbRestorePrefix, task.ID)))
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🗑 Verwijderen",
			fmt.Sprintf("%s%d", cbDeletePrefix, task.ID)))
		buttons = append(buttons, row)
	}

	return strings.TrimSpace(builder.String()), buttons, nil
}

func formatInsights(insights *service.Insights) string {
	var builder strings.Builder
	builder.WriteString("📈 <b>Inzichten</b>\n\n")
	builder.WriteString(fmt.Sprintf("🔥 Huidige reeks: <b>%d</b>\n", insights.CurrentStreak))
	builder.WriteString(fmt.Sprintf("🏆 Beste reeks: <b>%d</b>\n", insights.BestStreak))
	builder.WriteString(fmt.Sprintf("🎯 Dagelijks doel: %d\n\n", insights.DailyTarget))

	builder.WriteString("<b>Laatste 7 dagen</b>\n")
	for _, day := range insights.Days {
		builder.WriteString(formatDayOutcome(day))
	}

	return strings.TrimSpace(builder.String())
}

func formatDayOutcome(day streak.DayOutcome) string {
	var mark string
	switch {
	case day.Excluded():
		mark = "➖"
	case day.Successful:
		mark = "✅"
	default:
		mark = "❌"
	}

	weekday := weekdayLabel(day.Date)
	if day.Excluded() {
		return fmt.Sprintf("%s %s %s · geen taken gepland\n", mark, weekday, day.Date)
	}
	return fmt.Sprintf("%s %s %s · %d van %d\n", mark, weekday, day.Date, day.Completed, day.Scheduled)
}

func weekdayLabel(date string) string {
	day, err := dateutil.Weekday(date)
	if err != nil {
		return "??"
	}
	return schedule.DayName(day)
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func confirmKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirm),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelToday),
			tgbotapi.NewKeyboardButton(menuLabelNewTask),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelTasks),
			tgbotapi.NewKeyboardButton(menuLabelInsights),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func stopKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStopDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStopDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func scheduleKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(schedule.PresetLabel(schedule.PresetAllWeek)),
			tgbotapi.NewKeyboardButton(schedule.PresetLabel(schedule.PresetWorkweek)),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(schedule.PresetLabel(schedule.PresetWeekend)),
			tgbotapi.NewKeyboardButton(schedule.PresetLabel(schedule.PresetCustom)),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStopDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func presetFromLabel(text string) (schedule.Preset, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	for _, preset := range []schedule.Preset{
		schedule.PresetAllWeek,
		schedule.PresetWorkweek,
		schedule.PresetWeekend,
		schedule.PresetCustom,
	} {
		if normalized == strings.ToLower(schedule.PresetLabel(preset)) {
			return preset, true
		}
	}
	return "", false
}

// parseDayInput accepts Dutch day abbreviations ("ma,wo,vr") or ISO
// weekday numbers ("0,2,4").
func parseDayInput(text string) ([]int, error) {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})

	seen := make(map[int]bool)
	var days []int
	for _, part := range parts {
		day, err := parseDayToken(part)
		if err != nil {
			return nil, err
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	return days, nil
}

func parseDayToken(token string) (int, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	for day := 0; day <= 6; day++ {
		if normalized == strings.ToLower(schedule.DayName(day)) {
			return day, nil
		}
	}
	if len(normalized) == 1 && normalized[0] >= '0' && normalized[0] <= '6' {
		return int(normalized[0] - '0'), nil
	}
	return 0, fmt.Errorf("unknown day %q", token)
}

func isSkipInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "-" || value == strings.ToLower(btnSkip) || value == "overslaan" || value == "skip"
}

func isConfirmInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnConfirm) || value == "bevestigen" || value == "ja"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancel) || value == "annuleren" || value == "nee"
}

func isStopInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnStopDialog) || value == "stoppen" || value == "stop"
}

func escape(s string) string {
	return html.EscapeString(s)
}
