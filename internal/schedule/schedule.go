package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"habit-tracker/internal/dateutil"
)

// Preset is the weekly recurrence pattern of a task.
type Preset string

const (
	PresetAllWeek  Preset = "ALL_WEEK"
	PresetWorkweek Preset = "WORKWEEK"
	PresetWeekend  Preset = "WEEKEND"
	PresetCustom   Preset = "CUSTOM"
)

// ParsePreset validates a raw preset value.
func ParsePreset(raw string) (Preset, error) {
	switch p := Preset(strings.ToUpper(strings.TrimSpace(raw))); p {
	case PresetAllWeek, PresetWorkweek, PresetWeekend, PresetCustom:
		return p, nil
	default:
		return "", fmt.Errorf("unknown schedule preset %q", raw)
	}
}

// Rule is a task's recurrence rule: a preset plus, for CUSTOM only,
// the set of ISO weekday numbers (0=Monday .. 6=Sunday) it applies to.
type Rule struct {
	Preset Preset
	Days   []int
}

// IsDue reports whether a task with this rule is scheduled on the
// given YYYY-MM-DD date. An unrecognized preset or an out-of-range
// custom day is an error, never a silent "not due": silently dropping
// a task from scheduling would corrupt streak accounting downstream.
func (r Rule) IsDue(date string) (bool, error) {
	weekday, err := dateutil.Weekday(date)
	if err != nil {
		return false, err
	}

	switch r.Preset {
	case PresetAllWeek:
		return true, nil
	case PresetWorkweek:
		return weekday <= 4, nil
	case PresetWeekend:
		return weekday == 5 || weekday == 6, nil
	case PresetCustom:
		if !ValidDays(r.Days) {
			return false, fmt.Errorf("invalid custom day set %v", r.Days)
		}
		for _, day := range r.Days {
			if day == weekday {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("unknown schedule preset %q", r.Preset)
	}
}

// ValidDays reports whether every weekday number is in 0..6.
func ValidDays(days []int) bool {
	for _, day := range days {
		if day < 0 || day > 6 {
			return false
		}
	}
	return true
}

// FormatDays serializes a custom day set for storage (sorted,
// comma-separated, e.g. "0,2,4").
func FormatDays(days []int) string {
	sorted := append([]int(nil), days...)
	sort.Ints(sorted)
	parts := make([]string, 0, len(sorted))
	for _, day := range sorted {
		parts = append(parts, strconv.Itoa(day))
	}
	return strings.Join(parts, ",")
}

// ParseDays parses a stored day set back into weekday numbers.
func ParseDays(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("parse day set %q: %w", raw, err)
		}
		if day < 0 || day > 6 {
			return nil, fmt.Errorf("day %d out of range in %q", day, raw)
		}
		days = append(days, day)
	}
	return days, nil
}

// PresetLabel returns the user-facing Dutch label for a preset.
func PresetLabel(preset Preset) string {
	switch preset {
	case PresetAllWeek:
		return "Elke dag"
	case PresetWorkweek:
		return "Werkdagen (ma-vr)"
	case PresetWeekend:
		return "Weekend (za-zo)"
	case PresetCustom:
		return "Aangepast"
	default:
		return "Onbekend"
	}
}

var dayNames = [7]string{"Ma", "Di", "Wo", "Do", "Vr", "Za", "Zo"}

// DayName returns the short Dutch name for an ISO weekday number.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return "Onbekend"
	}
	return dayNames[day]
}

// Label renders a rule for display, expanding custom day sets.
func (r Rule) Label() string {
	if r.Preset != PresetCustom {
		return PresetLabel(r.Preset)
	}
	sorted := append([]int(nil), r.Days...)
	sort.Ints(sorted)
	names := make([]string, 0, len(sorted))
	for _, day := range sorted {
		names = append(names, DayName(day))
	}
	return strings.Join(names, ", ")
}
