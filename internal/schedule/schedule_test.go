package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday, 2024-01-07 a Sunday.
var week = []string{
	"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
	"2024-01-05", "2024-01-06", "2024-01-07",
}

func TestAllWeekIsAlwaysDue(t *testing.T) {
	rule := Rule{Preset: PresetAllWeek}
	for _, date := range week {
		due, err := rule.IsDue(date)
		require.NoError(t, err, date)
		assert.True(t, due, date)
	}
}

func TestWorkweekIsDueMondayThroughFriday(t *testing.T) {
	rule := Rule{Preset: PresetWorkweek}
	want := []bool{true, true, true, true, true, false, false}
	for i, date := range week {
		due, err := rule.IsDue(date)
		require.NoError(t, err, date)
		assert.Equal(t, want[i], due, date)
	}
}

func TestWeekendIsDueSaturdayAndSunday(t *testing.T) {
	rule := Rule{Preset: PresetWeekend}
	want := []bool{false, false, false, false, false, true, true}
	for i, date := range week {
		due, err := rule.IsDue(date)
		require.NoError(t, err, date)
		assert.Equal(t, want[i], due, date)
	}
}

// Workweek and weekend partition the week: every date matches exactly
// one of the two.
func TestWorkweekAndWeekendAreExclusiveAndExhaustive(t *testing.T) {
	workweek := Rule{Preset: PresetWorkweek}
	weekend := Rule{Preset: PresetWeekend}

	dates := append([]string(nil), week...)
	dates = append(dates, "2024-02-29", "2024-12-31", "2025-06-15")

	for _, date := range dates {
		onWorkweek, err := workweek.IsDue(date)
		require.NoError(t, err, date)
		onWeekend, err := weekend.IsDue(date)
		require.NoError(t, err, date)
		assert.NotEqual(t, onWorkweek, onWeekend, date)
	}
}

func TestCustomRule(t *testing.T) {
	rule := Rule{Preset: PresetCustom, Days: []int{0, 2, 4}} // ma, wo, vr

	due, err := rule.IsDue("2024-01-02") // Tuesday
	require.NoError(t, err)
	assert.False(t, due)

	due, err = rule.IsDue("2024-01-03") // Wednesday
	require.NoError(t, err)
	assert.True(t, due)
}

func TestIsDueRejectsUnknownPreset(t *testing.T) {
	rule := Rule{Preset: Preset("SOMETIMES")}
	_, err := rule.IsDue("2024-01-01")
	assert.Error(t, err)
}

func TestIsDueRejectsInvalidCustomDays(t *testing.T) {
	rule := Rule{Preset: PresetCustom, Days: []int{7}}
	_, err := rule.IsDue("2024-01-01")
	assert.Error(t, err)
}

func TestIsDueRejectsInvalidDate(t *testing.T) {
	rule := Rule{Preset: PresetAllWeek}
	_, err := rule.IsDue("01-2024-01")
	assert.Error(t, err)
}

func TestParsePreset(t *testing.T) {
	preset, err := ParsePreset("workweek")
	require.NoError(t, err)
	assert.Equal(t, PresetWorkweek, preset)

	_, err = ParsePreset("DAILY")
	assert.Error(t, err)
}

func TestDaysRoundTrip(t *testing.T) {
	raw := FormatDays([]int{4, 0, 2})
	assert.Equal(t, "0,2,4", raw)

	days, err := ParseDays(raw)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, days)

	empty, err := ParseDays("")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = ParseDays("0,9")
	assert.Error(t, err)
}

func TestValidDays(t *testing.T) {
	assert.True(t, ValidDays([]int{0, 6}))
	assert.False(t, ValidDays([]int{-1}))
	assert.False(t, ValidDays([]int{7}))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Elke dag", PresetLabel(PresetAllWeek))
	assert.Equal(t, "Werkdagen (ma-vr)", PresetLabel(PresetWorkweek))
	assert.Equal(t, "Weekend (za-zo)", PresetLabel(PresetWeekend))
	assert.Equal(t, "Aangepast", PresetLabel(PresetCustom))

	assert.Equal(t, "Ma", DayName(0))
	assert.Equal(t, "Zo", DayName(6))
	assert.Equal(t, "Onbekend", DayName(7))

	custom := Rule{Preset: PresetCustom, Days: []int{4, 0}}
	assert.Equal(t, "Ma, Vr", custom.Label())
}
