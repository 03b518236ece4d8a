// Package streak derives day outcomes and streak lengths from a user's
// tasks and check-in history. It is pure: all data arrives as an
// in-memory snapshot, nothing here touches storage or the clock.
package streak

import (
	"fmt"

	"habit-tracker/internal/dateutil"
	"habit-tracker/internal/schedule"
)

// DefaultLookbackDays bounds the backward walk of Current. A streak
// longer than the bound is reported at the bound.
const DefaultLookbackDays = 365

// TaskRule pairs a task id with its recurrence rule. The engine needs
// nothing else about a task.
type TaskRule struct {
	TaskID uint
	Rule   schedule.Rule
}

// CheckIn records that a task was completed on a civil date.
// The persistence layer guarantees at most one per (task, date).
type CheckIn struct {
	TaskID uint
	Date   string
}

// History is the complete snapshot streak computations run over.
// Which tasks belong in it is the caller's choice: Current expects
// active tasks only, Best expects every task ever created, archived
// ones included, so that archiving a task today does not erase the
// historical streaks it contributed to.
type History struct {
	DailyTarget int
	Tasks       []TaskRule
	CheckIns    []CheckIn
}

// DayOutcome is the derived result for one date. It is computed on
// demand and never stored.
type DayOutcome struct {
	Date       string
	Scheduled  int
	Completed  int
	Successful bool
}

// Excluded reports whether the day carries no scheduled tasks and
// therefore neither extends nor breaks a streak.
func (o DayOutcome) Excluded() bool {
	return o.Scheduled == 0
}

// IsDaySuccessful applies the day-success rule: the effective target
// is min(target, scheduled), so a daily target acts as a ceiling, not
// a quota that ignores how many tasks are actually due. A day with
// zero scheduled tasks returns false; callers must treat that case as
// excluded, not failed, before interpreting the boolean.
func IsDaySuccessful(completed, scheduled, target int) (bool, error) {
	if completed < 0 || scheduled < 0 {
		return false, fmt.Errorf("negative counts: completed=%d scheduled=%d", completed, scheduled)
	}
	if target < 1 {
		return false, fmt.Errorf("daily target must be positive, got %d", target)
	}
	if scheduled == 0 {
		return false, nil
	}

	effectiveTarget := target
	if scheduled < effectiveTarget {
		effectiveTarget = scheduled
	}
	return completed >= effectiveTarget, nil
}

// Outcome computes the DayOutcome for a single date.
func (h History) Outcome(date string) (DayOutcome, error) {
	scheduled, err := h.scheduledCount(date)
	if err != nil {
		return DayOutcome{}, err
	}
	completed := h.completedByDate()[date]

	ok, err := IsDaySuccessful(completed, scheduled, h.DailyTarget)
	if err != nil {
		return DayOutcome{}, err
	}
	return DayOutcome{
		Date:       date,
		Scheduled:  scheduled,
		Completed:  completed,
		Successful: ok,
	}, nil
}

// Current computes the current streak: the count of consecutive
// successful days walking backward from today (inclusive), skipping
// days with no scheduled tasks and stopping at the first failure.
// The walk inspects at most lookbackDays days (DefaultLookbackDays
// when <= 0).
func (h History) Current(today string, lookbackDays int) (int, error) {
	if h.DailyTarget < 1 {
		return 0, fmt.Errorf("daily target must be positive, got %d", h.DailyTarget)
	}
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	completed := h.completedByDate()

	count := 0
	date := today
	for i := 0; i < lookbackDays; i++ {
		scheduled, err := h.scheduledCount(date)
		if err != nil {
			return 0, err
		}

		if scheduled > 0 {
			ok, err := IsDaySuccessful(completed[date], scheduled, h.DailyTarget)
			if err != nil {
				return 0, err
			}
			if !ok {
				break
			}
			count++
		}

		date, err = dateutil.AddDays(date, -1)
		if err != nil {
			return 0, err
		}
	}

	return count, nil
}

// Best computes the longest streak across the whole history: a
// forward scan from the first check-in date to the last, keeping a
// running counter that successful days increment, failed days reset,
// and zero-scheduled days leave untouched. No check-ins means 0.
func (h History) Best() (int, error) {
	if h.DailyTarget < 1 {
		return 0, fmt.Errorf("daily target must be positive, got %d", h.DailyTarget)
	}
	if len(h.CheckIns) == 0 {
		return 0, nil
	}

	first, last := h.CheckIns[0].Date, h.CheckIns[0].Date
	for _, ci := range h.CheckIns[1:] {
		if ci.Date < first {
			first = ci.Date
		}
		if ci.Date > last {
			last = ci.Date
		}
	}

	dates, err := dateutil.Range(first, last)
	if err != nil {
		return 0, err
	}

	completed := h.completedByDate()

	best, run := 0, 0
	for _, date := range dates {
		scheduled, err := h.scheduledCount(date)
		if err != nil {
			return 0, err
		}
		if scheduled == 0 {
			continue
		}

		ok, err := IsDaySuccessful(completed[date], scheduled, h.DailyTarget)
		if err != nil {
			return 0, err
		}
		if ok {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}

	return best, nil
}

func (h History) scheduledCount(date string) (int, error) {
	count := 0
	for _, task := range h.Tasks {
		due, err := task.Rule.IsDue(date)
		if err != nil {
			return 0, fmt.Errorf("task %d: %w", task.TaskID, err)
		}
		if due {
			count++
		}
	}
	return count, nil
}

func (h History) completedByDate() map[string]int {
	counts := make(map[string]int, len(h.CheckIns))
	for _, ci := range h.CheckIns {
		counts[ci.Date]++
	}
	return counts
}
