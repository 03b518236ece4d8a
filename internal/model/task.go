package model

import "time"

// Task is a recurring habit. Scheduling is a weekly pattern: a preset
// plus, for custom schedules, a stored set of ISO weekday numbers
// (0=Monday .. 6=Sunday, comma-separated).
type Task struct {
	ID         uint   `gorm:"primaryKey"`
	PublicID   string `gorm:"uniqueIndex;size:36"`
	UserID     uint   `gorm:"index"`
	Title      string
	Icon       string
	Preset     string `gorm:"size:16"`
	DaysOfWeek string // only set for CUSTOM, e.g. "0,2,4"
	IsActive   bool   `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
