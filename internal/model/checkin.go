package model

import "time"

// CheckIn records that a task was completed on a civil date
// (YYYY-MM-DD). At most one exists per task and date.
type CheckIn struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	TaskID    uint   `gorm:"index:idx_checkin_task_date,unique"`
	Date      string `gorm:"size:10;index:idx_checkin_task_date,unique;index"`
	CreatedAt time.Time
}
