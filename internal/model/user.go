package model

import "time"

// User stores Telegram identity plus habit settings.
type User struct {
	ID          uint  `gorm:"primaryKey"`
	TelegramID  int64 `gorm:"uniqueIndex"`
	FirstName   string
	LastName    string
	Username    string
	DailyTarget int `gorm:"default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
