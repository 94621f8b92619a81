package models

import "time"

// Session is one assembled work session, keyed by the log file it came from.
// Re-scanning the same file replaces the row wholesale.
type Session struct {
	SourcePath      string    `gorm:"primaryKey;size:255"`
	Project         string    `gorm:"not null;index"`
	Date            string    `gorm:"size:10;not null;index"` // local date of Start, YYYY-MM-DD
	StartTime       time.Time `gorm:"not null;index"`
	EndTime         time.Time `gorm:"not null"`
	DurationSeconds int64     `gorm:"not null"`

	InputTokens              int64 `gorm:"not null;default:0"`
	OutputTokens             int64 `gorm:"not null;default:0"`
	CacheCreationInputTokens int64 `gorm:"not null;default:0"`
	CacheReadInputTokens     int64 `gorm:"not null;default:0"`
}
