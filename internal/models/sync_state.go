package models

import "time"

// SyncedDay marks a (date, workspace) pair whose allocations have all been
// posted. Written only after every entry for the day was attempted cleanly.
type SyncedDay struct {
	Date        string `gorm:"primaryKey;size:10"` // YYYY-MM-DD
	WorkspaceID string `gorm:"primaryKey;size:64"`
	CreatedAt   time.Time
}

// SyncedEntry records one successfully posted time entry. The row exists
// only if the POST succeeded; EntryID is the identifier Clockify returned.
type SyncedEntry struct {
	Date        string `gorm:"primaryKey;size:10"` // YYYY-MM-DD
	WorkspaceID string `gorm:"primaryKey;size:64"`
	ProjectID   string `gorm:"primaryKey;size:64"`
	EntryID     string `gorm:"size:64;not null"`
	CreatedAt   time.Time
}
