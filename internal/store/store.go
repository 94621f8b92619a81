// Package store persists sessions and sync bookkeeping in SQLite via GORM.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/hollandm/punchclock/internal/models"
	"github.com/hollandm/punchclock/internal/parser"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DateFormat is the canonical YYYY-MM-DD key for day-level bookkeeping.
const DateFormat = "2006-01-02"

// Store wraps a GORM connection with the session and sync-state operations.
type Store struct {
	db  *gorm.DB
	loc *time.Location
}

// New returns a Store that derives calendar dates in the local timezone.
func New(gormDB *gorm.DB) *Store {
	return NewInLocation(gormDB, time.Local)
}

// NewInLocation returns a Store pinned to a specific timezone. Tests use UTC
// so date derivation doesn't depend on the machine running them.
func NewInLocation(gormDB *gorm.DB, loc *time.Location) *Store {
	return &Store{db: gormDB, loc: loc}
}

// Location returns the timezone used for calendar-date derivation.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Upsert inserts or replaces the session row for sourcePath. The stored date
// is recomputed from the session start, so a re-scan that shifts a session
// across midnight moves it to the right day.
func (s *Store) Upsert(sourcePath string, sess *parser.Session) error {
	row := models.Session{
		SourcePath:      sourcePath,
		Project:         sess.Project,
		Date:            sess.Start.In(s.loc).Format(DateFormat),
		StartTime:       sess.Start.UTC(),
		EndTime:         sess.End.UTC(),
		DurationSeconds: int64(sess.ActiveDuration / time.Second),

		InputTokens:              sess.InputTokens,
		OutputTokens:             sess.OutputTokens,
		CacheCreationInputTokens: sess.CacheCreationInputTokens,
		CacheReadInputTokens:     sess.CacheReadInputTokens,
	}
	result := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row)
	if result.Error != nil {
		return fmt.Errorf("store: upsert %s: %w", sourcePath, result.Error)
	}
	return nil
}

// QueryRange returns every session whose [start, end) interval intersects
// [rangeStart, rangeEnd), ordered by start. The overlap test start < rangeEnd
// AND end >= rangeStart surfaces sessions straddling a boundary from either
// adjacent day's query.
func (s *Store) QueryRange(rangeStart, rangeEnd time.Time) ([]parser.Session, error) {
	var rows []models.Session
	err := s.db.
		Where("start_time < ? AND end_time >= ?", rangeEnd.UTC(), rangeStart.UTC()).
		Order("start_time").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: query range: %w", err)
	}

	sessions := make([]parser.Session, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, parser.Session{
			Start:          row.StartTime.UTC(),
			End:            row.EndTime.UTC(),
			ActiveDuration: time.Duration(row.DurationSeconds) * time.Second,
			Project:        row.Project,

			InputTokens:              row.InputTokens,
			OutputTokens:             row.OutputTokens,
			CacheCreationInputTokens: row.CacheCreationInputTokens,
			CacheReadInputTokens:     row.CacheReadInputTokens,
		})
	}
	return sessions, nil
}

// EarliestSessionDate returns the local calendar date of the earliest stored
// session start. ok is false when the store is empty.
func (s *Store) EarliestSessionDate() (date time.Time, ok bool, err error) {
	var row models.Session
	result := s.db.Order("start_time").First(&row)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if result.Error != nil {
		return time.Time{}, false, fmt.Errorf("store: earliest session: %w", result.Error)
	}
	local := row.StartTime.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc), true, nil
}

// IsDaySynced reports whether the (date, workspace) pair is marked complete.
func (s *Store) IsDaySynced(date, workspaceID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.SyncedDay{}).
		Where("date = ? AND workspace_id = ?", date, workspaceID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("store: is day synced: %w", err)
	}
	return count > 0, nil
}

// MarkDaySynced records the (date, workspace) pair as complete. A single
// atomic insert: marking an already-marked day is an error.
func (s *Store) MarkDaySynced(date, workspaceID string) error {
	row := models.SyncedDay{Date: date, WorkspaceID: workspaceID}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("store: mark day synced %s: %w", date, err)
	}
	return nil
}

// IsEntrySynced reports whether a time entry was already posted for the
// (date, workspace, project) key.
func (s *Store) IsEntrySynced(date, workspaceID, projectID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.SyncedEntry{}).
		Where("date = ? AND workspace_id = ? AND project_id = ?", date, workspaceID, projectID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("store: is entry synced: %w", err)
	}
	return count > 0, nil
}

// MarkEntrySynced records a successfully posted entry with the identifier
// the external system returned.
func (s *Store) MarkEntrySynced(date, workspaceID, projectID, entryID string) error {
	row := models.SyncedEntry{
		Date:        date,
		WorkspaceID: workspaceID,
		ProjectID:   projectID,
		EntryID:     entryID,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("store: mark entry synced %s/%s: %w", date, projectID, err)
	}
	return nil
}
