// Package allocate converts a day's tracked sessions into proportional,
// contiguous time blocks inside the workday window.
package allocate

import (
	"fmt"
	"sort"
	"time"

	"github.com/hollandm/punchclock/internal/parser"
)

// Allocation is one contiguous block of the workday assigned to a Clockify
// project. Ephemeral: recomputed on every sync pass, never persisted.
type Allocation struct {
	ProjectID string
	Start     time.Time
	End       time.Time
}

// Result holds the ordered allocations plus the names of projects whose time
// was excluded because they are unmapped and no fallback is configured.
type Result struct {
	Allocations []Allocation
	Skipped     []string
}

// Compute splits the workday window across Clockify projects in proportion
// to tracked active time. Pure and deterministic: destinations are laid out
// in lexicographic project-id order from workdayStart, each block floor-sized
// from its share, with the rounding remainder absorbed by the last block so
// the final end lands exactly on workdayEnd.
//
// A session whose project is unmapped goes to otherProjectID when set;
// otherwise its project name is recorded in Skipped (deduplicated, first-seen
// order) and its time is excluded from the split entirely.
func Compute(sessions []parser.Session, mapping map[string]string, otherProjectID string, workdayStart, workdayEnd time.Time) Result {
	buckets := make(map[string]int64)
	var skipped []string
	skippedSeen := make(map[string]bool)
	var totalIncluded int64

	for _, sess := range sessions {
		secs := int64(sess.ActiveDuration / time.Second)

		projectID, ok := mapping[sess.Project]
		if !ok {
			if otherProjectID == "" {
				if !skippedSeen[sess.Project] {
					skippedSeen[sess.Project] = true
					skipped = append(skipped, sess.Project)
				}
				continue
			}
			projectID = otherProjectID
		}
		buckets[projectID] += secs
		totalIncluded += secs
	}

	if len(buckets) == 0 {
		return Result{Skipped: skipped}
	}

	ids := make([]string, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	workdaySecs := int64(workdayEnd.Sub(workdayStart) / time.Second)

	durations := make([]int64, len(ids))
	var sumAllocated int64
	for i, id := range ids {
		if totalIncluded > 0 {
			// Integer division floors, so this never over-allocates.
			durations[i] = workdaySecs * buckets[id] / totalIncluded
		}
		sumAllocated += durations[i]
	}
	durations[len(durations)-1] += workdaySecs - sumAllocated

	allocations := make([]Allocation, 0, len(ids))
	cursor := workdayStart
	for i, id := range ids {
		end := cursor.Add(time.Duration(durations[i]) * time.Second)
		allocations = append(allocations, Allocation{ProjectID: id, Start: cursor, End: end})
		cursor = end
	}

	return Result{Allocations: allocations, Skipped: skipped}
}

// WorkdayBounds converts the configured local HH:MM boundaries into UTC
// instants for one calendar date. A boundary that does not exist on that
// date (a DST spring-forward gap) is an error: silently shifting it would
// change every allocation for the day.
func WorkdayBounds(date time.Time, startHHMM, endHHMM string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := boundaryInstant(date, startHHMM, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("allocate: work day start: %w", err)
	}
	end, err := boundaryInstant(date, endHHMM, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("allocate: work day end: %w", err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("allocate: work day end %s not after start %s on %s",
			endHHMM, startHHMM, date.Format("2006-01-02"))
	}
	return start, end, nil
}

func boundaryInstant(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", hhmm, err)
	}
	y, m, d := date.Date()
	local := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc)
	// time.Date normalizes nonexistent local times; a round-trip mismatch
	// means this clock reading is inside a DST gap on this date.
	if local.Hour() != clock.Hour() || local.Minute() != clock.Minute() {
		return time.Time{}, fmt.Errorf("%s does not exist on %s in %s (DST transition)",
			hhmm, date.Format("2006-01-02"), loc)
	}
	return local.UTC(), nil
}

// IsWeekday reports whether t falls Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
