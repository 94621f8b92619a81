// Package sync walks unsynced calendar days and posts their allocations.
package sync

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hollandm/punchclock/internal/allocate"
	"github.com/hollandm/punchclock/internal/config"
	"github.com/hollandm/punchclock/internal/store"
)

// Poster is the single-method capability for creating an external time
// entry. The Clockify client satisfies it; tests inject fakes.
type Poster interface {
	PostTimeEntry(projectID string, start, end time.Time, workspaceID string) (string, error)
}

// Options tunes a sync run.
type Options struct {
	// Now is the clock used to compute "yesterday"; nil means time.Now.
	Now func() time.Time
	// DryRun computes and prints allocations without posting or recording.
	DryRun bool
}

// Stats summarizes a completed run.
type Stats struct {
	Days    int
	Entries int
}

// Run processes every unsynced weekday from the earliest stored session
// through yesterday, in ascending order. Today is always excluded: its work
// day is not complete. Days with no sessions, and days whose projects were
// all skipped, are left unsynced so later re-scans or mapping changes can
// pick them up. The first posting failure aborts the whole run; entries
// already recorded stay recorded, so a re-run resumes where this one stopped.
func Run(st *store.Store, poster Poster, cfg *config.Config, out io.Writer, opts Options) (Stats, error) {
	var stats Stats

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	loc := st.Location()

	startDate, ok, err := st.EarliestSessionDate()
	if err != nil {
		return stats, err
	}
	if !ok {
		fmt.Fprintln(out, "No sessions found. Nothing to sync.")
		return stats, nil
	}

	today := now().In(loc)
	yesterday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)

	if startDate.After(yesterday) {
		fmt.Fprintln(out, "No complete workdays to sync.")
		return stats, nil
	}

	fmt.Fprintf(out, "Syncing workdays from %s to %s...\n",
		startDate.Format(store.DateFormat), yesterday.Format(store.DateFormat))

	for date := startDate; !date.After(yesterday); date = date.AddDate(0, 0, 1) {
		if !allocate.IsWeekday(date) {
			continue
		}
		dateStr := date.Format(store.DateFormat)

		synced, err := st.IsDaySynced(dateStr, cfg.WorkspaceID)
		if err != nil {
			return stats, err
		}
		if synced {
			continue
		}

		dayStart, dayEnd, err := allocate.WorkdayBounds(date, cfg.WorkDayStart, cfg.WorkDayEnd, loc)
		if err != nil {
			return stats, err
		}

		sessions, err := st.QueryRange(dayStart, dayEnd)
		if err != nil {
			return stats, err
		}
		if len(sessions) == 0 {
			continue
		}

		result := allocate.Compute(sessions, cfg.ProjectMapping, cfg.OtherProjectID, dayStart, dayEnd)
		if len(result.Skipped) > 0 {
			fmt.Fprintf(out, "  %s - skipped unmapped projects: %s\n", dateStr, strings.Join(result.Skipped, ", "))
		}
		if len(result.Allocations) == 0 {
			fmt.Fprintf(out, "  %s - no allocations (all projects skipped)\n", dateStr)
			continue
		}

		if opts.DryRun {
			fmt.Fprintf(out, "  %s - would post %d entries:\n", dateStr, len(result.Allocations))
			for _, a := range result.Allocations {
				fmt.Fprintf(out, "    %s  %s - %s\n", a.ProjectID,
					a.Start.In(loc).Format("15:04"), a.End.In(loc).Format("15:04"))
			}
			continue
		}

		dayEntries, err := postDay(st, poster, cfg, dateStr, result.Allocations)
		if err != nil {
			return stats, fmt.Errorf("sync: %s: %w", dateStr, err)
		}

		if err := st.MarkDaySynced(dateStr, cfg.WorkspaceID); err != nil {
			return stats, err
		}

		fmt.Fprintf(out, "  %s - %d entries posted\n", dateStr, dayEntries)
		stats.Days++
		stats.Entries += dayEntries
	}

	fmt.Fprintln(out, "---")
	fmt.Fprintf(out, "Synced %d days, %d total entries\n", stats.Days, stats.Entries)
	return stats, nil
}

// postDay posts one day's allocations in engine order, skipping entries a
// previous run already recorded.
func postDay(st *store.Store, poster Poster, cfg *config.Config, dateStr string, allocations []allocate.Allocation) (int, error) {
	posted := 0
	for _, a := range allocations {
		synced, err := st.IsEntrySynced(dateStr, cfg.WorkspaceID, a.ProjectID)
		if err != nil {
			return posted, err
		}
		if synced {
			continue
		}

		entryID, err := poster.PostTimeEntry(a.ProjectID, a.Start, a.End, cfg.WorkspaceID)
		if err != nil {
			return posted, fmt.Errorf("post entry for %s: %w", a.ProjectID, err)
		}

		if err := st.MarkEntrySynced(dateStr, cfg.WorkspaceID, a.ProjectID, entryID); err != nil {
			return posted, err
		}
		posted++
	}
	return posted, nil
}
