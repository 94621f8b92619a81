// Package watch keeps the session store current by rescanning logs when
// they change, and optionally runs sync passes on a cron schedule. The
// rescan runs on a background goroutine and reports over a channel; it never
// touches the sync bookkeeping concurrently with a sync pass.
package watch

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hollandm/punchclock/internal/config"
	"github.com/hollandm/punchclock/internal/scan"
	"github.com/hollandm/punchclock/internal/store"
	"github.com/hollandm/punchclock/internal/sync"
)

// DefaultInterval is the fallback rescan period when no file events arrive.
const DefaultInterval = 30 * time.Second

// debounce coalesces bursts of writes to the same log file into one rescan.
const debounce = 500 * time.Millisecond

// Options tunes the watch loop.
type Options struct {
	// Interval is the fallback rescan period; zero means DefaultInterval.
	Interval time.Duration
	// Schedule is an optional 5-field cron expression; when it fires, a sync
	// pass runs with Poster.
	Schedule string
	// Poster posts time entries for scheduled sync passes.
	Poster sync.Poster
}

// Run watches the projects directory until ctx is cancelled. Every change to
// a session file (plus a periodic fallback tick) triggers a rescan; progress
// is printed to out with a spinner frame per pass.
func Run(ctx context.Context, cfg *config.Config, st *store.Store, out io.Writer, opts Options) error {
	if opts.Schedule != "" && !validSchedule(opts.Schedule) {
		return fmt.Errorf("watch: invalid cron schedule %q", opts.Schedule)
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchProjectTree(watcher, cfg.ProjectsDir); err != nil {
		return err
	}

	// File events are forwarded as rescan requests; the loop below debounces
	// them so one logical save triggers one pass.
	requests := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				// New project directories appear as creates on the root.
				if ev.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						if err := watcher.Add(ev.Name); err != nil {
							log.Printf("watch: add %s: %v", ev.Name, err)
						}
						continue
					}
				}
				if !relevantEvent(ev) {
					continue
				}
				select {
				case requests <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("watch: %v", err)
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var syncTimer *time.Timer
	var syncFire <-chan time.Time
	if opts.Schedule != "" {
		syncTimer = time.NewTimer(nextCronDuration(opts.Schedule))
		syncFire = syncTimer.C
		defer syncTimer.Stop()
	}

	var spinner Spinner
	rescan := func() {
		spinner.Tick()
		result, err := scan.Run(cfg, st)
		if err != nil {
			log.Printf("watch: rescan: %v", err)
			return
		}
		fmt.Fprintf(out, "%c scanned %d files, %d sessions (%s)\n",
			spinner.Current(), result.FilesScanned, result.SessionsStored,
			time.Now().Format("15:04:05"))
	}

	rescan()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-requests:
			// Let the burst of writes settle before reading.
			timer := time.NewTimer(debounce)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case <-timer.C:
			}
			drain(requests)
			rescan()
		case <-ticker.C:
			rescan()
		case <-syncFire:
			if _, err := sync.Run(st, opts.Poster, cfg, out, sync.Options{}); err != nil {
				log.Printf("watch: scheduled sync: %v", err)
			}
			syncTimer.Reset(nextCronDuration(opts.Schedule))
		}
	}
}

// watchProjectTree registers the projects dir and each project subdirectory.
// fsnotify does not recurse, and session files live one level down.
func watchProjectTree(watcher *fsnotify.Watcher, projectsDir string) error {
	if err := watcher.Add(projectsDir); err != nil {
		return fmt.Errorf("watch: add %s: %w", projectsDir, err)
	}
	dirs, err := listProjectDirs(projectsDir)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch: add %s: %w", dir, err)
		}
	}
	return nil
}

// listProjectDirs returns the immediate subdirectories of projectsDir.
func listProjectDirs(projectsDir string) ([]string, error) {
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil, fmt.Errorf("watch: read %s: %w", projectsDir, err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(projectsDir, entry.Name()))
		}
	}
	return dirs, nil
}

// relevantEvent reports whether a file event should trigger a rescan:
// writes, creates, or removes of session JSONL files.
func relevantEvent(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Remove) {
		return false
	}
	return strings.HasSuffix(ev.Name, ".jsonl")
}

func drain(ch chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
