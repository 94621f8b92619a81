// Package scanner discovers and reads Claude Code session log files.
package scanner

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hollandm/punchclock/internal/parser"
)

// FindSessionFiles returns every session JSONL file under projectsDir,
// sorted for deterministic scan order. Layout is one subdirectory per
// project, each holding session files. agent-* files are subagent
// transcripts and are skipped. A missing or unreadable directory yields an
// empty list: having no logs yet is not an error.
func FindSessionFiles(projectsDir string) []string {
	var results []string

	projectDirs, err := os.ReadDir(projectsDir)
	if err != nil {
		return results
	}

	for _, projectEntry := range projectDirs {
		if !projectEntry.IsDir() {
			continue
		}
		projectPath := filepath.Join(projectsDir, projectEntry.Name())

		files, err := os.ReadDir(projectPath)
		if err != nil {
			continue
		}
		for _, fileEntry := range files {
			if fileEntry.IsDir() {
				continue
			}
			name := fileEntry.Name()
			if strings.HasSuffix(name, ".jsonl") && !strings.HasPrefix(name, "agent-") {
				results = append(results, filepath.Join(projectPath, name))
			}
		}
	}

	sort.Strings(results)
	return results
}

// ReadEvents parses every recognizable event from one session file, in file
// order. Malformed or irrelevant lines are dropped silently.
func ReadEvents(path string) ([]parser.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scanner: open %s: %w", path, err)
	}
	defer f.Close()

	var events []parser.Event

	sc := bufio.NewScanner(f)
	// Assistant messages can embed large tool results on a single line.
	sc.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)

	for sc.Scan() {
		if ev, ok := parser.ParseLine(sc.Text()); ok {
			events = append(events, ev)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanner: read %s: %w", path, err)
	}
	return events, nil
}

// SourceID is the stable identity used to key a session in the store:
// the project directory name plus the file name.
func SourceID(path string) string {
	return filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path))
}
