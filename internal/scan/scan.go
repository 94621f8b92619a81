// Package scan runs the log-to-store pipeline: discover session files, parse
// their events, assemble sessions, and upsert them.
package scan

import (
	"github.com/hollandm/punchclock/internal/config"
	"github.com/hollandm/punchclock/internal/parser"
	"github.com/hollandm/punchclock/internal/scanner"
	"github.com/hollandm/punchclock/internal/store"
)

// Result summarizes one scan pass.
type Result struct {
	FilesScanned   int
	SessionsStored int
}

// Run scans every session file under the configured projects directory and
// upserts one session per file. Files whose events all fail to parse produce
// no session and are not an error; a file that cannot be read, or a storage
// failure, aborts the pass.
func Run(cfg *config.Config, st *store.Store) (Result, error) {
	var result Result

	for _, path := range scanner.FindSessionFiles(cfg.ProjectsDir) {
		result.FilesScanned++

		events, err := scanner.ReadEvents(path)
		if err != nil {
			return result, err
		}

		sess := parser.AssembleSession(events, cfg.IdleTimeout())
		if sess == nil {
			continue
		}
		if err := st.Upsert(scanner.SourceID(path), sess); err != nil {
			return result, err
		}
		result.SessionsStored++
	}
	return result, nil
}
