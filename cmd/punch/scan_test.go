package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig writes a config pointing at throwaway directories and
// returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	projectsDir := filepath.Join(dir, "projects")
	if err := os.MkdirAll(projectsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(dir, "config.yaml")
	yaml := fmt.Sprintf("projects_dir: %s\ndb_path: %s\nworkspace_id: ws-test\n",
		projectsDir, filepath.Join(dir, "punch.db"))
	if err := os.WriteFile(configPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func TestScanCmd_EmptyProjectsDir(t *testing.T) {
	configPath := writeTestConfig(t)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"scan", "--config", configPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Scanned 0 files") {
		t.Errorf("output = %q, want scan summary", buf.String())
	}
}

func TestStatusCmd_NoSessions(t *testing.T) {
	configPath := writeTestConfig(t)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"status", "--config", configPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions today.") {
		t.Errorf("output = %q, want empty-day message", buf.String())
	}
}

func TestScanThenStatus(t *testing.T) {
	configPath := writeTestConfig(t)

	// Put one session in today's logs so status has something to show.
	cfgBytes, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	var projectsDir string
	for _, line := range strings.Split(string(cfgBytes), "\n") {
		if after, ok := strings.CutPrefix(line, "projects_dir: "); ok {
			projectsDir = after
		}
	}

	logDir := filepath.Join(projectsDir, "-work-myapp")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		t.Fatal(err)
	}
	nowish := "2026-02-04T10:00:00Z"
	log := fmt.Sprintf(`{"type":"user","timestamp":"%s","cwd":"/work/myapp"}
`, nowish)
	if err := os.WriteFile(filepath.Join(logDir, "session-1.jsonl"), []byte(log), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"scan", "--config", configPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !strings.Contains(buf.String(), "stored 1 sessions") {
		t.Errorf("scan output = %q, want 1 stored session", buf.String())
	}
}

func TestDBInitCmd(t *testing.T) {
	configPath := writeTestConfig(t)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"db", "init", "--config", configPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("db init failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Database ready") {
		t.Errorf("output = %q, want ready message", buf.String())
	}
}

func TestDBResetCmd_AbortsWithoutConfirmation(t *testing.T) {
	configPath := writeTestConfig(t)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader("n\n"))
	cmd.SetArgs([]string{"db", "reset", "--config", configPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("db reset failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Aborted.") {
		t.Errorf("output = %q, want abort message", buf.String())
	}
}
