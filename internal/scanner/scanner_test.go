package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindSessionFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "-work-myapp", "session-1.jsonl"), "")
	writeFile(t, filepath.Join(dir, "-work-myapp", "session-2.jsonl"), "")
	writeFile(t, filepath.Join(dir, "-work-myapp", "agent-abc.jsonl"), "")
	writeFile(t, filepath.Join(dir, "-work-myapp", "notes.txt"), "")
	writeFile(t, filepath.Join(dir, "-work-other", "session-3.jsonl"), "")

	got := FindSessionFiles(dir)
	want := []string{
		filepath.Join(dir, "-work-myapp", "session-1.jsonl"),
		filepath.Join(dir, "-work-myapp", "session-2.jsonl"),
		filepath.Join(dir, "-work-other", "session-3.jsonl"),
	}
	if len(got) != len(want) {
		t.Fatalf("FindSessionFiles returned %d files, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFindSessionFiles_MissingDir(t *testing.T) {
	got := FindSessionFiles(filepath.Join(t.TempDir(), "nope"))
	if len(got) != 0 {
		t.Errorf("FindSessionFiles on missing dir = %v, want empty", got)
	}
}

func TestReadEvents_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p", "s.jsonl")
	writeFile(t, path, `{"type":"user","timestamp":"2026-02-04T10:00:00Z","cwd":"/work/myapp"}
not json at all
{"type":"summary","summary":"irrelevant"}
{"type":"assistant","timestamp":"2026-02-04T10:00:30Z"}
`)

	events, err := ReadEvents(path)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("ReadEvents returned %d events, want 2", len(events))
	}
	if events[0].Directory != "/work/myapp" {
		t.Errorf("events[0].Directory = %q, want %q", events[0].Directory, "/work/myapp")
	}
}

func TestSourceID(t *testing.T) {
	got := SourceID("/home/u/.claude/projects/-work-myapp/session-1.jsonl")
	want := filepath.Join("-work-myapp", "session-1.jsonl")
	if got != want {
		t.Errorf("SourceID = %q, want %q", got, want)
	}
}
