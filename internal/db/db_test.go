package db

import (
	"path/filepath"
	"testing"
)

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "punchclock.db")
	gormDB, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := AutoMigrate(gormDB); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	var tables []string
	if err := gormDB.Raw(
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'",
	).Scan(&tables).Error; err != nil {
		t.Fatalf("list tables: %v", err)
	}
	want := map[string]bool{"sessions": false, "synced_days": false, "synced_entries": false}
	for _, name := range tables {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("table %q not created (got %v)", name, tables)
		}
	}
}

func TestAllModels_Count(t *testing.T) {
	if got := len(AllModels()); got != 3 {
		t.Errorf("AllModels() returned %d models, want 3", got)
	}
}
