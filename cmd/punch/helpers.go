package main

import (
	"github.com/hollandm/punchclock/internal/config"
	"github.com/hollandm/punchclock/internal/db"
	"github.com/hollandm/punchclock/internal/store"
)

// defaultConfigPath is the --config default for every command.
func defaultConfigPath() string {
	return config.DefaultPath()
}

// openStore loads the config and opens the migrated session store.
func openStore(configPath string) (*config.Config, *store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	gormDB, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return nil, nil, err
	}
	return cfg, store.New(gormDB), nil
}
