package main

import (
	"fmt"

	"github.com/hollandm/punchclock/internal/clockify"
	"github.com/hollandm/punchclock/internal/scan"
	"github.com/hollandm/punchclock/internal/secrets"
	"github.com/hollandm/punchclock/internal/sync"
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	var (
		configPath string
		dryRun     bool
		noScan     bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Post unsynced workdays to Clockify",
		Long:  "Walks every unsynced weekday from the earliest recorded session through yesterday, splits the configured workday window across Clockify projects in proportion to tracked time, and posts each block exactly once. Aborts on the first failure; re-running resumes where it stopped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, configPath, dryRun, noScan)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to punchclock config file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the allocations without posting or recording anything")
	cmd.Flags().BoolVar(&noScan, "no-scan", false, "skip the log rescan before syncing")
	return cmd
}

func runSync(cmd *cobra.Command, configPath string, dryRun, noScan bool) error {
	cfg, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	if cfg.WorkspaceID == "" {
		return fmt.Errorf("sync: workspace_id is not set in %s", configPath)
	}

	out := cmd.OutOrStdout()

	if !noScan {
		result, err := scan.Run(cfg, st)
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		fmt.Fprintf(out, "Scanned %d files, stored %d sessions\n",
			result.FilesScanned, result.SessionsStored)
	}

	// A dry run never posts, so it needs no credentials.
	var poster sync.Poster
	if !dryRun {
		apiKey, err := secrets.Get(secrets.APIKeyName)
		if err != nil {
			return err
		}
		poster = clockify.New(apiKey)
	}

	_, err = sync.Run(st, poster, cfg, out, sync.Options{DryRun: dryRun})
	return err
}
