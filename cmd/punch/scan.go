package main

import (
	"fmt"

	"github.com/hollandm/punchclock/internal/scan"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan session logs into the local database",
		Long:  "Reads every Claude Code session log under the projects directory, assembles one idle-aware session per file, and upserts it into the local database. Safe to re-run: a rescan replaces each session wholesale.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to punchclock config file")
	return cmd
}

func runScan(cmd *cobra.Command, configPath string) error {
	cfg, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	result, err := scan.Run(cfg, st)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d files, stored %d sessions\n",
		result.FilesScanned, result.SessionsStored)
	return nil
}
