package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/hollandm/punchclock/internal/clockify"
	"github.com/hollandm/punchclock/internal/secrets"
	"github.com/hollandm/punchclock/internal/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var (
		configPath string
		interval   time.Duration
		schedule   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the session database current as logs change",
		Long:  "Watches the projects directory and rescans session logs whenever they change, with a periodic fallback rescan. With --schedule, also runs a sync pass on a 5-field cron schedule (e.g. \"0 18 * * 1-5\" for 18:00 on weekdays).",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatchCmd(cmd, configPath, interval, schedule)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to punchclock config file")
	cmd.Flags().DurationVar(&interval, "interval", watch.DefaultInterval, "fallback rescan interval")
	cmd.Flags().StringVar(&schedule, "schedule", "", "cron schedule for automatic sync passes")
	return cmd
}

func runWatchCmd(cmd *cobra.Command, configPath string, interval time.Duration, schedule string) error {
	cfg, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	opts := watch.Options{Interval: interval, Schedule: schedule}
	if schedule != "" {
		if cfg.WorkspaceID == "" {
			return fmt.Errorf("watch: --schedule requires workspace_id in %s", configPath)
		}
		apiKey, err := secrets.Get(secrets.APIKeyName)
		if err != nil {
			return err
		}
		opts.Poster = clockify.New(apiKey)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s... (Ctrl+C to stop)\n", cfg.ProjectsDir)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return watch.Run(ctx, cfg, st, out, opts)
}
