package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's sessions and token totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to punchclock config file")
	return cmd
}

func runStatus(cmd *cobra.Command, configPath string) error {
	_, st, err := openStore(configPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	loc := st.Location()

	now := time.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// Query a day either side, then keep sessions touching today's local
	// date; this catches a session that started before midnight.
	candidates, err := st.QueryRange(dayStart.AddDate(0, 0, -1), dayStart.AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	count := 0
	var totalActive time.Duration
	var input, output int64
	for _, s := range candidates {
		if !s.ActiveOn(now, loc) {
			continue
		}
		if count == 0 {
			fmt.Fprintf(out, "Sessions for %s:\n", now.Format("2006-01-02"))
		}
		count++
		totalActive += s.ActiveDuration
		input += s.InputTokens
		output += s.OutputTokens
		project := s.Project
		if project == "" {
			project = "(unknown)"
		}
		fmt.Fprintf(out, "  %-40s %8s  (%s-%s)\n",
			project,
			formatDuration(s.ActiveDuration),
			s.Start.In(loc).Format("15:04"),
			s.End.In(loc).Format("15:04"))
	}

	if count == 0 {
		fmt.Fprintln(out, "No sessions today.")
		return nil
	}
	fmt.Fprintf(out, "Total: %s across %d session(s)\n", formatDuration(totalActive), count)
	fmt.Fprintf(out, "Tokens: %s in / %s out\n", formatTokenCount(input), formatTokenCount(output))
	return nil
}
