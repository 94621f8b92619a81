package main

import (
	"fmt"

	"github.com/hollandm/punchclock/internal/clockify"
	"github.com/hollandm/punchclock/internal/config"
	"github.com/hollandm/punchclock/internal/secrets"
	"github.com/spf13/cobra"
)

func newProjectsCmd() *cobra.Command {
	var (
		configPath   string
		showArchived bool
	)

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List Clockify projects in the configured workspace",
		Long:  "Lists project IDs and names for the configured workspace, for use in the project_mapping section of the config file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjects(cmd, configPath, showArchived)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to punchclock config file")
	cmd.Flags().BoolVar(&showArchived, "archived", false, "include archived projects")
	return cmd
}

func runProjects(cmd *cobra.Command, configPath string, showArchived bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.WorkspaceID == "" {
		return fmt.Errorf("projects: workspace_id is not set in %s", configPath)
	}

	apiKey, err := secrets.Get(secrets.APIKeyName)
	if err != nil {
		return err
	}

	projects, err := clockify.New(apiKey).ListProjects(cfg.WorkspaceID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	shown := 0
	for _, p := range projects {
		if p.Archived && !showArchived {
			continue
		}
		marker := ""
		if p.Archived {
			marker = "  (archived)"
		}
		fmt.Fprintf(out, "%s  %s%s\n", p.ID, p.Name, marker)
		shown++
	}
	fmt.Fprintf(out, "%d project(s)\n", shown)
	return nil
}
