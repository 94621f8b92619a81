package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hollandm/punchclock/internal/secrets"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Store the Clockify API key in the system keychain",
		RunE:  runSetup,
	}
}

func runSetup(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprint(out, "Clockify API key: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("setup: read API key: %w", err)
	}

	apiKey := strings.TrimSpace(string(raw))
	if apiKey == "" {
		return fmt.Errorf("setup: API key must not be empty")
	}

	if err := secrets.Set(secrets.APIKeyName, apiKey); err != nil {
		return err
	}
	fmt.Fprintln(out, "API key stored in the system keychain.")
	return nil
}
