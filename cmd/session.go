package cmd

import (
	"fmt"
	"time"

	"github.com/dexshare/dexshare-go/internal/config"
	"github.com/dexshare/dexshare-go/internal/session"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage cached Share sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached sessions",
	RunE:  runSessionList,
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached sessions",
	RunE:  runSessionClear,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionClearCmd)
}

func newSessionManager() (*session.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return session.NewManager(cfg.DataDir), nil
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	manager, err := newSessionManager()
	if err != nil {
		return err
	}

	records, err := manager.List()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cached sessions found.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "FINGERPRINT\tREGION\tACCOUNT\tUPDATED_AT")
	for _, record := range records {
		accountLabel := record.Username
		if accountLabel == "" {
			accountLabel = record.AccountID
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
			record.Fingerprint,
			record.Region,
			accountLabel,
			record.UpdatedAt.Format(time.RFC3339),
		)
	}
	return nil
}

func runSessionClear(cmd *cobra.Command, _ []string) error {
	manager, err := newSessionManager()
	if err != nil {
		return err
	}

	if err := manager.Clear(); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Cached sessions cleared.")
	return nil
}
