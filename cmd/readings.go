package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dexshare/dexshare-go/pkg/dexshare"
	"github.com/spf13/cobra"
)

var (
	readingsMinutes int
	readingsCount   int
)

var readingsCmd = &cobra.Command{
	Use:   "readings",
	Short: "List recent glucose readings",
	RunE:  runReadings,
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recent glucose reading within the last 24 hours",
	RunE:  runLatest,
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current glucose reading, if one is recent enough",
	RunE:  runCurrent,
}

func init() {
	rootCmd.AddCommand(readingsCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(currentCmd)
	readingsCmd.Flags().IntVar(&readingsMinutes, "minutes", dexshare.MaxMinutes, "lookback window in minutes (1-1440)")
	readingsCmd.Flags().IntVar(&readingsCount, "count", dexshare.MaxCount, "maximum number of readings (1-288)")
}

func runReadings(cmd *cobra.Command, _ []string) error {
	client, persist, err := loadShareClient()
	if err != nil {
		return err
	}

	readings, err := client.Readings(context.Background(), readingsMinutes, readingsCount)
	if err != nil {
		return fmt.Errorf("fetch readings: %w", err)
	}
	persist()

	if len(readings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No readings found.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "TIME\tMG/DL\tMMOL/L\tTREND")
	for _, reading := range readings {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%.1f\t%s %s\n",
			reading.Timestamp().Format(time.RFC3339),
			reading.MgDl(),
			reading.MmolL(),
			reading.Trend().Arrow(),
			reading.Trend().Description(),
		)
	}
	return nil
}

func runLatest(cmd *cobra.Command, _ []string) error {
	client, persist, err := loadShareClient()
	if err != nil {
		return err
	}

	reading, err := client.Latest(context.Background())
	if err != nil {
		return fmt.Errorf("fetch latest reading: %w", err)
	}
	persist()

	printReading(cmd, reading)
	return nil
}

func runCurrent(cmd *cobra.Command, _ []string) error {
	client, persist, err := loadShareClient()
	if err != nil {
		return err
	}

	reading, err := client.Current(context.Background())
	if err != nil {
		return fmt.Errorf("fetch current reading: %w", err)
	}
	persist()

	printReading(cmd, reading)
	return nil
}

func printReading(cmd *cobra.Command, reading *dexshare.Reading) {
	if reading == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No reading available.")
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d mg/dL (%.1f mmol/L) %s %s at %s\n",
		reading.MgDl(),
		reading.MmolL(),
		reading.Trend().Arrow(),
		reading.Trend().Description(),
		reading.Timestamp().Format(time.RFC3339),
	)
}
