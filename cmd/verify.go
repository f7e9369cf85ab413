package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <serial-number>",
	Short: "Check whether a receiver serial number is assigned to the account",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	client, persist, err := loadShareClient()
	if err != nil {
		return err
	}

	assigned, err := client.VerifySerialNumber(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("verify serial number: %w", err)
	}
	persist()

	if assigned {
		fmt.Fprintf(cmd.OutOrStdout(), "Serial %s is assigned to this account.\n", args[0])
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Serial %s is not assigned to this account.\n", args[0])
	}
	return nil
}
