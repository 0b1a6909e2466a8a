package cmd

import (
	"encoding/json"
	"fmt"

	"maid/pkg/console"
	"maid/pkg/system"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows memory, swap, swappiness and CPU governor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := system.InferStatus(cmd.Context())
		if err != nil {
			return err
		}
		for _, w := range status.Warnings {
			loggerFrom(cmd).Debug("Probe failed", "error", w)
		}

		if jsonOutput {
			jsonBytes, err := json.MarshalIndent(status, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal status to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
			return nil
		}
		console.NewPrinter(cmd.OutOrStdout()).Status(status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the status in JSON format")
}
