package cmd

import (
	"maid/pkg/plan"

	"github.com/spf13/cobra"
)

var (
	aptAutoremove bool
	aptAutoclean  bool
)

// aptCmd represents the apt command
var aptCmd = &cobra.Command{
	Use:   "apt",
	Short: "Runs APT package cleanup with elevated privileges",
	Long: `The apt command removes unneeded dependencies (--autoremove) and old
downloaded package files (--autoclean). The selected tasks run one after the
other through the privilege escalation front end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		actionPlan, err := plan.AptPlan(*s, aptAutoremove, aptAutoclean)
		if err != nil {
			return err
		}
		return runPlan(cmd, "APT cleanup", s, actionPlan)
	},
}

func init() {
	rootCmd.AddCommand(aptCmd)
	aptCmd.Flags().BoolVar(&aptAutoremove, "autoremove", false, "Delete unnecessary dependencies")
	aptCmd.Flags().BoolVar(&aptAutoclean, "autoclean", false, "Delete old downloaded package files")
	aptCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the commands without running them")
	aptCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the plan in JSON format (only valid with --dry-run)")
}
