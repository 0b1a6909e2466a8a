package cmd

import (
	"fmt"
	"strconv"

	"maid/pkg/actions"
	"maid/pkg/model"
	"maid/pkg/plan"

	"github.com/spf13/cobra"
)

var (
	governorRestore   bool
	swappinessRestore bool
)

// optimizeCmd groups the privileged tuning tasks.
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Runs privileged memory, disk and CPU tuning tasks",
}

// singleTask builds a subcommand running one catalog task.
func singleTask(use, short string, build func(model.Settings) *actions.PrivilegedAction) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			action := build(*s)
			return runPlan(cmd, action.Description(), s, []actions.Action{action})
		},
	}
}

var ramCmd = singleTask("ram", "Frees the page cache, dentries and inodes (drop_caches)", actions.DropCaches)

var swapCmd = singleTask("swap", "Clears the swap area by cycling swapoff and swapon", actions.CycleSwap)

var defragCmd = singleTask("defrag", "Defragments the configured filesystem with u4defrag", actions.Defrag)

var governorCmd = &cobra.Command{
	Use:   "governor [name]",
	Short: "Sets the CPU frequency governor",
	Long: `The governor command switches the cpufreq governor. Without a name it applies
the configured power saving governor (powersave); --restore applies the
configured restore governor (performance).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		governor := s.Governor.Apply
		switch {
		case governorRestore && len(args) > 0:
			return fmt.Errorf("--restore cannot be combined with a governor name")
		case governorRestore:
			governor = s.Governor.Restore
		case len(args) > 0:
			governor = args[0]
		}
		actionPlan, err := plan.GovernorPlan(*s, governor)
		if err != nil {
			return err
		}
		return runPlan(cmd, actionPlan[0].Description(), s, actionPlan)
	},
}

var swappinessCmd = &cobra.Command{
	Use:   "swappiness [value]",
	Short: "Sets vm.swappiness until the next reboot",
	Long: `The swappiness command sets the kernel's tendency to use swap memory. Without
a value it applies the configured low value (10); --restore applies the
configured restore value (60).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		value := s.Swappiness.Apply
		switch {
		case swappinessRestore && len(args) > 0:
			return fmt.Errorf("--restore cannot be combined with a value")
		case swappinessRestore:
			value = s.Swappiness.Restore
		case len(args) > 0:
			value, err = strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid swappiness %q: %w", args[0], err)
			}
		}
		actionPlan, err := plan.SwappinessPlan(*s, value)
		if err != nil {
			return err
		}
		return runPlan(cmd, actionPlan[0].Description(), s, actionPlan)
	},
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	optimizeCmd.AddCommand(ramCmd, swapCmd, defragCmd, governorCmd, swappinessCmd)
	optimizeCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show the command without running it")
	optimizeCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output the plan in JSON format (only valid with --dry-run)")
	governorCmd.Flags().BoolVar(&governorRestore, "restore", false, "Apply the configured restore governor")
	swappinessCmd.Flags().BoolVar(&swappinessRestore, "restore", false, "Apply the configured restore value")
}
