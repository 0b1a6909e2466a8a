package cmd

import (
	"strings"

	"maid/pkg/actions"
	"maid/pkg/runner"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

var execLabel string

// execCmd represents the exec command
var execCmd = &cobra.Command{
	Use:   "exec [flags] -- command [args...]",
	Short: "Runs an arbitrary command through the privilege escalation front end",
	Long: `The exec command submits one command to the privileged runner and streams its
output. A single argument is taken as a shell command line; several arguments
are quoted and joined.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		command := args[0]
		if len(args) > 1 {
			command = shellquote.Join(args...)
		}
		label := execLabel
		if strings.TrimSpace(label) == "" {
			label = command
		}
		action := &actions.PrivilegedAction{
			Request:  runner.Request{Command: command, TaskLabel: label},
			Frontend: s.PrivilegeFrontend,
		}
		return runPlan(cmd, label, s, []actions.Action{action})
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().StringVar(&execLabel, "label", "", "Task label used in output (default is the command)")
	execCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the invocation without running it")
	execCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the plan in JSON format (only valid with --dry-run)")
}
