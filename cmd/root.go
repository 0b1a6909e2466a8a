package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"maid/pkg/actions"
	"maid/pkg/config"
	"maid/pkg/console"
	"maid/pkg/log"
	"maid/pkg/model"
	"maid/pkg/plan"
	"maid/pkg/runner"
	"maid/pkg/system"

	"github.com/spf13/cobra"
)

type contextKey string

const loggerKey contextKey = "logger"

var (
	cfgFile    string
	envFile    string
	logLevel   string
	logFormat  string
	jsonOutput bool
	dryRun     bool
	cmdRunner  system.CommandRunner = &system.LiveCommandRunner{}
	// newPrivileged builds the runner for privileged tasks; tests replace it.
	newPrivileged = func(frontend string) actions.Submitter {
		return runner.New(frontend)
	}
	rootCmd = &cobra.Command{
		Use:   "maid",
		Short: "maid cleans and tunes a Linux desktop",
		Long: `maid removes trash, history and cache residue from your home folder and
runs privileged maintenance (APT cleanup, RAM and swap cleanup, defragmentation,
CPU governor and swappiness changes) through a privilege escalation front end
such as pkexec.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			var logger log.Logger
			switch logFormat {
			case "text":
				logger = log.NewSlogLogger(level, cmd.ErrOrStderr())
			case "json":
				logger = log.NewJSONLogger(level, cmd.ErrOrStderr())
			default:
				return fmt.Errorf("invalid log format: %s", logFormat)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, loggerKey, logger))
			return nil
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loggerFrom(cmd *cobra.Command) log.Logger {
	return cmd.Context().Value(loggerKey).(log.Logger)
}

func loadSettings(cmd *cobra.Command) (*model.Settings, error) {
	return config.LoadConfig(cfgFile, envFile, loggerFrom(cmd))
}

func deps(s *model.Settings) actions.Deps {
	return actions.Deps{
		Runner:     cmdRunner,
		Privileged: newPrivileged(s.PrivilegeFrontend),
	}
}

// printPlan writes the dry-run view of actionPlan, as JSON with --json.
func printPlan(cmd *cobra.Command, actionPlan []actions.Action) error {
	if jsonOutput {
		actionsForJSON := []actionForJSON{}
		for _, action := range actionPlan {
			actionsForJSON = append(actionsForJSON, newActionForJSON(action))
		}
		jsonBytes, err := json.MarshalIndent(actionsForJSON, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plan to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Dry run enabled. The following operations would be performed:")
	console.NewPrinter(cmd.OutOrStdout()).Plan(actionPlan)
	return nil
}

// runPlan executes actionPlan, or prints it with --dry-run. --json alone
// is rejected so a request for machine output never changes the system.
func runPlan(cmd *cobra.Command, title string, s *model.Settings, actionPlan []actions.Action) error {
	if jsonOutput && !dryRun {
		return fmt.Errorf("--json is only valid with --dry-run")
	}
	if dryRun {
		return printPlan(cmd, actionPlan)
	}
	printer := console.NewPrinter(cmd.OutOrStdout())
	printer.Heading("%s", title)
	err := plan.Execute(actionPlan, deps(s), loggerFrom(cmd))
	printer.Result(title, err)
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is $XDG_CONFIG_HOME/maid/maid.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file with MAID_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}
