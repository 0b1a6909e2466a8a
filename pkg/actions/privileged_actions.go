package actions

import (
	"errors"
	"fmt"
	"strings"

	"maid/pkg/log"
	"maid/pkg/runner"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// TunableChange records a kernel or cpufreq setting before and after a task.
type TunableChange struct {
	Name    string
	Current string
	Desired string
}

// Diff renders the change the way file updates are rendered.
func (c TunableChange) Diff() []string {
	dmp := diffmatchpatch.New()
	before := fmt.Sprintf("%s = %s\n", c.Name, c.Current)
	after := fmt.Sprintf("%s = %s\n", c.Name, c.Desired)
	diffs := dmp.DiffMain(before, after, false)
	return []string{
		"--- diff ---",
		dmp.DiffPrettyText(diffs),
		"--- end diff ---",
	}
}

// PrivilegedAction submits one command through the privilege front end and
// waits for its outcome.
type PrivilegedAction struct {
	Request  runner.Request
	Frontend string
	Tunable  *TunableChange
}

func (a *PrivilegedAction) Description() string {
	return a.Request.TaskLabel
}

func (a *PrivilegedAction) Apply(deps Deps, logger log.Logger) error {
	if deps.Privileged == nil {
		return fmt.Errorf("%s: no privileged runner configured", a.Request.TaskLabel)
	}
	logger = logger.With("task", a.Request.TaskLabel)

	done := make(chan runner.Outcome, 1)
	sink := runner.SinkFuncs{
		OnStdout: func(chunk string) {
			logger.Info("Output", "line", chunk)
		},
		OnStderr: func(chunk string) {
			logger.Warn("ERROR", "line", chunk)
		},
		OnComplete: func(out runner.Outcome) {
			done <- out
		},
	}

	logger.Debug("Submitting privileged command", "command", a.Request.Command)
	if err := deps.Privileged.Submit(a.Request, sink); err != nil {
		if errors.Is(err, runner.ErrBusy) {
			logger.Warn("Please wait for the current operation to finish")
		}
		return fmt.Errorf("%s: %w", a.Request.TaskLabel, err)
	}

	out := <-done
	if out.Success() {
		logger.Info("Completed successfully", "run", out.RunID, "elapsed", out.Elapsed)
		return nil
	}
	if out.Err != nil {
		logger.Error("Could not start privileged command", "error", out.Err)
	} else {
		logger.Error("Command failed, please check your permissions",
			"exit_code", out.ExitCode, "normal_exit", out.NormalExit)
	}
	return out.AsError()
}

func (a *PrivilegedAction) ExecutionDetails() []string {
	frontend := a.Frontend
	if strings.TrimSpace(frontend) == "" {
		frontend = runner.DefaultFrontend
	}
	details := []string{fmt.Sprintf("run (privileged): %s", runner.Wrap(frontend, a.Request.Command))}
	if a.Tunable != nil {
		details = append(details, a.Tunable.Diff()...)
	}
	return details
}
