package actions

import (
	"maid/pkg/log"
	"maid/pkg/runner"
	"maid/pkg/system"
)

// Action represents a single maintenance task.
type Action interface {
	// Description returns a human-readable string of what the action does.
	Description() string
	// Apply executes the action.
	Apply(deps Deps, logger log.Logger) error
	// ExecutionDetails returns a slice of strings describing the low-level operations.
	ExecutionDetails() []string
}

// Submitter accepts privileged commands; *runner.Runner implements it.
type Submitter interface {
	Submit(req runner.Request, sink runner.Sink) error
}

// Deps are the executors an action may use.
type Deps struct {
	Runner     system.CommandRunner
	Privileged Submitter
}
