package runner

import (
	"fmt"
	"time"
)

// Request is a single command submission.
type Request struct {
	// Command is a shell command line, e.g. "/usr/bin/apt autoremove -y".
	Command string
	// TaskLabel names the operation in outcome reports. It is never interpreted.
	TaskLabel string
}

// Outcome describes how a submitted command ended.
type Outcome struct {
	RunID      string
	TaskLabel  string
	Invocation string // the command line actually executed, shell-quoted
	ExitCode   int    // -1 when the process did not exit normally or never started
	NormalExit bool
	Err        error // set when the front end could not be started or waited on
	Elapsed    time.Duration
}

// Success reports whether the process exited normally with status 0.
func (o Outcome) Success() bool {
	return o.Err == nil && o.NormalExit && o.ExitCode == 0
}

// AsError returns nil for a successful outcome and an *ExitError otherwise.
func (o Outcome) AsError() error {
	if o.Success() {
		return nil
	}
	return &ExitError{Outcome: o}
}

// ExitError is a failed Outcome used as an error.
type ExitError struct {
	Outcome Outcome
}

func (e *ExitError) Error() string {
	switch {
	case e.Outcome.Err != nil:
		return fmt.Sprintf("%s: %v", e.Outcome.TaskLabel, e.Outcome.Err)
	case !e.Outcome.NormalExit:
		return fmt.Sprintf("%s: terminated abnormally", e.Outcome.TaskLabel)
	default:
		return fmt.Sprintf("%s: exit code %d", e.Outcome.TaskLabel, e.Outcome.ExitCode)
	}
}

func (e *ExitError) Unwrap() error {
	return e.Outcome.Err
}

// Sink receives the events of one submission.
type Sink interface {
	Stdout(chunk string)
	Stderr(chunk string)
	Complete(outcome Outcome)
}

// SinkFuncs adapts plain functions to Sink. Nil fields are ignored.
type SinkFuncs struct {
	OnStdout   func(chunk string)
	OnStderr   func(chunk string)
	OnComplete func(outcome Outcome)
}

func (f SinkFuncs) Stdout(chunk string) {
	if f.OnStdout != nil {
		f.OnStdout(chunk)
	}
}

func (f SinkFuncs) Stderr(chunk string) {
	if f.OnStderr != nil {
		f.OnStderr(chunk)
	}
}

func (f SinkFuncs) Complete(outcome Outcome) {
	if f.OnComplete != nil {
		f.OnComplete(outcome)
	}
}
