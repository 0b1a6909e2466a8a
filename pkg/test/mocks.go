package test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"maid/pkg/log"
	"maid/pkg/runner"
)

// MockCommandRunner is a shared mock implementation of system.CommandRunner for testing.
// It tracks executed commands and allows setting up responses and errors.
type MockCommandRunner struct {
	Commands  []string          // Track executed command lines
	Responses map[string][]byte // Response by command line
	Errors    map[string]error  // Error by command line
	// OnRun, when set, runs before the configured response is returned.
	OnRun func(name string, args ...string)
}

// NewMockCommandRunner creates a new MockCommandRunner with initialized maps.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		Commands:  []string{},
		Responses: make(map[string][]byte),
		Errors:    make(map[string]error),
	}
}

// Run simulates running a command and returns configured response or error.
func (r *MockCommandRunner) Run(name string, args ...string) ([]byte, error) {
	key := CommandLine(name, args...)
	r.Commands = append(r.Commands, key)
	if r.OnRun != nil {
		r.OnRun(name, args...)
	}
	if err, ok := r.Errors[key]; ok {
		return nil, err
	}
	if resp, ok := r.Responses[key]; ok {
		return resp, nil
	}
	return nil, nil
}

// SetResponse configures a response for a specific command line.
func (r *MockCommandRunner) SetResponse(command string, response []byte) {
	r.Responses[command] = response
}

// SetError configures an error for a specific command line.
func (r *MockCommandRunner) SetError(command string, err error) {
	r.Errors[command] = err
}

// Reset clears all tracked commands and configurations.
func (r *MockCommandRunner) Reset() {
	r.Commands = []string{}
	r.Responses = make(map[string][]byte)
	r.Errors = make(map[string]error)
}

// CommandLine joins argv with single spaces, the key format of MockCommandRunner.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// MockSubmitter stands in for the privileged runner. Each accepted
// submission is answered asynchronously with the configured output and
// outcome, the way runner.Runner answers.
type MockSubmitter struct {
	mu       sync.Mutex
	Requests []runner.Request
	// Busy makes every submission fail with runner.ErrBusy.
	Busy bool
	// Stdout and Stderr are replayed to the sink before completion.
	Stdout []string
	Stderr []string
	// ExitCodes maps a command to its exit code; missing commands exit 0.
	ExitCodes map[string]int
	// StartErr simulates a front end that cannot be started.
	StartErr error
}

// NewMockSubmitter creates a MockSubmitter whose commands all succeed.
func NewMockSubmitter() *MockSubmitter {
	return &MockSubmitter{ExitCodes: make(map[string]int)}
}

func (s *MockSubmitter) Submit(req runner.Request, sink runner.Sink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Busy {
		return runner.ErrBusy
	}
	s.Requests = append(s.Requests, req)

	outcome := runner.Outcome{
		RunID:      fmt.Sprintf("run-%d", len(s.Requests)),
		TaskLabel:  req.TaskLabel,
		Invocation: runner.Wrap("pkexec", req.Command).String(),
		ExitCode:   s.ExitCodes[req.Command],
		NormalExit: true,
	}
	if s.StartErr != nil {
		outcome.ExitCode = -1
		outcome.NormalExit = false
		outcome.Err = s.StartErr
	}
	stdout, stderr := append([]string(nil), s.Stdout...), append([]string(nil), s.Stderr...)

	go func() {
		for _, line := range stdout {
			sink.Stdout(line)
		}
		for _, line := range stderr {
			sink.Stderr(line)
		}
		sink.Complete(outcome)
	}()
	return nil
}

// Commands returns the submitted command lines in order.
func (s *MockSubmitter) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	commands := make([]string, 0, len(s.Requests))
	for _, req := range s.Requests {
		commands = append(commands, req.Command)
	}
	return commands
}

// MockLogger is a shared mock implementation of Logger for testing.
// It captures logged messages for verification.
type MockLogger struct {
	mu       *sync.Mutex
	messages *[]string
	attrs    []any
	Level    slog.Level
}

// NewMockLogger creates a new MockLogger with the specified level.
func NewMockLogger(level slog.Level) *MockLogger {
	return &MockLogger{
		mu:       &sync.Mutex{},
		messages: &[]string{},
		Level:    level,
	}
}

// Debug captures debug messages.
func (l *MockLogger) Debug(msg string, args ...any) {
	if l.Level <= slog.LevelDebug {
		l.captureMessage("DEBUG", msg, args...)
	}
}

// Info captures info messages.
func (l *MockLogger) Info(msg string, args ...any) {
	if l.Level <= slog.LevelInfo {
		l.captureMessage("INFO", msg, args...)
	}
}

// Warn captures warn messages.
func (l *MockLogger) Warn(msg string, args ...any) {
	if l.Level <= slog.LevelWarn {
		l.captureMessage("WARN", msg, args...)
	}
}

// Error captures error messages.
func (l *MockLogger) Error(msg string, args ...any) {
	if l.Level <= slog.LevelError {
		l.captureMessage("ERROR", msg, args...)
	}
}

// With returns a logger sharing this logger's message buffer.
func (l *MockLogger) With(args ...any) log.Logger {
	return &MockLogger{
		mu:       l.mu,
		messages: l.messages,
		attrs:    append(append([]any(nil), l.attrs...), args...),
		Level:    l.Level,
	}
}

func (l *MockLogger) captureMessage(level, msg string, args ...any) {
	// Simple string formatting for captured messages
	buf := &bytes.Buffer{}
	buf.WriteString(level)
	buf.WriteString(": ")
	buf.WriteString(msg)
	all := append(append([]any(nil), l.attrs...), args...)
	for i := 0; i+1 < len(all); i += 2 {
		buf.WriteString(" ")
		buf.WriteString(fmt.Sprintf("%v", all[i]))
		buf.WriteString("=")
		buf.WriteString(fmt.Sprintf("%v", all[i+1]))
	}
	l.mu.Lock()
	*l.messages = append(*l.messages, buf.String())
	l.mu.Unlock()
}

// Messages returns a copy of the captured messages.
func (l *MockLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), *l.messages...)
}

// Reset clears all captured messages.
func (l *MockLogger) Reset() {
	l.mu.Lock()
	*l.messages = []string{}
	l.mu.Unlock()
}

// HasMessage checks if any captured message contains the given substring.
func (l *MockLogger) HasMessage(substring string) bool {
	for _, msg := range l.Messages() {
		if strings.Contains(msg, substring) {
			return true
		}
	}
	return false
}
