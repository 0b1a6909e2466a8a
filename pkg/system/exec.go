package system

import (
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner runs unprivileged helper programs such as find and shred.
// This allows for mocking in tests.
type CommandRunner interface {
	Run(name string, args ...string) ([]byte, error)
}

// LiveCommandRunner is an implementation of CommandRunner that runs commands on the live system.
type LiveCommandRunner struct{}

// Run executes name with args and returns its combined output. A missing
// program yields an error wrapping exec.ErrNotFound.
func (r *LiveCommandRunner) Run(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
