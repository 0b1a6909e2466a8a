package cmd

import (
	"fmt"

	"maid/pkg/actions"
)

// actionForJSON is the machine-readable form of one planned action.
type actionForJSON struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Privileged  bool     `json:"privileged"`
	Command     string   `json:"command,omitempty"`
	Details     []string `json:"details"`
}

func newActionForJSON(action actions.Action) actionForJSON {
	out := actionForJSON{
		Type:        fmt.Sprintf("%T", action),
		Description: action.Description(),
		Details:     action.ExecutionDetails(),
	}
	if p, ok := action.(*actions.PrivilegedAction); ok {
		out.Privileged = true
		out.Command = p.Request.Command
	}
	return out
}
