package runner

import (
	"path"
	"strings"
	"unicode"

	"github.com/kballard/go-shellquote"
)

// shellMetachars force a command through a shell even without whitespace.
const shellMetachars = "|&;<>()$`\\\"'*?[#~"

var shells = map[string]bool{"sh": true, "bash": true, "dash": true}

// Invocation is the argv handed to the operating system.
type Invocation struct {
	Argv []string
}

// String renders the invocation as a shell-quoted command line.
func (i Invocation) String() string {
	return shellquote.Join(i.Argv...)
}

// Wrap builds the front end invocation for command:
//
//   - a single plain word runs directly: [frontend, command]
//   - an explicit shell invocation such as `sh -c "swapoff -a && swapon -a"`
//     is split into words and passed through without another shell layer
//   - anything else, including text that does not split cleanly, becomes
//     one argument of [frontend, sh, -c, command]
func Wrap(frontend, command string) Invocation {
	command = strings.TrimSpace(command)
	if !strings.ContainsFunc(command, unicode.IsSpace) && !strings.ContainsAny(command, shellMetachars) {
		return Invocation{Argv: []string{frontend, command}}
	}
	if words, err := shellquote.Split(command); err == nil && isShellInvocation(words) {
		return Invocation{Argv: append([]string{frontend}, words...)}
	}
	return Invocation{Argv: []string{frontend, "sh", "-c", command}}
}

func isShellInvocation(words []string) bool {
	return len(words) >= 3 && shells[path.Base(words[0])] && words[1] == "-c"
}
