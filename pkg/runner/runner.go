// Package runner executes maintenance commands through a privilege
// escalation front end such as pkexec.
//
// A Runner holds at most one child process at a time. Submit returns as
// soon as the command is accepted; output and the final Outcome are
// delivered to the caller's Sink from a single goroutine per run, so sink
// methods for one run never execute concurrently.
package runner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// DefaultFrontend is the privilege escalation program used when none is configured.
const DefaultFrontend = "pkexec"

const defaultDrainWindow = 500 * time.Millisecond

var (
	// ErrBusy is returned by Submit while a previous command is still running.
	ErrBusy = errors.New("another privileged command is still running")
	// ErrEmptyCommand is returned by Submit for a blank command line.
	ErrEmptyCommand = errors.New("command cannot be empty")
)

// Runner runs one privileged command at a time.
type Runner struct {
	frontend string

	// drainWindow bounds how long output is read after the child exits.
	drainWindow time.Duration

	mu      sync.Mutex
	running bool
	current *exec.Cmd
}

// New returns an idle Runner that escalates through frontend.
func New(frontend string) *Runner {
	if strings.TrimSpace(frontend) == "" {
		frontend = DefaultFrontend
	}
	return &Runner{frontend: frontend, drainWindow: defaultDrainWindow}
}

// Frontend returns the privilege escalation program.
func (r *Runner) Frontend() string {
	return r.frontend
}

// Running reports whether a submitted command has not finished yet.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Submit starts req.Command under the privilege escalation front end.
//
// It fails with ErrBusy if a command is already running and with
// ErrEmptyCommand for a blank command; in both cases nothing is started
// and sink is never called. Otherwise it returns nil immediately and the
// sink receives the command's output followed by exactly one Complete call.
// Failures to start the front end are reported through Complete as well.
func (r *Runner) Submit(req Request, sink Sink) error {
	if strings.TrimSpace(req.Command) == "" {
		return ErrEmptyCommand
	}
	if sink == nil {
		sink = SinkFuncs{}
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrBusy
	}
	r.running = true
	r.mu.Unlock()

	go r.run(req, sink)
	return nil
}

type stream int

const (
	streamStdout stream = iota
	streamStderr
)

type chunk struct {
	stream stream
	text   string
}

// run owns the child for its whole life and is the only caller of sink.
func (r *Runner) run(req Request, sink Sink) {
	started := time.Now()
	inv := Wrap(r.frontend, req.Command)
	outcome := Outcome{
		RunID:      uuid.NewString(),
		TaskLabel:  req.TaskLabel,
		Invocation: inv.String(),
		ExitCode:   -1,
	}

	cmd := exec.Command(inv.Argv[0], inv.Argv[1:]...)
	stdout, stderr, err := startWithPipes(cmd)
	if err != nil {
		outcome.Err = fmt.Errorf("starting %s: %w", inv.Argv[0], err)
		outcome.Elapsed = time.Since(started)
		r.finish()
		sink.Complete(outcome)
		return
	}
	r.mu.Lock()
	r.current = cmd
	r.mu.Unlock()

	events := make(chan chunk)
	var wg sync.WaitGroup
	wg.Add(2)
	go readChunks(stdout, streamStdout, events, &wg)
	go readChunks(stderr, streamStderr, events, &wg)
	go func() {
		wg.Wait()
		close(events)
	}()

	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
	}()

	// The child's exit ends the run. Background jobs it left behind may
	// still hold the pipes open, so output gets drainWindow to arrive and
	// the pipes are then cut.
	var waitErr error
	var drain <-chan time.Time
	pending := events
	for pending != nil || exited != nil {
		select {
		case ev, ok := <-pending:
			if !ok {
				pending = nil
				continue
			}
			switch ev.stream {
			case streamStdout:
				sink.Stdout(ev.text)
			case streamStderr:
				sink.Stderr(ev.text)
			}
		case waitErr = <-exited:
			exited = nil
			drain = time.After(r.drainWindow)
		case <-drain:
			drain = nil
			stdout.SetReadDeadline(time.Now())
			stderr.SetReadDeadline(time.Now())
		}
	}
	stdout.Close()
	stderr.Close()

	outcome.Elapsed = time.Since(started)
	if ps := cmd.ProcessState; ps != nil {
		outcome.NormalExit = ps.Exited()
		outcome.ExitCode = ps.ExitCode()
	}
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		outcome.Err = fmt.Errorf("waiting for %s: %w", inv.Argv[0], waitErr)
	}

	r.finish()
	sink.Complete(outcome)
}

// startWithPipes starts cmd with stdout and stderr connected to fresh
// pipes and returns their read ends. The parent's copies of the write ends
// are closed, so the read ends hit EOF once every writer is gone.
func startWithPipes(cmd *exec.Cmd) (stdout, stderr *os.File, err error) {
	outR, outW, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		outR.Close()
		outW.Close()
		return nil, nil, err
	}
	cmd.Stdout = outW
	cmd.Stderr = errW
	err = cmd.Start()
	outW.Close()
	errW.Close()
	if err != nil {
		outR.Close()
		errR.Close()
		return nil, nil, err
	}
	return outR, errR, nil
}

func (r *Runner) finish() {
	r.mu.Lock()
	r.running = false
	r.current = nil
	r.mu.Unlock()
}

// readChunks forwards every non-blank line of rd, with trailing whitespace
// removed, until EOF.
func readChunks(rd io.Reader, s stream, events chan<- chunk, wg *sync.WaitGroup) {
	defer wg.Done()
	br := bufio.NewReader(rd)
	for {
		line, err := br.ReadString('\n')
		if text := strings.TrimRightFunc(line, unicode.IsSpace); text != "" {
			events <- chunk{stream: s, text: text}
		}
		if err != nil {
			return
		}
	}
}
