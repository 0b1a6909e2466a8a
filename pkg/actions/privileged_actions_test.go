package actions

import (
	"errors"
	"log/slog"
	"os/exec"
	"testing"

	"maid/pkg/runner"
	"maid/pkg/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrivilegedAction_Success(t *testing.T) {
	sub := test.NewMockSubmitter()
	sub.Stdout = []string{"Reading package lists...", "0 upgraded"}
	logger := test.NewMockLogger(slog.LevelDebug)

	action := AptAutoremove(*test.SampleSettings(home))
	require.NoError(t, action.Apply(Deps{Privileged: sub}, logger))

	assert.Equal(t, []string{"/usr/bin/apt autoremove -y"}, sub.Commands())
	test.AssertLogContains(t, logger, "INFO: Output task="+LabelAutoremove+" line=Reading package lists...")
	test.AssertLogContains(t, logger, "INFO: Completed successfully")
	test.AssertLogContains(t, logger, "task="+LabelAutoremove)
}

func TestPrivilegedAction_Failure(t *testing.T) {
	sub := test.NewMockSubmitter()
	sub.Stderr = []string{"E: Could not open lock file"}
	sub.ExitCodes["/usr/bin/apt autoclean"] = 100
	logger := test.NewMockLogger(slog.LevelDebug)

	err := AptAutoclean(*test.SampleSettings(home)).Apply(Deps{Privileged: sub}, logger)
	require.Error(t, err)

	var exitErr *runner.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 100, exitErr.Outcome.ExitCode)
	assert.Equal(t, LabelAutoclean+": exit code 100", err.Error())
	test.AssertLogContains(t, logger, "WARN: ERROR task="+LabelAutoclean+" line=E: Could not open lock file")
	test.AssertLogContains(t, logger, "please check your permissions")
}

func TestPrivilegedAction_StartFailure(t *testing.T) {
	sub := test.NewMockSubmitter()
	sub.StartErr = exec.ErrNotFound
	logger := test.NewMockLogger(slog.LevelDebug)

	err := DropCaches(*test.SampleSettings(home)).Apply(Deps{Privileged: sub}, logger)
	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
	test.AssertLogContains(t, logger, "Could not start privileged command")
}

func TestPrivilegedAction_Busy(t *testing.T) {
	sub := test.NewMockSubmitter()
	sub.Busy = true
	logger := test.NewMockLogger(slog.LevelDebug)

	err := CycleSwap(*test.SampleSettings(home)).Apply(Deps{Privileged: sub}, logger)
	require.Error(t, err)
	assert.ErrorIs(t, err, runner.ErrBusy)
	test.AssertLogContains(t, logger, "Please wait for the current operation to finish")
	assert.Empty(t, sub.Commands())
}

func TestPrivilegedAction_NoRunner(t *testing.T) {
	err := Defrag(*test.SampleSettings(home)).Apply(Deps{}, test.NewMockLogger(slog.LevelInfo))
	require.Error(t, err)
}

func TestPrivilegedAction_ExecutionDetails(t *testing.T) {
	s := *test.SampleSettings(home)

	assert.Equal(t,
		[]string{`run (privileged): pkexec sh -c 'sync && echo 3 > /proc/sys/vm/drop_caches'`},
		DropCaches(s).ExecutionDetails())

	s.PrivilegeFrontend = ""
	assert.Equal(t,
		[]string{"run (privileged): pkexec sh -c '/usr/bin/u4defrag -s /'"},
		Defrag(s).ExecutionDetails())
}

func TestPrivilegedAction_TunableDiff(t *testing.T) {
	details := SetSwappiness(*test.SampleSettings(home), 10, "60").ExecutionDetails()

	require.Len(t, details, 4)
	assert.Equal(t, "run (privileged): pkexec sh -c 'sysctl vm.swappiness=10'", details[0])
	assert.Equal(t, "--- diff ---", details[1])
	assert.Contains(t, details[2], "vm.swappiness = ")
	assert.Contains(t, details[2], "\x1b[31m6")
	assert.Contains(t, details[2], "\x1b[32m1")
	assert.Equal(t, "--- end diff ---", details[3])
}
