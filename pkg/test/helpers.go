package test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// CreateTestFile creates a file with content in the test filesystem.
func CreateTestFile(t *testing.T, fs afero.Fs, path, content string) {
	err := fs.MkdirAll(filepath.Dir(path), 0755)
	require.NoError(t, err)
	err = afero.WriteFile(fs, path, []byte(content), 0644)
	require.NoError(t, err)
}

// CreateTestDir creates a directory in the test filesystem.
func CreateTestDir(t *testing.T, fs afero.Fs, path string) {
	err := fs.MkdirAll(path, 0755)
	require.NoError(t, err)
}

// AssertFileExists checks that a file exists and has expected content.
func AssertFileExists(t *testing.T, fs afero.Fs, path, expectedContent string) {
	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	require.True(t, exists, "File %s should exist", path)

	if expectedContent != "" {
		content, err := afero.ReadFile(fs, path)
		require.NoError(t, err)
		require.Equal(t, expectedContent, string(content))
	}
}

// AssertFileNotExists checks that a file does not exist.
func AssertFileNotExists(t *testing.T, fs afero.Fs, path string) {
	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	require.False(t, exists, "File %s should not exist", path)
}

// AssertDirEmpty checks that a directory exists and has no entries.
func AssertDirEmpty(t *testing.T, fs afero.Fs, path string) {
	entries, err := afero.ReadDir(fs, path)
	require.NoError(t, err, "Directory %s should exist", path)
	require.Empty(t, entries, "Directory %s should be empty", path)
}

// AssertCommandExecuted checks that a command was executed by the mock runner.
func AssertCommandExecuted(t *testing.T, runner *MockCommandRunner, command string) {
	require.Contains(t, runner.Commands, command, "Command should have been executed: %s", command)
}

// AssertCommandNotExecuted checks that a command was not executed.
func AssertCommandNotExecuted(t *testing.T, runner *MockCommandRunner, command string) {
	require.NotContains(t, runner.Commands, command, "Command should not have been executed: %s", command)
}

// AssertLogContains checks that the logger captured a message containing the substring.
func AssertLogContains(t *testing.T, logger *MockLogger, substring string) {
	require.True(t, logger.HasMessage(substring), "Log should contain: %s\ncaptured: %v", substring, logger.Messages())
}

// SetupHomeFiles populates a home directory with every artifact the
// cleanup actions know about.
func SetupHomeFiles(t *testing.T, fs afero.Fs, home string) {
	for path, content := range SampleHomeFiles() {
		CreateTestFile(t, fs, filepath.Join(home, path), content)
	}
}
