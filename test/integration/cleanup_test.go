//go:build integration
// +build integration

package integration

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"maid/pkg/actions"
	"maid/pkg/plan"
	"maid/pkg/system"
	"maid/pkg/test"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	system.AppFs = afero.NewOsFs()
	home := t.TempDir()
	test.SetupHomeFiles(t, system.AppFs, home)
	return home
}

func TestCleanup_BrokenLinksAndEmptyDirs(t *testing.T) {
	requireTools(t, "find")
	home := setupHome(t)
	require.NoError(t, os.Symlink(filepath.Join(home, "gone"), filepath.Join(home, "dangling")))
	require.NoError(t, os.Symlink(filepath.Join(home, "Documents/notes.txt"), filepath.Join(home, "notes-link")))
	require.NoError(t, os.MkdirAll(filepath.Join(home, "empty/nested"), 0o755))

	actionPlan, err := plan.CleanupPlan(*test.SampleSettings(home), plan.CleanupSelection{BrokenLinks: true, EmptyDirs: true})
	require.NoError(t, err)
	require.NoError(t, plan.Execute(actionPlan, actions.Deps{Runner: &system.LiveCommandRunner{}}, test.NewMockLogger(slog.LevelInfo)))

	_, err = os.Lstat(filepath.Join(home, "dangling"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Lstat(filepath.Join(home, "notes-link"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(home, "empty"))
	assert.True(t, os.IsNotExist(err))
}

func TestCleanup_SecureTrash(t *testing.T) {
	requireTools(t, "shred")
	home := setupHome(t)
	s := test.SampleSettings(home)
	s.SecureDelete = true
	logger := test.NewMockLogger(slog.LevelInfo)

	actionPlan, err := plan.CleanupPlan(*s, plan.CleanupSelection{Trash: true})
	require.NoError(t, err)
	require.NoError(t, plan.Execute(actionPlan, actions.Deps{Runner: &system.LiveCommandRunner{}}, logger))

	test.AssertDirEmpty(t, system.AppFs, filepath.Join(home, actions.TrashFilesDir))
	test.AssertDirEmpty(t, system.AppFs, filepath.Join(home, actions.TrashInfoDir))
	test.AssertLogContains(t, logger, "Secure deletion successful")
}

func TestCleanup_SymlinkTargetsSurvive(t *testing.T) {
	home := setupHome(t)
	outside := filepath.Join(t.TempDir(), "precious.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))
	require.NoError(t, os.Symlink(outside, filepath.Join(home, actions.TrashFilesDir, "link")))

	s := test.SampleSettings(home)
	s.SecureDelete = true
	s.Binaries.Shred = "maid-no-such-shred"

	actionPlan, err := plan.CleanupPlan(*s, plan.CleanupSelection{Trash: true})
	require.NoError(t, err)
	require.NoError(t, plan.Execute(actionPlan, actions.Deps{Runner: &system.LiveCommandRunner{}}, test.NewMockLogger(slog.LevelInfo)))

	content, err := os.ReadFile(outside)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(content))
	test.AssertDirEmpty(t, system.AppFs, filepath.Join(home, actions.TrashFilesDir))
}
