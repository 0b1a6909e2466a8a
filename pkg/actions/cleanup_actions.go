package actions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"maid/pkg/log"
	"maid/pkg/system"

	"github.com/spf13/afero"
)

const (
	TrashFilesDir = ".local/share/Trash/files"
	TrashInfoDir  = ".local/share/Trash/info"
)

// ClearDirAction deletes the contents of a directory.
type ClearDirAction struct {
	Label string
	Dir   string
	Deletion
}

func (a *ClearDirAction) Description() string {
	return a.Label
}

func (a *ClearDirAction) Apply(deps Deps, logger log.Logger) error {
	ok, err := dirExists(a.Dir)
	if err != nil {
		return err
	}
	if !ok {
		logger.Info("Directory not found", "dir", a.Dir)
		return nil
	}
	count, err := a.clearDir(deps.Runner, logger, a.Dir)
	logger.Info("Directory contents cleaned", "dir", a.Dir, "items", count)
	return err
}

func (a *ClearDirAction) ExecutionDetails() []string {
	return []string{fmt.Sprintf("delete contents of %s%s", a.Dir, a.detail())}
}

// DeleteFilesAction deletes individual files; missing ones are skipped.
type DeleteFilesAction struct {
	Label string
	Paths []string
	Deletion
}

func (a *DeleteFilesAction) Description() string {
	return a.Label
}

func (a *DeleteFilesAction) Apply(deps Deps, logger log.Logger) error {
	var errs []error
	for _, path := range a.Paths {
		ok, err := fileExists(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			logger.Info("File not found", "path", path)
			continue
		}
		if err := a.removeFile(deps.Runner, logger, path); err != nil {
			logger.Error("Error deleting file", "path", path, "error", err)
			errs = append(errs, err)
			continue
		}
		logger.Info("File deleted", "path", path)
	}
	return errors.Join(errs...)
}

func (a *DeleteFilesAction) ExecutionDetails() []string {
	details := make([]string, 0, len(a.Paths))
	for _, path := range a.Paths {
		details = append(details, fmt.Sprintf("delete file %s%s", path, a.detail()))
	}
	return details
}

// EmptyTrashAction empties the invoking user's trash bin, including the
// .trashinfo records that name the original locations.
type EmptyTrashAction struct {
	Home string
	Deletion
}

func (a *EmptyTrashAction) Description() string {
	return "Empty current user's trash bin"
}

func (a *EmptyTrashAction) Apply(deps Deps, logger log.Logger) error {
	filesDir := filepath.Join(a.Home, TrashFilesDir)
	ok, err := dirExists(filesDir)
	if err != nil {
		return err
	}
	if !ok {
		logger.Info("Trash bin directory not found, skipping", "dir", filesDir)
		return nil
	}

	count, filesErr := a.clearDir(deps.Runner, logger, filesDir)

	infoDir := filepath.Join(a.Home, TrashInfoDir)
	var infoErr error
	if ok, err := dirExists(infoDir); err != nil {
		infoErr = err
	} else if ok {
		_, infoErr = a.clearDir(deps.Runner, logger, infoDir)
	}

	logger.Info("Trash bin cleaned", "items", count)
	return errors.Join(filesErr, infoErr)
}

func (a *EmptyTrashAction) ExecutionDetails() []string {
	return []string{
		fmt.Sprintf("delete contents of %s%s", filepath.Join(a.Home, TrashFilesDir), a.detail()),
		fmt.Sprintf("delete contents of %s%s", filepath.Join(a.Home, TrashInfoDir), a.detail()),
	}
}

// ThumbsDBAction deletes thumbs.db files (any case) left by Windows shares.
type ThumbsDBAction struct {
	Home string
	Deletion
}

func (a *ThumbsDBAction) Description() string {
	return "Delete thumbs.db files in home folder"
}

func (a *ThumbsDBAction) Apply(deps Deps, logger log.Logger) error {
	var found []string
	walkErr := afero.Walk(system.AppFs, a.Home, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable directories are skipped, not fatal.
			logger.Debug("Skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if info.Mode().IsRegular() && strings.EqualFold(info.Name(), "thumbs.db") {
			found = append(found, path)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("searching %s: %w", a.Home, walkErr)
	}

	var errs []error
	deleted := 0
	for _, path := range found {
		if err := a.removeFile(deps.Runner, logger, path); err != nil {
			logger.Error("Error deleting thumbs.db", "path", path, "error", err)
			errs = append(errs, err)
			continue
		}
		deleted++
		logger.Info("Deleted", "path", path)
	}
	logger.Info("thumbs.db cleanup completed", "files", deleted)
	return errors.Join(errs...)
}

func (a *ThumbsDBAction) ExecutionDetails() []string {
	return []string{fmt.Sprintf("delete every thumbs.db under %s%s", a.Home, a.detail())}
}

// FindDeleteAction runs `find <home> <expr...>` where expr ends in -delete.
type FindDeleteAction struct {
	Label string
	Find  string
	Home  string
	Expr  []string
}

func (a *FindDeleteAction) Description() string {
	return a.Label
}

func (a *FindDeleteAction) args() []string {
	return append([]string{a.Home}, a.Expr...)
}

func (a *FindDeleteAction) Apply(deps Deps, logger log.Logger) error {
	if strings.TrimSpace(a.Home) == "" {
		return fmt.Errorf("home directory cannot be empty")
	}
	logger.Info("Searching home folder", "task", a.Label, "home", a.Home)
	if _, err := deps.Runner.Run(a.Find, a.args()...); err != nil {
		return fmt.Errorf("%s: %w", a.Label, err)
	}
	logger.Info("Cleanup completed", "task", a.Label)
	return nil
}

func (a *FindDeleteAction) ExecutionDetails() []string {
	return []string{fmt.Sprintf("run: %s %s", a.Find, strings.Join(a.args(), " "))}
}

// UserCachesAction clears the contents of per-user cache directories.
type UserCachesAction struct {
	Home string
	Dirs []string // relative to Home
	Deletion
}

func (a *UserCachesAction) Description() string {
	return "Clean Snap/Flatpak/user cache residue"
}

func (a *UserCachesAction) Apply(deps Deps, logger log.Logger) error {
	var errs []error
	cleaned := 0
	for _, rel := range a.Dirs {
		dir := filepath.Join(a.Home, rel)
		ok, err := dirExists(dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}
		if _, err := a.clearDir(deps.Runner, logger, dir); err != nil {
			logger.Error("Cleanup error", "dir", dir, "error", err)
			errs = append(errs, err)
			continue
		}
		cleaned++
		logger.Info("Cleaned", "dir", dir)
	}
	logger.Info("User cache residue cleanup completed", "groups", cleaned)
	return errors.Join(errs...)
}

func (a *UserCachesAction) ExecutionDetails() []string {
	details := make([]string, 0, len(a.Dirs))
	for _, rel := range a.Dirs {
		details = append(details, fmt.Sprintf("delete contents of %s%s", filepath.Join(a.Home, rel), a.detail()))
	}
	return details
}
