package actions

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"maid/pkg/log"
	"maid/pkg/system"

	"github.com/spf13/afero"
)

// Deletion decides how regular files are removed. Directories and
// symlinks are always removed normally.
type Deletion struct {
	Secure bool
	Shred  string
}

func (d Deletion) detail() string {
	if d.Secure {
		return fmt.Sprintf(" (secure: %s -f -u)", d.Shred)
	}
	return ""
}

// removeFile overwrites path with shred when secure deletion is on. If
// shred is not installed it falls back to a normal delete.
func (d Deletion) removeFile(runner system.CommandRunner, logger log.Logger, path string) error {
	if d.Secure {
		_, err := runner.Run(d.Shred, "-f", "-u", path)
		if err == nil {
			logger.Info("Secure deletion successful", "path", path)
			return nil
		}
		if !errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("secure deletion of %s: %w", path, err)
		}
		logger.Warn("shred not found, performing normal deletion", "path", path)
	}
	if err := system.AppFs.Remove(path); err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	logger.Debug("File deleted", "path", path)
	return nil
}

// clearDir removes every entry of dir but keeps dir itself.
func (d Deletion) clearDir(runner system.CommandRunner, logger log.Logger, dir string) (int, error) {
	entries, err := afero.ReadDir(system.AppFs, dir)
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", dir, err)
	}

	var errs []error
	count := 0
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		var err error
		switch {
		case entry.Mode()&os.ModeSymlink != 0:
			err = Deletion{}.removeFile(runner, logger, path)
		case entry.IsDir():
			if err = system.AppFs.RemoveAll(path); err != nil {
				err = fmt.Errorf("deleting %s: %w", path, err)
			}
		default:
			err = d.removeFile(runner, logger, path)
		}
		if err != nil {
			logger.Error("Error cleaning directory entry", "path", path, "error", err)
			errs = append(errs, err)
			continue
		}
		count++
	}
	return count, errors.Join(errs...)
}

func dirExists(path string) (bool, error) {
	ok, err := afero.IsDir(system.AppFs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return ok, err
}

func fileExists(path string) (bool, error) {
	_, err := system.AppFs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}
