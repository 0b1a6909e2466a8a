package plan

import (
	"errors"
	"fmt"
	"strconv"

	"maid/pkg/actions"
	"maid/pkg/log"
	"maid/pkg/model"
	"maid/pkg/system"
)

// CleanupSelection says which cleanup tasks to run.
type CleanupSelection struct {
	BrokenLinks      bool
	EmptyDirs        bool
	UserCaches       bool
	Trash            bool
	RecentXbel       bool
	RecentDocs       bool
	RecentHistory    bool
	ThumbsDB         bool
	ThumbnailsLarge  bool
	ThumbnailsNormal bool
}

// AllCleanup selects every cleanup task.
func AllCleanup() CleanupSelection {
	return CleanupSelection{
		BrokenLinks: true, EmptyDirs: true, UserCaches: true, Trash: true,
		RecentXbel: true, RecentDocs: true, RecentHistory: true, ThumbsDB: true,
		ThumbnailsLarge: true, ThumbnailsNormal: true,
	}
}

// Any reports whether at least one task is selected.
func (c CleanupSelection) Any() bool {
	return c != CleanupSelection{}
}

// ErrNothingSelected is returned when a plan would be empty.
var ErrNothingSelected = errors.New("nothing selected")

// CleanupPlan returns the selected cleanup actions: filesystem cleanup
// first, then trash, privacy history, thumbs.db and thumbnail caches.
func CleanupPlan(s model.Settings, sel CleanupSelection) ([]actions.Action, error) {
	if !sel.Any() {
		return nil, fmt.Errorf("select at least one cleanup option: %w", ErrNothingSelected)
	}
	home := s.Home
	del := actions.Deletion{Secure: s.SecureDelete, Shred: s.Binaries.Shred}
	var plan []actions.Action

	if sel.BrokenLinks {
		plan = append(plan, &actions.FindDeleteAction{
			Label: "Delete Broken Symbolic Links in Home Folder",
			Find:  s.Binaries.Find,
			Home:  home,
			Expr:  []string{"-xtype", "l", "-delete"},
		})
	}
	if sel.EmptyDirs {
		plan = append(plan, &actions.FindDeleteAction{
			Label: "Delete Empty Directories in Home Folder",
			Find:  s.Binaries.Find,
			Home:  home,
			Expr:  []string{"-depth", "-type", "d", "-empty", "-delete"},
		})
	}
	if sel.UserCaches {
		plan = append(plan, &actions.UserCachesAction{Home: home, Dirs: s.UserCaches, Deletion: del})
	}
	if sel.Trash {
		plan = append(plan, &actions.EmptyTrashAction{Home: home, Deletion: del})
	}
	if sel.RecentXbel {
		plan = append(plan, &actions.DeleteFilesAction{
			Label:    "Clean Recently Used (.xbel) file",
			Paths:    []string{s.HomePath(".local/share/recently-used.xbel")},
			Deletion: del,
		})
	}
	if sel.RecentDocs {
		plan = append(plan, &actions.ClearDirAction{
			Label:    "Clean Recently Used Documents folder content",
			Dir:      s.HomePath(".local/share/RecentDocuments"),
			Deletion: del,
		})
	}
	if sel.RecentHistory {
		plan = append(plan, &actions.DeleteFilesAction{
			Label: "Clean General Recent File History",
			Paths: []string{
				s.HomePath(".local/share/zeitgeist/activity.sqlite"),
				s.HomePath(".recently-used.xbel"),
			},
			Deletion: del,
		})
	}
	if sel.ThumbsDB {
		plan = append(plan, &actions.ThumbsDBAction{Home: home, Deletion: del})
	}
	if sel.ThumbnailsLarge {
		plan = append(plan, &actions.ClearDirAction{
			Label:    "Clean Large Thumbnails cache",
			Dir:      s.HomePath(".cache/thumbnails/large"),
			Deletion: del,
		})
	}
	if sel.ThumbnailsNormal {
		plan = append(plan, &actions.ClearDirAction{
			Label:    "Clean Normal Thumbnails cache",
			Dir:      s.HomePath(".cache/thumbnails/normal"),
			Deletion: del,
		})
	}
	return plan, nil
}

// AptPlan returns autoremove and/or autoclean, in that order.
func AptPlan(s model.Settings, autoremove, autoclean bool) ([]actions.Action, error) {
	if !autoremove && !autoclean {
		return nil, fmt.Errorf("select at least one APT cleanup option: %w", ErrNothingSelected)
	}
	var plan []actions.Action
	if autoremove {
		plan = append(plan, actions.AptAutoremove(s))
	}
	if autoclean {
		plan = append(plan, actions.AptAutoclean(s))
	}
	return plan, nil
}

// GovernorPlan validates governor and plans the switch from the current one.
func GovernorPlan(s model.Settings, governor string) ([]actions.Action, error) {
	if err := ValidateGovernor(governor); err != nil {
		return nil, err
	}
	current, _ := system.ReadGovernor()
	return []actions.Action{actions.SetGovernor(s, governor, current)}, nil
}

// SwappinessPlan validates value and plans the sysctl change.
func SwappinessPlan(s model.Settings, value int) ([]actions.Action, error) {
	if err := ValidateSwappiness(value); err != nil {
		return nil, err
	}
	current := ""
	if v, err := system.ReadSwappiness(); err == nil {
		current = strconv.Itoa(v)
	}
	return []actions.Action{actions.SetSwappiness(s, value, current)}, nil
}

// Execute applies every action in order. A failed action does not stop the
// ones after it; all failures are returned together.
func Execute(plan []actions.Action, deps actions.Deps, logger log.Logger) error {
	var errs []error
	for _, action := range plan {
		logger.Info("Starting", "task", action.Description())
		if err := action.Apply(deps, logger); err != nil {
			logger.Error("Task failed", "task", action.Description(), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
