package cmd

import (
	"maid/pkg/plan"

	"github.com/spf13/cobra"
)

var (
	cleanSelection plan.CleanupSelection
	cleanAll       bool
	cleanSecure    bool
)

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Removes trash, history and cache residue from your home folder",
	Long: `The clean command deletes the selected kinds of residue from the invoking
user's home folder. With --secure, files are overwritten with shred before
they are removed; directories are always removed normally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if cleanSecure {
			s.SecureDelete = true
		}

		sel := cleanSelection
		if cleanAll {
			sel = plan.AllCleanup()
		}
		actionPlan, err := plan.CleanupPlan(*s, sel)
		if err != nil {
			return err
		}

		title := "Cleaning (secure deletion off)"
		if s.SecureDelete {
			title = "Cleaning (secure deletion on)"
		}
		return runPlan(cmd, title, s, actionPlan)
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	f := cleanCmd.Flags()
	f.BoolVar(&cleanSelection.BrokenLinks, "broken-links", false, "Delete broken symbolic links in the home folder")
	f.BoolVar(&cleanSelection.EmptyDirs, "empty-dirs", false, "Delete empty directories in the home folder")
	f.BoolVar(&cleanSelection.UserCaches, "user-caches", false, "Clean Snap/Flatpak/user cache residue")
	f.BoolVar(&cleanSelection.Trash, "trash", false, "Empty the current user's trash bin")
	f.BoolVar(&cleanSelection.RecentXbel, "recent-xbel", false, "Clean the recently used (.xbel) file")
	f.BoolVar(&cleanSelection.RecentDocs, "recent-docs", false, "Clean the recently used documents folder")
	f.BoolVar(&cleanSelection.RecentHistory, "recent-history", false, "Clean the general recent file history")
	f.BoolVar(&cleanSelection.ThumbsDB, "thumbs-db", false, "Delete thumbs.db files left by Windows shares")
	f.BoolVar(&cleanSelection.ThumbnailsLarge, "thumbnails-large", false, "Clean the large thumbnails cache")
	f.BoolVar(&cleanSelection.ThumbnailsNormal, "thumbnails-normal", false, "Clean the normal thumbnails cache")
	f.BoolVar(&cleanAll, "all", false, "Select every cleanup task")
	f.BoolVar(&cleanSecure, "secure", false, "Overwrite files with shred before deleting them")
	f.BoolVar(&dryRun, "dry-run", false, "Show what would be deleted without deleting anything")
	f.BoolVar(&jsonOutput, "json", false, "Output the plan in JSON format (only valid with --dry-run)")
}
