package test

import (
	"maid/pkg/model"
)

// SampleSettings returns default settings rooted at home.
func SampleSettings(home string) *model.Settings {
	s := model.DefaultSettings()
	s.Home = home
	return &s
}

// SampleSettingsYAML returns a partial settings file.
func SampleSettingsYAML() string {
	return `privilege-frontend: doas
home: /srv/home
swappiness:
  apply: 5
binaries:
  shred: /opt/bin/shred
user-caches:
  - .cache/pip
`
}

// SampleHomeFiles maps home-relative paths to contents.
func SampleHomeFiles() map[string]string {
	return map[string]string{
		".local/share/Trash/files/report.pdf":          "pdf",
		".local/share/Trash/files/old-project/main.go": "package main",
		".local/share/Trash/info/report.pdf.trashinfo": "[Trash Info]",
		".local/share/recently-used.xbel":              "<xbel/>",
		".local/share/RecentDocuments/a.desktop":       "[Desktop Entry]",
		".local/share/zeitgeist/activity.sqlite":       "sqlite",
		".recently-used.xbel":                          "<xbel/>",
		".cache/thumbnails/large/abc.png":              "png",
		".cache/thumbnails/normal/def.png":             "png",
		".cache/thumbnails/fail/ghi.png":               "png",
		".cache/snapd/names":                           "core",
		"Pictures/Thumbs.db":                           "db",
		"Shares/win/thumbs.db":                         "db",
		"Documents/notes.txt":                          "keep me",
	}
}
