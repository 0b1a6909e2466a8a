package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxSwappiness is the kernel upper bound for vm.swappiness (Linux >= 5.8).
const MaxSwappiness = 200

// KnownGovernors are the cpufreq governors shipped with mainline Linux.
var KnownGovernors = map[string]bool{
	"performance":  true,
	"powersave":    true,
	"ondemand":     true,
	"conservative": true,
	"schedutil":    true,
	"userspace":    true,
}

type Settings struct {
	PrivilegeFrontend string             `yaml:"privilege-frontend"`
	Home              string             `yaml:"home,omitempty"`
	SecureDelete      bool               `yaml:"secure-delete"`
	Swappiness        SwappinessSettings `yaml:"swappiness"`
	Governor          GovernorSettings   `yaml:"governor"`
	DefragTarget      string             `yaml:"defrag-target"`
	Binaries          Binaries           `yaml:"binaries"`
	UserCaches        []string           `yaml:"user-caches"`
}

// SwappinessSettings are the values behind "apply" and "restore".
type SwappinessSettings struct {
	Apply   int `yaml:"apply"`
	Restore int `yaml:"restore"`
}

type GovernorSettings struct {
	Apply   string `yaml:"apply"`
	Restore string `yaml:"restore"`
}

// Binaries locates the external programs maid drives.
type Binaries struct {
	Apt      string `yaml:"apt"`
	Cpupower string `yaml:"cpupower"`
	U4defrag string `yaml:"u4defrag"`
	Sysctl   string `yaml:"sysctl"`
	Shred    string `yaml:"shred"`
	Find     string `yaml:"find"`
}

// DefaultSettings mirrors the behaviour of a stock install.
func DefaultSettings() Settings {
	return Settings{
		PrivilegeFrontend: "pkexec",
		Swappiness:        SwappinessSettings{Apply: 10, Restore: 60},
		Governor:          GovernorSettings{Apply: "powersave", Restore: "performance"},
		DefragTarget:      "/",
		Binaries: Binaries{
			Apt:      "/usr/bin/apt",
			Cpupower: "/usr/bin/cpupower",
			U4defrag: "/usr/bin/u4defrag",
			Sysctl:   "sysctl",
			Shred:    "shred",
			Find:     "find",
		},
		UserCaches: []string{
			".cache/snapd",
			".cache/flatpak",
			".cache/thumbnails",
			".local/share/Trash/info",
		},
	}
}

// HomePath joins rel onto the configured home directory.
func (s *Settings) HomePath(rel string) string {
	return filepath.Join(s.Home, rel)
}

func (s *Settings) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(s.PrivilegeFrontend) == "" {
		errs = append(errs, ValidationError{Field: "privilege-frontend", Message: "cannot be empty"})
	}
	if s.Home != "" && !filepath.IsAbs(s.Home) {
		errs = append(errs, ValidationError{Field: "home", Message: fmt.Sprintf("must be an absolute path, got %q", s.Home)})
	}
	errs = append(errs, ValidateSwappiness("swappiness.apply", s.Swappiness.Apply)...)
	errs = append(errs, ValidateSwappiness("swappiness.restore", s.Swappiness.Restore)...)
	errs = append(errs, ValidateGovernor("governor.apply", s.Governor.Apply)...)
	errs = append(errs, ValidateGovernor("governor.restore", s.Governor.Restore)...)
	if !filepath.IsAbs(s.DefragTarget) {
		errs = append(errs, ValidationError{Field: "defrag-target", Message: fmt.Sprintf("must be an absolute path, got %q", s.DefragTarget)})
	}

	binaries := []struct{ field, value string }{
		{"binaries.apt", s.Binaries.Apt},
		{"binaries.cpupower", s.Binaries.Cpupower},
		{"binaries.u4defrag", s.Binaries.U4defrag},
		{"binaries.sysctl", s.Binaries.Sysctl},
		{"binaries.shred", s.Binaries.Shred},
		{"binaries.find", s.Binaries.Find},
	}
	for _, b := range binaries {
		if strings.TrimSpace(b.value) == "" {
			errs = append(errs, ValidationError{Field: b.field, Message: "cannot be empty"})
		} else if strings.ContainsAny(b.value, " \t\n") {
			errs = append(errs, ValidationError{Field: b.field, Message: "must be a single program path"})
		}
	}

	for i, dir := range s.UserCaches {
		field := fmt.Sprintf("user-caches[%d]", i)
		clean := filepath.Clean(dir)
		switch {
		case strings.TrimSpace(dir) == "":
			errs = append(errs, ValidationError{Field: field, Message: "cannot be empty"})
		case filepath.IsAbs(dir):
			errs = append(errs, ValidationError{Field: field, Message: "must be relative to the home directory"})
		case clean == "." || clean == ".." || strings.HasPrefix(clean, "../"):
			errs = append(errs, ValidationError{Field: field, Message: "must stay inside the home directory"})
		}
	}

	return errs
}

// ValidateSwappiness checks a vm.swappiness value.
func ValidateSwappiness(field string, value int) ValidationErrors {
	if value < 0 || value > MaxSwappiness {
		return ValidationErrors{{Field: field, Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxSwappiness, value)}}
	}
	return nil
}

// ValidateGovernor checks a cpufreq governor name.
func ValidateGovernor(field, governor string) ValidationErrors {
	if !KnownGovernors[governor] {
		return ValidationErrors{{Field: field, Message: fmt.Sprintf("unknown governor %q", governor)}}
	}
	return nil
}
