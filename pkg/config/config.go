package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"maid/pkg/log"
	"maid/pkg/model"
	"maid/pkg/system"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the settings file.
const (
	EnvPrivilegeFrontend = "MAID_PRIVILEGE_FRONTEND"
	EnvHome              = "MAID_HOME"
	EnvSecureDelete      = "MAID_SECURE_DELETE"
)

var envKeys = []string{EnvPrivilegeFrontend, EnvHome, EnvSecureDelete}

// Seams for tests.
var (
	userHomeDir   = os.UserHomeDir
	userConfigDir = os.UserConfigDir
	lookupEnv     = os.LookupEnv
)

// DefaultPath is $XDG_CONFIG_HOME/maid/maid.yaml, or "" when no config
// directory can be determined.
func DefaultPath() string {
	dir, err := userConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "maid", "maid.yaml")
}

// LoadConfig builds the effective settings: defaults, then the YAML file,
// then envFile (a dotenv file, optional), then the process environment.
// An empty filename means DefaultPath, which may be absent; an explicitly
// named file must exist.
func LoadConfig(filename, envFile string, logger log.Logger) (*model.Settings, error) {
	cfg := model.DefaultSettings()

	path, required := filename, true
	if path == "" {
		path, required = DefaultPath(), false
	}
	if path != "" {
		if err := loadConfigFile(path, required, &cfg, logger); err != nil {
			return nil, err
		}
	}

	env, err := LoadEnv(envFile)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(&cfg, env); err != nil {
		return nil, err
	}

	if cfg.Home == "" {
		home, err := userHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.Home = home
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

func loadConfigFile(filename string, required bool, cfg *model.Settings, logger log.Logger) error {
	content, err := afero.ReadFile(system.AppFs, filename)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No settings file, using defaults", "path", filename)
			return nil
		}
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	// An empty file decodes to io.EOF and means "all defaults".
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error parsing %s: %w", filename, err)
	}
	logger.Debug("Loaded settings", "path", filename)
	return nil
}

// LoadEnv returns the maid variables from envFile overlaid with the
// process environment. Variables already set in the environment win, as
// with godotenv.Load.
func LoadEnv(envFile string) (map[string]string, error) {
	env := map[string]string{}
	if envFile != "" {
		f, err := system.AppFs.Open(envFile)
		if err != nil {
			return nil, fmt.Errorf("error opening env file %s: %w", envFile, err)
		}
		defer f.Close()
		parsed, err := godotenv.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("error parsing env file %s: %w", envFile, err)
		}
		for _, key := range envKeys {
			if v, ok := parsed[key]; ok {
				env[key] = v
			}
		}
	}
	for _, key := range envKeys {
		if v, ok := lookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides cfg with the maid variables in env.
func ApplyEnv(cfg *model.Settings, env map[string]string) error {
	if v, ok := env[EnvPrivilegeFrontend]; ok && strings.TrimSpace(v) != "" {
		cfg.PrivilegeFrontend = strings.TrimSpace(v)
	}
	if v, ok := env[EnvHome]; ok && strings.TrimSpace(v) != "" {
		cfg.Home = strings.TrimSpace(v)
	}
	if v, ok := env[EnvSecureDelete]; ok && strings.TrimSpace(v) != "" {
		secure, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvSecureDelete, v, err)
		}
		cfg.SecureDelete = secure
	}
	return nil
}
