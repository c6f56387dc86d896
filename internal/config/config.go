// Package config loads diffdeck configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "5s" decode; bare
// numbers are read as seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var secs float64
	if err := value.Decode(&secs); err != nil {
		return fmt.Errorf("invalid duration value %q", value.Value)
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// AppConfig defines the global diffdeck configuration options.
type AppConfig struct {
	Theme             string   `yaml:"theme"`               // Palette name: "dark" or "light"
	AutoExpand        bool     `yaml:"auto_expand"`         // Render every directory open
	ShowIcons         bool     `yaml:"show_icons"`          // Render Nerd Font icons in the file tree
	MaxDiffChars      int      `yaml:"max_diff_chars"`      // Truncate the assembled diff beyond this size
	MaxUntrackedDiffs int      `yaml:"max_untracked_diffs"` // Cap on untracked files rendered into the diff
	CacheTTL          Duration `yaml:"cache_ttl"`           // TTL for memoized git lookups
	DebugLog          string   `yaml:"debug_log"`           // Path for the debug log file; empty disables it
	WatchInterval     Duration `yaml:"watch_interval"`      // Debounce window for filesystem refreshes
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Theme:             "dark",
		AutoExpand:        true,
		ShowIcons:         true,
		MaxDiffChars:      200000,
		MaxUntrackedDiffs: 10,
		CacheTTL:          Duration(30 * time.Second),
		WatchInterval:     Duration(400 * time.Millisecond),
	}
}

// LoadConfig reads configuration from configPath, or from the standard
// location ($XDG_CONFIG_HOME/diffdeck/config.yaml) when empty. A missing
// file yields defaults; an unreadable or invalid file is an error.
func LoadConfig(configPath string) (*AppConfig, error) {
	paths := []string{}
	explicit := configPath != ""
	if explicit {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = append(paths, expanded)
	} else {
		base := filepath.Join(configDir(), "diffdeck")
		paths = append(paths,
			filepath.Join(base, "config.yaml"),
			filepath.Join(base, "config.yml"),
		)
	}

	cfg := DefaultConfig()
	for _, path := range paths {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own flag or config dir
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	if explicit {
		return DefaultConfig(), fmt.Errorf("config file not found: %s", paths[0])
	}
	return cfg, nil
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", path, err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
