// Package config loads gearshelf configuration from an optional YAML file
// with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all gearshelf settings. The YAML file is decoded through
// fileConfig and layered on top of Default.
type Config struct {
	// Dataset is the path to the catalog JSON file.
	Dataset string

	// Supplementary is the path to the per-product detail JSON file.
	Supplementary string

	// ShareBaseURL is the page shared wishlist links point at.
	ShareBaseURL string

	// Theme forces "light" or "dark"; empty means auto-detect.
	Theme string

	// SearchDebounce is how long search input must pause before the
	// filter pipeline runs.
	SearchDebounce time.Duration

	// StateDir holds the wishlist file and logs.
	StateDir string

	// WatchDataset reloads the catalog when the dataset files change.
	WatchDataset bool
}

// Default returns the baseline configuration.
func Default() Config {
	stateDir := ".gearshelf"
	if home, err := os.UserHomeDir(); err == nil {
		stateDir = filepath.Join(home, ".gearshelf")
	}
	return Config{
		Dataset:        "data/gear.json",
		Supplementary:  "data/extra.json",
		ShareBaseURL:   "https://bmedia-audio.github.io/gear/",
		SearchDebounce: 500 * time.Millisecond,
		StateDir:       stateDir,
		WatchDataset:   true,
	}
}

// fileConfig is the YAML shape. Pointer fields tell a key that is absent
// apart from one set to its zero value, so partial files layer cleanly.
// Durations use Go syntax ("500ms", "2s").
type fileConfig struct {
	Dataset        *string `yaml:"dataset"`
	Supplementary  *string `yaml:"supplementary"`
	ShareBaseURL   *string `yaml:"share_base_url"`
	Theme          *string `yaml:"theme"`
	SearchDebounce *string `yaml:"search_debounce"`
	StateDir       *string `yaml:"state_dir"`
	WatchDataset   *bool   `yaml:"watch_dataset"`
}

// Load reads the config at path, layered over defaults. A missing file is
// fine; a malformed one is an error. Pass "" to use defaults only.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
			if err := fc.apply(&cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if dir := os.Getenv("GEARSHELF_STATE_DIR"); dir != "" {
		cfg.StateDir = dir
	}
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = Default().SearchDebounce
	}
	return cfg, nil
}

func (fc fileConfig) apply(cfg *Config) error {
	if fc.Dataset != nil {
		cfg.Dataset = *fc.Dataset
	}
	if fc.Supplementary != nil {
		cfg.Supplementary = *fc.Supplementary
	}
	if fc.ShareBaseURL != nil {
		cfg.ShareBaseURL = *fc.ShareBaseURL
	}
	if fc.Theme != nil {
		cfg.Theme = *fc.Theme
	}
	if fc.SearchDebounce != nil {
		d, err := time.ParseDuration(*fc.SearchDebounce)
		if err != nil {
			return fmt.Errorf("search_debounce: %w", err)
		}
		cfg.SearchDebounce = d
	}
	if fc.StateDir != nil {
		cfg.StateDir = *fc.StateDir
	}
	if fc.WatchDataset != nil {
		cfg.WatchDataset = *fc.WatchDataset
	}
	return nil
}

// WishlistPath is the single fixed location of the persisted wishlist.
func (c Config) WishlistPath() string {
	return filepath.Join(c.StateDir, "wishlist.json")
}

// LogPath is where the interactive browser writes its log file.
func (c Config) LogPath() string {
	return filepath.Join(c.StateDir, "logs", "gearshelf.log")
}
