package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	// PageSize is the number of entries per journal page. The host UI
	// renders pages of 12; changing this desyncs synthesized pages from
	// the native pager.
	PageSize int `json:"page_size"`

	// NativePageLimit is the highest page the remote journal query will
	// serve. Requests past it are answered from the local archive.
	NativePageLimit int `json:"native_page_limit"`

	// ThumbsURL is the static data endpoint for the mouse thumbnail table.
	ThumbsURL string `json:"thumbs_url,omitempty"`

	// ThumbsPath is a local JSON file used instead of ThumbsURL when set.
	ThumbsPath string `json:"thumbs_path,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is
	// locked" errors). 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		PageSize:        12,
		NativePageLimit: 6,
		ThumbsURL:       "https://api.mouse.rip/mice-thumbnails",
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.mhjournal.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs. Overlay values take precedence
// for non-zero scalars.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.PageSize = overlay.PageSize
	if result.PageSize == 0 {
		result.PageSize = base.PageSize
	}

	result.NativePageLimit = overlay.NativePageLimit
	if result.NativePageLimit == 0 {
		result.NativePageLimit = base.NativePageLimit
	}

	result.ThumbsURL = overlay.ThumbsURL
	if result.ThumbsURL == "" {
		result.ThumbsURL = base.ThumbsURL
	}

	result.ThumbsPath = overlay.ThumbsPath
	if result.ThumbsPath == "" {
		result.ThumbsPath = base.ThumbsPath
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	return result
}
