// Package config loads launcher settings from defaults, YAML files and
// AMANLAUNCH_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/amanlaunch/internal/atomicfile"
	amerrors "github.com/Aman-CERP/amanlaunch/internal/errors"
	"github.com/Aman-CERP/amanlaunch/internal/history"
	"github.com/Aman-CERP/amanlaunch/internal/scanner"
)

// MaxHistorySize is the largest accepted history bound.
const MaxHistorySize = 1000

// Config represents the complete launcher configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	DataDir string        `yaml:"data_dir" json:"data_dir"`
	Index   IndexConfig   `yaml:"index" json:"index"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	History HistoryConfig `yaml:"history" json:"history"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// IndexConfig configures the file crawl.
type IndexConfig struct {
	// Roots are the directories to crawl. Empty means every local volume.
	Roots []string `yaml:"roots" json:"roots"`

	// ExcludeDirs are directory names never descended into. Entries from
	// config files are added to the defaults.
	ExcludeDirs []string `yaml:"exclude_dirs" json:"exclude_dirs"`

	// ExcludeExtensions are file extensions never indexed. Entries from
	// config files are added to the defaults.
	ExcludeExtensions []string `yaml:"exclude_extensions" json:"exclude_extensions"`

	// MaxFileSize is the largest indexed file in bytes.
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size"`

	// Workers is the number of roots crawled concurrently.
	Workers int `yaml:"workers" json:"workers"`

	// BatchSize is the number of files between progress updates.
	BatchSize int `yaml:"batch_size" json:"batch_size"`
}

// SearchConfig configures query handling.
type SearchConfig struct {
	// MaxResults caps results shown by the CLI and MCP server (0 = no cap).
	MaxResults int `yaml:"max_results" json:"max_results"`

	// StatWorkers bounds parallel re-validation of file results.
	StatWorkers int `yaml:"stat_workers" json:"stat_workers"`
}

// HistoryConfig configures the query history.
type HistoryConfig struct {
	Size int `yaml:"size" json:"size"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		DataDir: DefaultDataDir(),
		Index: IndexConfig{
			Roots:             []string{},
			ExcludeDirs:       append([]string(nil), scanner.DefaultExcludedDirs...),
			ExcludeExtensions: append([]string(nil), scanner.DefaultExcludedExtensions...),
			MaxFileSize:       scanner.DefaultMaxFileSize,
			Workers:           runtime.NumCPU(),
			BatchSize:         scanner.DefaultBatchSize,
		},
		Search: SearchConfig{
			MaxResults:  50,
			StatWorkers: runtime.NumCPU() * 4,
		},
		History: HistoryConfig{
			Size: history.DefaultBound,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultDataDir returns ~/.amanlaunch, where indexes and history live.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".amanlaunch")
	}
	return filepath.Join(home, ".amanlaunch")
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/amanlaunch/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/amanlaunch/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "amanlaunch", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "amanlaunch", "config.yaml")
	}
	return filepath.Join(home, ".config", "amanlaunch", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	_, err := os.Stat(GetUserConfigPath())
	return err == nil
}

// Load loads configuration for the working directory dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/amanlaunch/config.yaml)
//  3. Project config (.amanlaunch.yaml in dir)
//  4. Environment variables (AMANLAUNCH_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if path := GetUserConfigPath(); fileExists(path) {
		if err := cfg.loadYAML(path); err != nil {
			return nil, amerrors.ConfigError("failed to load user config", err)
		}
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, amerrors.ConfigError("failed to load project config", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, amerrors.ConfigError("invalid environment override", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, amerrors.ConfigError("invalid configuration", err)
	}

	return cfg, nil
}

// loadFromFile loads .amanlaunch.yaml, or .amanlaunch.yml when the former is absent.
func (c *Config) loadFromFile(dir string) error {
	for _, name := range []string{".amanlaunch.yaml", ".amanlaunch.yml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return c.loadYAML(path)
		}
	}
	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}
	if other.DataDir != "" {
		c.DataDir = expandHome(other.DataDir)
	}

	if len(other.Index.Roots) > 0 {
		c.Index.Roots = other.Index.Roots
	}
	// Exclusions extend the defaults rather than replace them.
	c.Index.ExcludeDirs = appendNew(c.Index.ExcludeDirs, other.Index.ExcludeDirs...)
	c.Index.ExcludeExtensions = appendNew(c.Index.ExcludeExtensions, other.Index.ExcludeExtensions...)
	if other.Index.MaxFileSize != 0 {
		c.Index.MaxFileSize = other.Index.MaxFileSize
	}
	if other.Index.Workers != 0 {
		c.Index.Workers = other.Index.Workers
	}
	if other.Index.BatchSize != 0 {
		c.Index.BatchSize = other.Index.BatchSize
	}

	if other.Search.MaxResults != 0 {
		c.Search.MaxResults = other.Search.MaxResults
	}
	if other.Search.StatWorkers != 0 {
		c.Search.StatWorkers = other.Search.StatWorkers
	}

	if other.History.Size != 0 {
		c.History.Size = other.History.Size
	}
	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
}

// applyEnvOverrides applies AMANLAUNCH_* environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("AMANLAUNCH_DATA_DIR"); v != "" {
		c.DataDir = expandHome(v)
	}
	if v := os.Getenv("AMANLAUNCH_MAX_FILE_SIZE"); v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("AMANLAUNCH_MAX_FILE_SIZE: %w", err)
		}
		c.Index.MaxFileSize = n
	}
	if v := os.Getenv("AMANLAUNCH_HISTORY_SIZE"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("AMANLAUNCH_HISTORY_SIZE: %w", err)
		}
		c.History.Size = n
	}
	if v := os.Getenv("AMANLAUNCH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("AMANLAUNCH_ROOTS"); v != "" {
		var roots []string
		for _, r := range filepath.SplitList(v) {
			if r = strings.TrimSpace(r); r != "" {
				roots = append(roots, expandHome(r))
			}
		}
		c.Index.Roots = roots
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Index.MaxFileSize < 0 {
		return fmt.Errorf("index.max_file_size must be non-negative, got %d", c.Index.MaxFileSize)
	}
	if c.Index.Workers < 0 {
		return fmt.Errorf("index.workers must be non-negative, got %d", c.Index.Workers)
	}
	if c.Index.BatchSize < 0 {
		return fmt.Errorf("index.batch_size must be non-negative, got %d", c.Index.BatchSize)
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results must be non-negative, got %d", c.Search.MaxResults)
	}
	if c.Search.StatWorkers < 0 {
		return fmt.Errorf("search.stat_workers must be non-negative, got %d", c.Search.StatWorkers)
	}
	if c.History.Size < 1 || c.History.Size > MaxHistorySize {
		return fmt.Errorf("history.size must be between 1 and %d, got %d", MaxHistorySize, c.History.Size)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level)
	}

	return nil
}

// Exclusions returns the crawl exclusion rules.
func (c *Config) Exclusions() scanner.Exclusions {
	return scanner.NewExclusions(c.Index.ExcludeDirs, c.Index.ExcludeExtensions, c.Index.MaxFileSize)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func appendNew(dst []string, items ...string) []string {
	seen := make(map[string]bool, len(dst))
	for _, d := range dst {
		seen[d] = true
	}
	for _, it := range items {
		if it != "" && !seen[it] {
			seen[it] = true
			dst = append(dst, it)
		}
	}
	return dst
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
