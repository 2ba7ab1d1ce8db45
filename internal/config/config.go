// Package config provides configuration loading and structs for the FitScout server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/fitscout/internal/ranking"
	"gopkg.in/yaml.v3"
)

// Data sources for the reference catalog.
const (
	SourceFiles  = "files"
	SourceSQLite = "sqlite"
)

// Ranking modes. The mode decides how many products a find call returns.
const (
	ModeRelaxed = "relaxed"
	ModeStrict  = "strict"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Storage   StorageConfig   `yaml:"storage"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Sizing    SizingConfig    `yaml:"sizing"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	CORSOrigins    []string `yaml:"cors_origins"`
	RateLimit      int      `yaml:"rate_limit"` // requests per minute per client IP; 0 disables
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// DataConfig selects where reference data is loaded from.
type DataConfig struct {
	// Source is "files" (seed JSON/xlsx in Dir) or "sqlite" (Storage.DatabasePath).
	Source string `yaml:"source"`
	Dir    string `yaml:"dir"`
}

// StorageConfig holds the catalog database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// EmbeddingConfig holds embedder settings.
type EmbeddingConfig struct {
	// Provider is "onnx", "hash" or "none".
	Provider   string `yaml:"provider"`
	ModelPath  string `yaml:"model_path"`
	OutputName string `yaml:"output_name"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
}

// SearchConfig holds find settings.
type SearchConfig struct {
	Mode    string                `yaml:"mode"`
	K       int                   `yaml:"k"` // overrides the mode's k when > 0
	Ranking ranking.RankingConfig `yaml:"ranking"`
}

// Limit returns the number of products a find call returns.
func (s *SearchConfig) Limit() int {
	if s.K > 0 {
		return s.K
	}
	if s.Mode == ModeStrict {
		return 6
	}
	return 24
}

// SizingConfig holds size suggestion settings.
type SizingConfig struct {
	ShoeRegion      string  `yaml:"shoe_region"`
	DefaultLabel    string  `yaml:"default_label"`
	AcceptThreshold float64 `yaml:"accept_threshold"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Config{Search: SearchConfig{Ranking: *ranking.DefaultRankingConfig()}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	cfg.expandPaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the default configuration with paths relative to the working directory.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	cfg.expandPaths(".")
	return &cfg
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceFiles, SourceSQLite:
	default:
		return fmt.Errorf("invalid data.source %q (supported: files, sqlite)", c.Data.Source)
	}
	switch c.Search.Mode {
	case ModeRelaxed, ModeStrict:
	default:
		return fmt.Errorf("invalid search.mode %q (supported: relaxed, strict)", c.Search.Mode)
	}
	switch c.Embedding.Provider {
	case "onnx", "hash", "none":
	default:
		return fmt.Errorf("invalid embedding.provider %q (supported: onnx, hash, none)", c.Embedding.Provider)
	}
	if c.Sizing.AcceptThreshold < 0 || c.Sizing.AcceptThreshold >= 1 {
		return fmt.Errorf("sizing.accept_threshold must be in [0,1), got %v", c.Sizing.AcceptThreshold)
	}
	return nil
}

func (c *Config) expandPaths(configDir string) {
	c.Data.Dir = expandPath(c.Data.Dir, configDir)
	c.Storage.DatabasePath = expandPath(c.Storage.DatabasePath, configDir)
	c.Embedding.ModelPath = expandPath(c.Embedding.ModelPath, configDir)
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		if abs, err := filepath.Abs(filepath.Join(configDir, path)); err == nil {
			return abs
		}
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
