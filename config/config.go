package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/TFMV/bigocode/db"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Config is the bigocode configuration file.
type Config struct {
	Scan     Scan     `toml:"scan"`
	Watch    Watch    `toml:"watch"`
	Database Database `toml:"database"`
	Log      Log      `toml:"log"`
}

// Scan controls directory analysis.
type Scan struct {
	Include   []string `toml:"include"`    // Globs relative to the scanned root
	Exclude   []string `toml:"exclude"`    // Checked before Include
	Workers   int      `toml:"workers"`    // Files classified at once
	CacheSize int      `toml:"cache_size"` // Memoized classifications
}

// Watch controls the file watcher.
type Watch struct {
	DebounceMS int `toml:"debounce_ms"`
}

type Database struct {
	URL       string `toml:"url"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Scan: Scan{
			Include: []string{"**/*"},
			Exclude: []string{
				"**/.git/**",
				"**/node_modules/**",
				"**/vendor/**",
				"**/build/**",
				"**/target/**",
			},
			Workers:   runtime.NumCPU(),
			CacheSize: 4096,
		},
		Watch: Watch{DebounceMS: 250},
		Database: Database{
			URL:       "ws://localhost:8000",
			Namespace: "bigocode",
			Database:  "bigocode",
			Username:  "root",
			Password:  "root",
		},
		Log: Log{Level: "info"},
	}
}

// Load reads a TOML file over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.Scan.Workers <= 0 {
		return fmt.Errorf("scan.workers must be positive, got %d", c.Scan.Workers)
	}
	if c.Scan.CacheSize < 0 {
		return fmt.Errorf("scan.cache_size cannot be negative, got %d", c.Scan.CacheSize)
	}
	if len(c.Scan.Include) == 0 {
		return errors.New("scan.include cannot be empty")
	}
	for _, pattern := range append(append([]string{}, c.Scan.Include...), c.Scan.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms cannot be negative, got %d", c.Watch.DebounceMS)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the [log] level.
func (c Config) LogLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// Debounce is the watcher quiet period.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// DB converts the [database] section for db.NewSurrealDB.
func (c Config) DB() db.Config {
	return db.Config{
		URL:       c.Database.URL,
		Namespace: c.Database.Namespace,
		Database:  c.Database.Database,
		Username:  c.Database.Username,
		Password:  c.Database.Password,
	}
}
