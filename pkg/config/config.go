package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/macrocketry/sdlog/pkg/sdlog"
	"github.com/macrocketry/sdlog/pkg/storage"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Backend kinds.
const (
	BackendDir    = "dir"
	BackendMemory = "memory"
)

// Config holds the logger settings.
type Config struct {
	// Backend selects the storage medium: "dir" or "memory".
	Backend string `yaml:"backend" env:"SDLOG_BACKEND"`

	// Dir is the card root for the "dir" backend.
	Dir string `yaml:"dir" env:"SDLOG_DIR"`

	// Path is an explicit file to open. Empty means auto-numbered.
	Path string `yaml:"path" env:"SDLOG_PATH"`

	// Prefix is the naming root for auto-numbered files.
	Prefix string `yaml:"prefix" env:"SDLOG_PREFIX"`

	// BufferCapacity is the buffered-write window in bytes.
	BufferCapacity int `yaml:"buffer_capacity" env:"SDLOG_BUFFER_CAPACITY"`

	// ChipSelect is the SPI chip-select line of the card.
	ChipSelect int `yaml:"chip_select" env:"SDLOG_CHIP_SELECT"`

	// SettleDelay is the pause between closing a file and opening the next.
	SettleDelay time.Duration `yaml:"settle_delay" env:"SDLOG_SETTLE_DELAY"`

	// LogLevel is the operational log level: debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"SDLOG_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:        BackendDir,
		Dir:            ".",
		Prefix:         sdlog.DefaultPrefix,
		BufferCapacity: sdlog.DefaultBufferCapacity,
		ChipSelect:     int(storage.DefaultChipSelect),
		SettleDelay:    sdlog.DefaultSettleDelay,
		LogLevel:       "info",
	}
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if cfg, err = Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.Backend {
	case BackendDir:
		if c.Dir == "" {
			problems = append(problems, "dir is required for the dir backend")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("unknown backend %q (use dir, memory)", c.Backend))
	}
	if c.Path == "" && c.Prefix == "" {
		problems = append(problems, "prefix is required when no path is set")
	}
	if c.BufferCapacity <= 0 {
		problems = append(problems, "buffer_capacity must be positive")
	}
	if c.ChipSelect < 0 {
		problems = append(problems, "chip_select must not be negative")
	}
	if c.SettleDelay < 0 {
		problems = append(problems, "settle_delay must not be negative")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		problems = append(problems, fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, ", "))
	}
	return nil
}

// NewBackend builds the configured storage backend.
func (c *Config) NewBackend() (storage.Backend, error) {
	switch c.Backend {
	case BackendDir:
		return storage.NewOSBackend(c.Dir), nil
	case BackendMemory:
		return storage.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
}

// LoggerOptions returns the sdlog options for this configuration.
func (c *Config) LoggerOptions(logger *slog.Logger) []sdlog.Option {
	return []sdlog.Option{
		sdlog.WithPrefix(c.Prefix),
		sdlog.WithBufferCapacity(c.BufferCapacity),
		sdlog.WithChipSelect(storage.ChipSelect(c.ChipSelect)),
		sdlog.WithSettleDelay(c.SettleDelay),
		sdlog.WithLogger(logger),
	}
}

// NewLogger builds the backend and opens a Logger on it.
func (c *Config) NewLogger(logger *slog.Logger) (*sdlog.Logger, error) {
	backend, err := c.NewBackend()
	if err != nil {
		return nil, err
	}
	return c.Open(backend, logger), nil
}

// Open constructs a Logger on backend, on Path when set and on the next
// auto-numbered file otherwise.
func (c *Config) Open(backend storage.Backend, logger *slog.Logger) *sdlog.Logger {
	if c.Path != "" {
		return sdlog.NewWithPath(backend, c.Path, c.LoggerOptions(logger)...)
	}
	return sdlog.New(backend, c.LoggerOptions(logger)...)
}

// SlogLevel maps LogLevel to a slog level. Unknown values map to Info.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
