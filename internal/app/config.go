package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"
)

// DefaultPath is the config file read when none is given explicitly.
const DefaultPath = "fingerprint.yaml"

// Config holds all application configuration.
type Config struct {
	Storage    StorageConfig    `koanf:"storage" validate:"required"`
	Validation ValidationConfig `koanf:"validation" validate:"required"`
	Browser    BrowserConfig    `koanf:"browser" validate:"required"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Log        LogConfig        `koanf:"log" validate:"required"`
}

// StorageConfig selects where profiles are persisted.
type StorageConfig struct {
	Backend string `koanf:"backend" validate:"required,oneof=file badger"`
	Dir     string `koanf:"dir" validate:"required"`
}

// ValidationConfig tunes batch validation.
type ValidationConfig struct {
	Concurrency int `koanf:"concurrency" validate:"min=1"`
}

// BrowserConfig holds settings for launching a profile.
type BrowserConfig struct {
	Timeout    time.Duration `koanf:"timeout" validate:"required"`
	Headless   bool          `koanf:"headless"`
	NoSandbox  bool          `koanf:"no_sandbox"`
	ChromePath string        `koanf:"chrome_path"`
}

// MetricsConfig enables the node-exporter textfile output when Textfile is
// set.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

// LogConfig holds the log level.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// SlogLevel converts Level to a slog level.
func (c LogConfig) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Defaults returns the configuration used when no file overrides it.
func Defaults() Config {
	return Config{
		Storage:    StorageConfig{Backend: "file", Dir: "profiles"},
		Validation: ValidationConfig{Concurrency: 8},
		Browser:    BrowserConfig{Timeout: 30 * time.Second},
		Log:        LogConfig{Level: "info"},
	}
}

// Load reads configuration from a YAML file layered over Defaults and
// validates the result. A missing file falls back to Defaults unless the
// path was given explicitly.
func Load(path string, explicit bool) (*Config, error) {
	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	// Keys absent from the file keep their default values.
	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// ConfigFrom extracts the Config from the CLI command metadata.
func ConfigFrom(cmd *cli.Command) (*Config, error) {
	v, ok := cmd.Root().Metadata["config"]
	if !ok {
		return nil, fmt.Errorf("config not found in command metadata")
	}
	cfg, ok := v.(*Config)
	if !ok {
		return nil, fmt.Errorf("config has unexpected type %T", v)
	}
	return cfg, nil
}
