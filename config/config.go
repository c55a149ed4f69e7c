// Package config loads the host application's configuration: the
// controller's retry schedule, logging verbosity, and the persistent
// store's file path.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/Oppzippy/OpenSCQ30-sub001/ioctl"
)

// Retry describes the controller's send-and-wait retry schedule as
// base delay * attempt number, matching ioctl.DefaultRetrySchedule's
// shape.
type Retry struct {
	BaseDelay time.Duration `yaml:"-"`
	Attempts  int           `yaml:"attempts"`
}

// retryYAML mirrors Retry for YAML decoding, since yaml.v3 has no
// built-in support for time.Duration's "500ms"-style text form.
type retryYAML struct {
	BaseDelay string `yaml:"baseDelay"`
	Attempts  int    `yaml:"attempts"`
}

func (r Retry) MarshalYAML() (any, error) {
	return retryYAML{BaseDelay: r.BaseDelay.String(), Attempts: r.Attempts}, nil
}

func (r *Retry) UnmarshalYAML(value *yaml.Node) error {
	var raw retryYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	r.Attempts = raw.Attempts
	if raw.BaseDelay == "" {
		return nil
	}
	delay, err := time.ParseDuration(raw.BaseDelay)
	if err != nil {
		return fmt.Errorf("config: parse retry.baseDelay %q: %w", raw.BaseDelay, err)
	}
	r.BaseDelay = delay
	return nil
}

// Config is the host application's full configuration document.
type Config struct {
	Retry     Retry  `yaml:"retry"`
	LogLevel  string `yaml:"logLevel"`
	StorePath string `yaml:"storePath"`
}

// Default returns the values observed on real devices: 500ms base
// delay, 3 attempts, info-level logging, and a store path under the
// user's config directory.
func Default() Config {
	return Config{
		Retry:     Retry{BaseDelay: 500 * time.Millisecond, Attempts: 3},
		LogLevel:  "info",
		StorePath: defaultStorePath(),
	}
}

// DefaultPath returns the default configuration file's location, the
// path openscq30ctl reads from when no config file is given explicitly.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "openscq30.yaml"
	}
	return dir + "/openscq30/config.yaml"
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "openscq30.json"
	}
	return dir + "/openscq30/store.json"
}

// Load reads and parses a YAML configuration file at path, filling any
// zero-valued field from Default so a partially-specified file never
// leaves the controller or store unconfigured.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.Retry.BaseDelay <= 0 {
		cfg.Retry.BaseDelay = Default().Retry.BaseDelay
	}
	if cfg.Retry.Attempts <= 0 {
		cfg.Retry.Attempts = Default().Retry.Attempts
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	if cfg.StorePath == "" {
		cfg.StorePath = Default().StorePath
	}
	return cfg, nil
}

// RetrySchedule builds the concrete per-attempt wait durations for
// ioctl.Controller from the configured base delay and attempt count.
func (c Config) RetrySchedule() []time.Duration {
	return ioctl.RetrySchedule(c.Retry.BaseDelay, c.Retry.Attempts)
}

// Level parses LogLevel into a charmbracelet/log level, defaulting to
// log.InfoLevel on an empty or unrecognized string rather than
// erroring, since a bad config value should never prevent startup.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// NewLogger builds the shared logger every long-lived component
// (ioctl.Controller, device.Device, store.Store, registry.Registry)
// takes, writing to stderr at the configured level.
func NewLogger(c Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	logger.SetLevel(c.Level())
	return logger
}
