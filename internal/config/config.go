package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vtree/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "vtree.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "vtree.yaml"

	// DefaultMaxUpdateCount is the per-flush re-entry limit of a single watcher.
	DefaultMaxUpdateCount = 100

	// DefaultAddress is the default server listen address.
	DefaultAddress = "localhost:7420"

	// DefaultPath is the default websocket endpoint.
	DefaultPath = "/ws"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "vtree"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "github.com/vango-dev/vtree"
)

// Config represents a complete vtree configuration file.
type Config struct {
	Scheduler SchedulerConfig `json:"scheduler" yaml:"scheduler"`
	Errors    ErrorsConfig    `json:"errors" yaml:"errors"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Metrics   MetricsConfig   `json:"metrics" yaml:"metrics"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing"`
	Server    ServerConfig    `json:"server" yaml:"server"`

	configPath string
}

// SchedulerConfig tunes the watcher flush queue.
type SchedulerConfig struct {
	// MaxUpdateCount aborts a flush once a single watcher re-runs this often.
	MaxUpdateCount int `json:"maxUpdateCount,omitempty" yaml:"maxUpdateCount,omitempty"`

	// Sync runs watchers inline on notify instead of batching them.
	Sync bool `json:"sync,omitempty" yaml:"sync,omitempty"`
}

// ErrorsConfig controls how unhandled errors surface.
type ErrorsConfig struct {
	// Interactive logs unhandled errors instead of panicking.
	Interactive bool `json:"interactive,omitempty" yaml:"interactive,omitempty"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MetricsConfig controls Prometheus collection.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig controls OpenTelemetry spans.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// ServerConfig configures "vtree serve".
type ServerConfig struct {
	// Address is the listen address.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`

	// Path is the websocket endpoint.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// ReadTimeout is the idle read deadline for a session (e.g., "60s").
	ReadTimeout string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`

	// WriteTimeout is the per-frame write deadline (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`

	// H2C enables cleartext HTTP/2.
	H2C bool `json:"h2c,omitempty" yaml:"h2c,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory, preferring
// vtree.json over vtree.yaml.
func Load(dir string) (*Config, error) {
	jsonPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(jsonPath); err == nil {
		return LoadFile(jsonPath)
	}
	yamlPath := filepath.Join(dir, YAMLConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return LoadFile(yamlPath)
	}
	return nil, errors.New("C001").
		WithDetail("No " + ConfigFileName + " or " + YAMLConfigFileName + " found in " + dir)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("C002").Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("C002").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to the specified path, in YAML when the
// extension asks for it.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("C002").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Scheduler.MaxUpdateCount == 0 {
		c.Scheduler.MaxUpdateCount = DefaultMaxUpdateCount
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}

	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.Path == "" {
		c.Server.Path = DefaultPath
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "60s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "10s"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Scheduler.MaxUpdateCount < 1 {
		return errors.New("C003").
			WithDetail("scheduler.maxUpdateCount must be at least 1")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("C003").
			WithDetail("log.format must be \"text\" or \"json\", got " + c.Log.Format)
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		return errors.New("C003").
			WithDetail("server.path must start with /")
	}
	for name, v := range map[string]string{
		"server.readTimeout":  c.Server.ReadTimeout,
		"server.writeTimeout": c.Server.WriteTimeout,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return errors.New("C003").
				WithDetail(name + " is not a duration: " + v).
				Wrap(err)
		}
	}
	return nil
}

// ReadTimeout returns the parsed server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

// WriteTimeout returns the parsed server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.WriteTimeout)
	return d
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	lvl, _ := parseLevel(c.Log.Level)
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, errors.New("C003").
			WithDetail("log.level must be debug, info, warn or error, got " + s)
	}
	return lvl, nil
}
