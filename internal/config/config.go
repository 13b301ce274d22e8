package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/ports"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
	// BasePort is the first backend port; 0 means one above the listen port.
	BasePort int `json:"base_port" yaml:"base_port" toml:"base_port"`
	// BackendHost is the address backends bind to.
	BackendHost string `json:"backend_host" yaml:"backend_host" toml:"backend_host"`
	// PublicHost appears in backend URLs handed to clients.
	PublicHost string `json:"public_host" yaml:"public_host" toml:"public_host"`
	// ProbeHost is where the manager reaches backends for health checks and proxying.
	ProbeHost      string   `json:"probe_host" yaml:"probe_host" toml:"probe_host"`
	BackendCommand []string `json:"backend_command" yaml:"backend_command" toml:"backend_command"`
	BackendArgs    []string `json:"backend_args" yaml:"backend_args" toml:"backend_args"`
	BackendLogDir  string   `json:"backend_log_dir" yaml:"backend_log_dir" toml:"backend_log_dir"`
	HealthPath     string   `json:"health_path" yaml:"health_path" toml:"health_path"`

	ReadyTimeoutSeconds    int `json:"ready_timeout_seconds" yaml:"ready_timeout_seconds" toml:"ready_timeout_seconds"`
	PollIntervalSeconds    int `json:"poll_interval_seconds" yaml:"poll_interval_seconds" toml:"poll_interval_seconds"`
	GracePeriodSeconds     int `json:"grace_period_seconds" yaml:"grace_period_seconds" toml:"grace_period_seconds"`
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds" toml:"shutdown_timeout_seconds"`

	APIKey     string `json:"api_key" yaml:"api_key" toml:"api_key"`
	APIKeyFile string `json:"api_key_file" yaml:"api_key_file" toml:"api_key_file"`

	CatalogFile string `json:"catalog_file" yaml:"catalog_file" toml:"catalog_file"`

	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`

	CORSOrigins           []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	MaxBodyBytes          int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	Swagger               bool     `json:"swagger" yaml:"swagger" toml:"swagger"`
	AuthFailuresPerMinute int      `json:"auth_failures_per_minute" yaml:"auth_failures_per_minute" toml:"auth_failures_per_minute"`
}

// Defaults mirror the single-host deployment: manager on 8001, backends from 8002.
const (
	DefaultAddr                   = ":8001"
	DefaultBackendHost            = "0.0.0.0"
	DefaultPublicHost             = "localhost"
	DefaultProbeHost              = "127.0.0.1"
	DefaultHealthPath             = "/health"
	DefaultReadyTimeoutSeconds    = 300
	DefaultPollIntervalSeconds    = 2
	DefaultGracePeriodSeconds     = 10
	DefaultShutdownTimeoutSeconds = 30
	DefaultAPIKeyFile             = "~/.vllmd/api_key"
	DefaultLogLevel               = "info"
	DefaultLogFormat              = "json"
	DefaultMaxBodyBytes           = 1 << 20
	DefaultAuthFailuresPerMinute  = 30
)

// Defaults returns a fully populated configuration.
func Defaults() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills every unspecified field.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.BackendHost == "" {
		c.BackendHost = DefaultBackendHost
	}
	if c.PublicHost == "" {
		c.PublicHost = DefaultPublicHost
	}
	if c.ProbeHost == "" {
		c.ProbeHost = DefaultProbeHost
	}
	if c.HealthPath == "" {
		c.HealthPath = DefaultHealthPath
	}
	if c.ReadyTimeoutSeconds == 0 {
		c.ReadyTimeoutSeconds = DefaultReadyTimeoutSeconds
	}
	if c.PollIntervalSeconds == 0 {
		c.PollIntervalSeconds = DefaultPollIntervalSeconds
	}
	if c.GracePeriodSeconds == 0 {
		c.GracePeriodSeconds = DefaultGracePeriodSeconds
	}
	if c.ShutdownTimeoutSeconds == 0 {
		c.ShutdownTimeoutSeconds = DefaultShutdownTimeoutSeconds
	}
	if c.APIKeyFile == "" {
		c.APIKeyFile = DefaultAPIKeyFile
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.AuthFailuresPerMinute == 0 {
		c.AuthFailuresPerMinute = DefaultAuthFailuresPerMinute
	}
}

// Validate reports every problem found, joined.
func (c Config) Validate() error {
	var errs []error
	port, err := c.ListenPort()
	if err != nil {
		errs = append(errs, err)
	}
	if c.BasePort < 0 || c.BasePort > 65535 {
		errs = append(errs, fmt.Errorf("base_port out of range: %d", c.BasePort))
	} else if c.BasePort != 0 && port != 0 && c.BasePort <= port {
		errs = append(errs, fmt.Errorf("base_port %d must be above the listen port %d", c.BasePort, port))
	}
	for name, v := range map[string]int{
		"ready_timeout_seconds":    c.ReadyTimeoutSeconds,
		"poll_interval_seconds":    c.PollIntervalSeconds,
		"grace_period_seconds":     c.GracePeriodSeconds,
		"shutdown_timeout_seconds": c.ShutdownTimeoutSeconds,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative: %d", name, v))
		}
	}
	if len(c.BackendCommand) > 0 && strings.TrimSpace(c.BackendCommand[0]) == "" {
		errs = append(errs, errors.New("backend_command: empty executable"))
	}
	if !strings.HasPrefix(c.HealthPath, "/") {
		errs = append(errs, fmt.Errorf("health_path must start with '/': %q", c.HealthPath))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console", "text":
	default:
		errs = append(errs, fmt.Errorf("unsupported log_format: %s", c.LogFormat))
	}
	if c.MaxBodyBytes < 0 {
		errs = append(errs, fmt.Errorf("max_body_bytes must not be negative: %d", c.MaxBodyBytes))
	}
	return errors.Join(errs...)
}

// ListenPort extracts the numeric port from Addr.
func (c Config) ListenPort() (int, error) { return ports.ListenPort(c.Addr) }

// BackendBasePort is BasePort when set, otherwise one above the listen port.
func (c Config) BackendBasePort() (int, error) {
	if c.BasePort > 0 {
		return c.BasePort, nil
	}
	return ports.BaseAbove(c.Addr)
}

func (c Config) ReadyTimeout() time.Duration {
	return time.Duration(c.ReadyTimeoutSeconds) * time.Second
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func (c Config) GracePeriod() time.Duration {
	return time.Duration(c.GracePeriodSeconds) * time.Second
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
