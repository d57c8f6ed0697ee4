// Package config loads mdsafe settings with Viper.
// Precedence: defaults < config file < environment (MDSAFE_*, plus PORT).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ConfigOption describes one configuration key.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the configuration options, their defaults and meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "server.host", Default: "", Comment: "Interface to bind; empty binds all interfaces"},
		{Key: "server.port", Default: 3001, Comment: "HTTP listen port (PORT env var also honored)"},
		{Key: "server.max_body_bytes", Default: 102400, Comment: "Maximum accepted request body size in bytes"},
		{Key: "server.read_timeout", Default: "10s", Comment: "Maximum duration for reading a request"},
		{Key: "server.write_timeout", Default: "10s", Comment: "Maximum duration for writing a response"},
		{Key: "server.idle_timeout", Default: "60s", Comment: "Keep-alive idle timeout"},
		{Key: "server.shutdown_timeout", Default: "5s", Comment: "Grace period for in-flight requests on shutdown"},

		{Key: "cors.allowed_origins", Default: []string{"*"}, Comment: "Origins allowed to call the API"},

		{Key: "pipeline.audit", Default: true, Comment: "Re-check sanitized output against the allow-list before responding"},

		{Key: "log.level", Default: "info", Comment: "Log level: trace, debug, info, warn, error"},
		{Key: "log.format", Default: "json", Comment: "Log format: json, console, pretty"},
	}
}

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	Host            string
	Port            int
	MaxBodyBytes    int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	Audit           bool
	LogLevel        string
	LogFormat       string
}

// Addr returns the host:port listen address.
func (s Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration into v. If v already has a config file set, it
// must exist; otherwise the standard search paths are tried and a missing
// file is not an error.
func Load(v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("mdsafe")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "mdsafe"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mdsafe"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("mdsafe")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "MDSAFE_SERVER_PORT", "PORT"); err != nil {
		return fmt.Errorf("binding port env: %w", err)
	}

	// Allow a comma-separated env override for origins.
	if s := strings.TrimSpace(v.GetString("cors.allowed_origins")); s != "" {
		if parts := splitList(s); len(parts) > 0 {
			v.Set("cors.allowed_origins", parts)
		}
	}
	return nil
}

// FromViper builds Settings from a loaded Viper instance and validates them.
func FromViper(v *viper.Viper) (Settings, error) {
	s := Settings{
		Host:            strings.TrimSpace(v.GetString("server.host")),
		Port:            v.GetInt("server.port"),
		MaxBodyBytes:    v.GetInt64("server.max_body_bytes"),
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		IdleTimeout:     v.GetDuration("server.idle_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		AllowedOrigins:  v.GetStringSlice("cors.allowed_origins"),
		Audit:           v.GetBool("pipeline.audit"),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
		LogFormat:       strings.ToLower(strings.TrimSpace(v.GetString("log.format"))),
	}
	if err := s.Check(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Check reports every invalid setting in a single error.
func (s Settings) Check() error {
	var problems []string
	if s.Port <= 0 || s.Port > 65535 {
		problems = append(problems, "server.port must be between 1 and 65535")
	}
	if s.MaxBodyBytes <= 0 {
		problems = append(problems, "server.max_body_bytes must be greater than 0")
	}
	if s.ShutdownTimeout < 0 {
		problems = append(problems, "server.shutdown_timeout must not be negative")
	}
	switch s.LogFormat {
	case "json", "console", "pretty":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not supported", s.LogFormat))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
