// Package config resolves the global CLI settings.
//
// Priority (highest to lowest):
// 1. Command-line flags
// 2. Environment variables prefixed TYPEMEND_ (TYPEMEND_LOG_LEVEL, TYPEMEND_TIMEOUT, ...)
// 3. Defaults
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TYPEMEND"

// Settings holds the global flags of every command.
type Settings struct {
	Manifest       string        `mapstructure:"manifest"`
	Color          string        `mapstructure:"color"`
	UI             string        `mapstructure:"ui"`
	Quiet          bool          `mapstructure:"quiet"`
	Timings        bool          `mapstructure:"timings"`
	LogLevel       string        `mapstructure:"log-level"`
	LogFormat      string        `mapstructure:"log-format"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxDiagnostics int           `mapstructure:"max-diagnostics"`
}

// RegisterFlags adds the global flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("manifest", "", "path to typemend.toml (default: search upwards from the working directory)")
	fs.String("color", "auto", "colorize output (auto|on|off)")
	fs.String("ui", "auto", "show the checker spinner (auto|on|off)")
	fs.Bool("quiet", false, "suppress non-essential output")
	fs.Bool("timings", false, "show timing information")
	fs.String("log-level", "warn", "log level (debug|info|warn|error)")
	fs.String("log-format", "console", "log format (console|json)")
	fs.Duration("timeout", 0, "abort the checker after this long (0 disables)")
	fs.Int("max-diagnostics", 100, "maximum number of diagnostics to list")
}

// Load merges flags from fs with TYPEMEND_* environment variables.
func Load(fs *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks enumerated values.
func (s *Settings) Validate() error {
	s.Color = strings.ToLower(strings.TrimSpace(s.Color))
	s.UI = strings.ToLower(strings.TrimSpace(s.UI))
	s.LogFormat = strings.ToLower(strings.TrimSpace(s.LogFormat))

	if !oneOf(s.Color, "auto", "on", "off") {
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", s.Color)
	}
	if !oneOf(s.UI, "auto", "on", "off") {
		return fmt.Errorf("invalid --ui value %q (expected auto|on|off)", s.UI)
	}
	if !oneOf(s.LogFormat, "console", "json") {
		return fmt.Errorf("invalid --log-format value %q (expected console|json)", s.LogFormat)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}
	if s.MaxDiagnostics < 0 {
		return fmt.Errorf("--max-diagnostics must not be negative")
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
