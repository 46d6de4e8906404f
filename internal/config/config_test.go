package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, "", s.Manifest)
	assert.Equal(t, "auto", s.Color)
	assert.Equal(t, "auto", s.UI)
	assert.False(t, s.Quiet)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.Equal(t, time.Duration(0), s.Timeout)
	assert.Equal(t, 100, s.MaxDiagnostics)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("TYPEMEND_LOG_LEVEL", "debug")
	t.Setenv("TYPEMEND_TIMEOUT", "90s")
	t.Setenv("TYPEMEND_QUIET", "true")

	s, err := Load(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 90*time.Second, s.Timeout)
	assert.True(t, s.Quiet)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("TYPEMEND_COLOR", "on")

	s, err := Load(newFlags(t, "--color=off", "--manifest", "x/typemend.toml"))
	require.NoError(t, err)
	assert.Equal(t, "off", s.Color)
	assert.Equal(t, "x/typemend.toml", s.Manifest)
}

func TestLoad_Invalid(t *testing.T) {
	tests := [][]string{
		{"--color=sometimes"},
		{"--ui=maybe"},
		{"--log-format=xml"},
		{"--timeout=-1s"},
	}
	for _, args := range tests {
		_, err := Load(newFlags(t, args...))
		assert.Error(t, err, "args %v", args)
	}
}
