package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the search paths away from the developer's real config.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("PORT", "")
	t.Setenv("MDSAFE_SERVER_PORT", "")
	t.Chdir(dir)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	v := viper.New()
	require.NoError(t, Load(v))

	s, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 3001, s.Port)
	assert.Equal(t, ":3001", s.Addr())
	assert.Equal(t, int64(102400), s.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, s.ReadTimeout)
	assert.Equal(t, 5*time.Second, s.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, s.AllowedOrigins)
	assert.True(t, s.Audit)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
}

func TestLoadPortFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "8080")

	v := viper.New()
	require.NoError(t, Load(v))
	assert.Equal(t, 8080, v.GetInt("server.port"))

	t.Setenv("MDSAFE_SERVER_PORT", "9090")
	v = viper.New()
	require.NoError(t, Load(v))
	assert.Equal(t, 9090, v.GetInt("server.port"))
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MDSAFE_LOG_LEVEL", "DEBUG")
	t.Setenv("MDSAFE_PIPELINE_AUDIT", "false")
	t.Setenv("MDSAFE_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	v := viper.New()
	require.NoError(t, Load(v))
	s, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.False(t, s.Audit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, s.AllowedOrigins)
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "mdsafe.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 4000\nmax_body_bytes = 2048\n"), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, Load(v))

	s, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 4000, s.Port)
	assert.Equal(t, int64(2048), s.MaxBodyBytes)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "missing.toml"))

	assert.Error(t, Load(v))
}

func TestSettingsCheck(t *testing.T) {
	s := Settings{Port: 0, MaxBodyBytes: 0, ShutdownTimeout: -time.Second, LogFormat: "xml"}

	err := s.Check()
	require.Error(t, err)
	for _, want := range []string{
		"server.port must be between 1 and 65535",
		"server.max_body_bytes must be greater than 0",
		"server.shutdown_timeout must not be negative",
		`log.format "xml" is not supported`,
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestRenderDefaultTOML(t *testing.T) {
	out := RenderDefaultTOML()

	assert.True(t, strings.HasPrefix(out, "# mdsafe configuration (TOML)"))
	assert.Contains(t, out, "[server]\n")
	assert.Contains(t, out, "port = 3001\n")
	assert.Contains(t, out, `allowed_origins = ["*"]`)
	assert.Contains(t, out, "audit = true\n")
	assert.Contains(t, out, `format = "json"`)

	// The rendered defaults must load back cleanly.
	isolate(t)
	path := filepath.Join(t.TempDir(), "mdsafe.toml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, Load(v))
	_, err := FromViper(v)
	assert.NoError(t, err)
}
