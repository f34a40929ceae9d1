package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/qrkit/qrcode"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_File(t *testing.T) {
	p := writeFile(t, "cfg.yaml", `port: 9000
log_level: debug
error_correction: H
margin: 2
default_size: 300
max_size: 1000
read_timeout: 5s
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 300, cfg.DefaultSize)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout.Duration)

	opts := cfg.EncodeOptions()
	assert.Equal(t, qrcode.High, opts.Level)
	require.NotNil(t, opts.Margin)
	assert.Equal(t, 2, *opts.Margin)
}

func TestLoad_EnvOverrides(t *testing.T) {
	p := writeFile(t, "cfg.yaml", "port: 9000\n")
	t.Setenv("QRKIT_PORT", "9100")
	t.Setenv("QRKIT_ERROR_CORRECTION", "q")
	t.Setenv("QRKIT_WRITE_TIMEOUT", "1m")
	t.Setenv("QRKIT_MAX_ASCII_MODULES", "notanumber")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "q", cfg.ErrorCorrection)
	assert.Equal(t, time.Minute, cfg.WriteTimeout.Duration)
	assert.Equal(t, Defaults().MaxASCIIModules, cfg.MaxASCIIModules)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"bad level", "error_correction: Z\n"},
		{"negative margin", "margin: -1\n"},
		{"default over max", "default_size: 500\nmax_size: 100\n"},
		{"bad duration", "read_timeout: soon\n"},
		{"bad yaml", "port: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "cfg.yaml", tc.yml))
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))

	// Setenv restores the original value on cleanup; unset so godotenv may fill it.
	t.Setenv("QRKIT_DEFAULT_SIZE", "")
	os.Unsetenv("QRKIT_DEFAULT_SIZE")
	p := writeFile(t, ".env", "QRKIT_DEFAULT_SIZE=321\n")
	require.NoError(t, LoadEnvFile(p))

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 321, cfg.DefaultSize)
}
