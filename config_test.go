package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]byte(`
server:
  host: 127.0.0.1
  port: 8080
chains:
  secret:
    lcdURL: https://lcd.example.com/
    timeout: 10
  cosmoshub:
    lcdURL: http://localhost:1317
`))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"cosmoshub", "secret"}, cfg.getChains())

	secret, ok := cfg.chain("secret")
	require.True(t, ok)
	assert.Equal(t, "https://lcd.example.com", secret.LCDURL)
	assert.Equal(t, 10*time.Second, secret.timeout())

	hub, _ := cfg.chain("cosmoshub")
	assert.Equal(t, DEFAULT_TIMEOUT*time.Second, hub.timeout())
}

func TestParseConfig_Invalid(t *testing.T) {
	for name, raw := range map[string]string{
		"no chains":   "server:\n  port: 1\n",
		"missing url": "chains:\n  a:\n    timeout: 1\n",
		"not http":    "chains:\n  a:\n    lcdURL: grpc://node:9090\n",
		"bad yaml":    "chains: [",
	} {
		_, err := parseConfig([]byte(raw))
		assert.Error(t, err, name)
	}
}

func TestResolveConfigPath(t *testing.T) {
	assert.Equal(t, "flag.yaml", resolveConfigPath("flag.yaml"))

	t.Setenv(CONFIG_PATH_ENV, "/etc/lcd-query.yaml")
	assert.Equal(t, "/etc/lcd-query.yaml", resolveConfigPath(""))

	t.Setenv(CONFIG_PATH_ENV, "")
	assert.Equal(t, DEFAULT_CONFIG_PATH, resolveConfigPath(""))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chains:\n  a:\n    lcdURL: http://a\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, cfg.getChains())

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
