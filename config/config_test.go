package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/josexy/hosts-whitelist/fetcher"
	"github.com/josexy/hosts-whitelist/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
log:
  color: true
  log_level: debug
  verbose_level: 2
whitelist:
  without_core: true
  no_complement: true
  files:
    - ./whitelist.list
  anti_rules:
    - ALL .com
filter:
  parallel: true
  workers: 4
  sort: hierarchical
fetch:
  timeout: 5s
serve:
  listen: 0.0.0.0:9090
  reload_interval: 10m
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(testConfig))
	require.NoError(t, err)

	assert.True(t, cfg.Log.Color)
	assert.Equal(t, "debug", cfg.Log.LogLevel)
	assert.Equal(t, 2, cfg.Log.VerboseLevel)
	assert.True(t, cfg.Whitelist.WithoutCore)
	assert.True(t, cfg.Whitelist.NoComplement)
	assert.Equal(t, []string{"./whitelist.list"}, cfg.Whitelist.Files)
	assert.Equal(t, []string{"ALL .com"}, cfg.Whitelist.AntiRules)
	assert.True(t, cfg.Filter.Parallel)
	assert.Equal(t, 4, cfg.Filter.Workers)
	assert.Equal(t, "hierarchical", cfg.Filter.Sort)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, fetcher.DefaultUserAgent, cfg.Fetch.UserAgent)
	assert.Equal(t, "0.0.0.0:9090", cfg.Serve.Listen)
	assert.Equal(t, "/metrics", cfg.Serve.MetricsPath)
	assert.Equal(t, 10*time.Minute, cfg.Serve.ReloadInterval)
	assert.Equal(t, fetcher.DefaultLinks(), cfg.FetchLinks())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Log.LogLevel)
	assert.Equal(t, 1, cfg.Log.VerboseLevel)
	assert.Equal(t, filter.DefaultWorkers(), cfg.Filter.Workers)
	assert.Equal(t, "none", cfg.Filter.Sort)
	assert.Equal(t, fetcher.DefaultTimeout, cfg.Fetch.Timeout)
	assert.Equal(t, time.Hour, cfg.Serve.ReloadInterval)
}

func TestParseConfigReloadInterval(t *testing.T) {
	tests := []struct {
		data string
		want time.Duration
	}{
		{"serve:\n  reload_interval: 0s\n", 0},
		{"serve:\n  listen: 127.0.0.1:9000\n", time.Hour},
		{"log:\n  color: true\n", time.Hour},
	}
	for _, tt := range tests {
		cfg, err := ParseConfig([]byte(tt.data))
		require.NoError(t, err, tt.data)
		assert.Equal(t, tt.want, cfg.Serve.ReloadInterval, tt.data)
	}
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("log:\n  color: true\nfilter:\n  parallel: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Log.Color)
	assert.Equal(t, "info", cfg.Log.LogLevel)
	assert.Equal(t, 1, cfg.Log.VerboseLevel)
	assert.True(t, cfg.Filter.Parallel)
	assert.Equal(t, filter.DefaultWorkers(), cfg.Filter.Workers)

	cfg, err = ParseConfig([]byte("log:\n  verbose_level: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Log.VerboseLevel)
}

func TestParseConfigInvalid(t *testing.T) {
	for _, data := range []string{
		"filter: {sort: random}",
		"filter: {workers: -2}",
		"log: {verbose_level: 7}",
	} {
		_, err := ParseConfig([]byte(data))
		assert.ErrorIs(t, err, ErrInvalidConfig, data)
	}
	_, err := ParseConfig([]byte("log: ["))
	assert.Error(t, err)
}

func TestParseConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))
	cfg, err := ParseConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Filter.Workers)

	_, err = ParseConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
