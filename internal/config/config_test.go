package config_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/regviz/internal/config"
	"github.com/wandb/regviz/internal/viewport"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	loader := config.Loader{Fs: afero.NewMemMapFs(), Getenv: env(nil)}

	cfg, err := loader.Load("/nope/regviz.yaml")

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, viewport.DefaultSurface, cfg.Chart.Surface())
}

func TestLoad_File(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/regviz.yaml", []byte(`
server:
  url: https://regression.example.com/api
  timeout: 3s
  retry_max: 5
  requests_per_second: 2.5
service:
  addr: 127.0.0.1:9000
chart:
  width: 1000
  export_path: /tmp/chart.png
debug: true
`), 0o644))
	loader := config.Loader{Fs: fs, Getenv: env(nil)}

	cfg, err := loader.Load("/etc/regviz.yaml")

	require.NoError(t, err)
	assert.Equal(t, "https://regression.example.com/api", cfg.Server.URL)
	assert.Equal(t, 3*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 5, cfg.Server.RetryMax)
	assert.InDelta(t, 2.5, cfg.Server.RequestsPerSecond, 1e-9)
	assert.Equal(t, "127.0.0.1:9000", cfg.Service.Addr)
	assert.Equal(t, config.DefaultModelPath, cfg.Service.ModelPath)
	assert.Equal(t,
		viewport.Surface{Width: 1000, Height: 400, Padding: 50},
		cfg.Chart.Surface())
	assert.Equal(t, "/tmp/chart.png", cfg.Chart.ExportPath)
	assert.True(t, cfg.Debug)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/regviz.yaml",
		[]byte("server:\n  url: http://from-file:1\n"), 0o644))
	loader := config.Loader{Fs: fs, Getenv: env(map[string]string{
		config.EnvConfigDir: "/cfg",
		config.EnvServerURL: "http://from-env:2",
		config.EnvModelPath: "/data/model.json",
		config.EnvAddr:      ":7000",
		config.EnvDebug:     "1",
	})}

	cfg, err := loader.Load("")

	require.NoError(t, err)
	assert.Equal(t, "http://from-env:2", cfg.Server.URL)
	assert.Equal(t, "/data/model.json", cfg.Service.ModelPath)
	assert.Equal(t, ":7000", cfg.Service.Addr)
	assert.True(t, cfg.Debug)
}

func TestLoad_InvalidYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("server: [1, 2"), 0o644))
	loader := config.Loader{Fs: fs, Getenv: env(nil)}

	_, err := loader.Load("/bad.yaml")

	assert.ErrorContains(t, err, "/bad.yaml")
}

func TestLoad_Normalizes(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte(`
server:
  timeout: -1s
  retry_max: -3
chart:
  width: 100
  height: 80
  padding: 60
`), 0o644))
	loader := config.Loader{Fs: fs, Getenv: env(nil)}

	cfg, err := loader.Load("/c.yaml")

	require.NoError(t, err)
	assert.Equal(t, config.DefaultTimeout, cfg.Server.Timeout)
	assert.Zero(t, cfg.Server.RetryMax)
	assert.Equal(t,
		viewport.Surface{Width: 100, Height: 80, Padding: 20},
		cfg.Chart.Surface())
}

func TestDefaultPath(t *testing.T) {
	path := config.DefaultPath(env(map[string]string{config.EnvConfigDir: "/x"}))
	assert.Equal(t, "/x/regviz.yaml", path)
}

func TestServerURL(t *testing.T) {
	cfg := config.Default()
	u, err := cfg.ServerURL()
	require.NoError(t, err)
	assert.Equal(t, "localhost:8000", u.Host)

	cfg.Server.URL = "ftp://example.com"
	_, err = cfg.ServerURL()
	assert.Error(t, err)
}
