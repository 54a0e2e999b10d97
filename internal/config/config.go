// Package config loads regviz settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wandb/regviz/internal/viewport"
)

const (
	EnvConfigDir = "REGVIZ_CONFIG_DIR"
	EnvServerURL = "REGVIZ_SERVER_URL"
	EnvModelPath = "REGVIZ_MODEL_PATH"
	EnvAddr      = "REGVIZ_ADDR"
	EnvDebug     = "REGVIZ_DEBUG"
	EnvSentryDSN = "REGVIZ_SENTRY_DSN"

	FileName = "regviz.yaml"

	DefaultServerURL = "http://localhost:8000"
	DefaultTimeout   = 10 * time.Second
	DefaultRetryMax  = 2
	DefaultAddr      = ":8000"
	DefaultModelPath = "model.json"
)

// Config is the full set of settings.
type Config struct {
	// Server is how the client reaches the regression service.
	Server ServerConfig `yaml:"server"`

	// Service configures the bundled regression service.
	Service ServiceConfig `yaml:"service"`

	Chart ChartConfig `yaml:"chart"`

	Debug     bool   `yaml:"debug"`
	SentryDSN string `yaml:"sentry_dsn"`
}

type ServerConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`

	// RetryMax is the number of retries of a failed request.
	RetryMax int `yaml:"retry_max"`

	// RequestsPerSecond limits outgoing requests. Zero means no limit.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type ServiceConfig struct {
	Addr      string `yaml:"addr"`
	ModelPath string `yaml:"model_path"`
}

type ChartConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Padding float64 `yaml:"padding"`

	// ExportPath is where the TUI saves the chart as PNG.
	ExportPath string `yaml:"export_path"`
}

// Surface returns the chart's pixel surface.
func (c ChartConfig) Surface() viewport.Surface {
	return viewport.Surface{Width: c.Width, Height: c.Height, Padding: c.Padding}
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Server: ServerConfig{
			URL:      DefaultServerURL,
			Timeout:  DefaultTimeout,
			RetryMax: DefaultRetryMax,
		},
		Service: ServiceConfig{
			Addr:      DefaultAddr,
			ModelPath: DefaultModelPath,
		},
		Chart: ChartConfig{
			Width:   viewport.DefaultSurface.Width,
			Height:  viewport.DefaultSurface.Height,
			Padding: viewport.DefaultSurface.Padding,
		},
	}
}

// ServerURL parses Server.URL.
func (c Config) ServerURL() (*url.URL, error) {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return nil, fmt.Errorf("config: invalid server url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("config: server url %q must be http or https", c.Server.URL)
	}
	return u, nil
}

// Loader reads a Config.
type Loader struct {
	// Fs is the filesystem the config file is read from.
	Fs afero.Fs

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// Load reads the config file at path and applies environment overrides.
//
// An empty path means DefaultPath. A missing file is not an error.
func (l Loader) Load(path string) (Config, error) {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if path == "" {
		path = DefaultPath(getenv)
	}

	cfg := Default()
	if path != "" {
		if err := l.readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg, getenv)
	cfg.normalize()
	return cfg, nil
}

func (l Loader) readFile(path string, cfg *Config) error {
	data, err := afero.ReadFile(l.Fs, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("config: failed to read %s: %v", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %v", path, err)
	}
	return nil
}

// DefaultPath returns where the config file lives: in $REGVIZ_CONFIG_DIR
// if set, else in the user's config directory. It is empty if neither is
// known.
func DefaultPath(getenv func(string) string) string {
	if dir := strings.TrimSpace(getenv(EnvConfigDir)); dir != "" {
		return filepath.Join(dir, FileName)
	}
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "regviz", FileName)
	}
	return ""
}

func applyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Server.URL, EnvServerURL)
	set(&cfg.Service.ModelPath, EnvModelPath)
	set(&cfg.Service.Addr, EnvAddr)
	set(&cfg.SentryDSN, EnvSentryDSN)

	if v := strings.TrimSpace(getenv(EnvDebug)); v != "" {
		debug, err := strconv.ParseBool(v)
		cfg.Debug = err != nil || debug
	}
}

// normalize replaces unusable values with defaults.
func (c *Config) normalize() {
	def := Default()

	if c.Server.URL == "" {
		c.Server.URL = def.Server.URL
	}
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = def.Server.Timeout
	}
	c.Server.RetryMax = max(c.Server.RetryMax, 0)
	c.Server.RequestsPerSecond = max(c.Server.RequestsPerSecond, 0)

	if c.Service.Addr == "" {
		c.Service.Addr = def.Service.Addr
	}
	if c.Service.ModelPath == "" {
		c.Service.ModelPath = def.Service.ModelPath
	}

	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		c.Chart.Width, c.Chart.Height = def.Chart.Width, def.Chart.Height
	}
	if c.Chart.Padding < 0 ||
		2*c.Chart.Padding >= min(c.Chart.Width, c.Chart.Height) {
		c.Chart.Padding = min(def.Chart.Padding, min(c.Chart.Width, c.Chart.Height)/4)
	}
}
