package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/hyquery/internal/query"
)

// Config captures the endpoint and polling settings for one monitored server.
type Config struct {
	Host            string
	Port            int
	Path            string
	UseHTTPS        bool
	Timeout         time.Duration
	PollingEnabled  bool
	PollingInterval time.Duration
}

const (
	defaultConfigPath      = "~/.config/hyquery/config.toml"
	defaultHost            = "192.168.0.203"
	defaultPort            = 5523
	defaultPath            = "/Nitrado/Query"
	defaultTimeout         = 5 * time.Second
	defaultPollingInterval = 5 * time.Second
)

// IntervalPresets are the polling intervals offered to the operator.
var IntervalPresets = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	60 * time.Second,
}

// fileConfig is the on-disk shape shared by TOML and YAML files.
type fileConfig struct {
	Host                   string  `toml:"host" yaml:"host"`
	Port                   int     `toml:"port" yaml:"port"`
	Path                   string  `toml:"path" yaml:"path"`
	UseHTTPS               *bool   `toml:"use_https" yaml:"use_https"`
	TimeoutSeconds         float64 `toml:"timeout_seconds" yaml:"timeout_seconds"`
	PollingEnabled         bool    `toml:"polling_enabled" yaml:"polling_enabled"`
	PollingIntervalSeconds float64 `toml:"polling_interval_seconds" yaml:"polling_interval_seconds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:            defaultHost,
		Port:            defaultPort,
		Path:            defaultPath,
		UseHTTPS:        true,
		Timeout:         defaultTimeout,
		PollingInterval: defaultPollingInterval,
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if isYAML(resolved) {
		err = yaml.Unmarshal(bytes, &raw)
	} else {
		err = toml.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if host := strings.TrimSpace(raw.Host); host != "" {
		cfg.Host = host
	}
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if p := strings.TrimSpace(raw.Path); p != "" {
		cfg.Path = p
	}
	if raw.UseHTTPS != nil {
		cfg.UseHTTPS = *raw.UseHTTPS
	}
	if d := seconds(raw.TimeoutSeconds); d > 0 {
		cfg.Timeout = d
	}
	cfg.PollingEnabled = raw.PollingEnabled
	if d := seconds(raw.PollingIntervalSeconds); d > 0 {
		cfg.PollingInterval = d
	}
	return cfg, nil
}

// Save writes cfg to path, creating directories as needed.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	useHTTPS := cfg.UseHTTPS
	raw := fileConfig{
		Host:                   cfg.Host,
		Port:                   cfg.Port,
		Path:                   cfg.Path,
		UseHTTPS:               &useHTTPS,
		TimeoutSeconds:         cfg.Timeout.Seconds(),
		PollingEnabled:         cfg.PollingEnabled,
		PollingIntervalSeconds: cfg.PollingInterval.Seconds(),
	}

	var bytes []byte
	if isYAML(resolved) {
		bytes, err = yaml.Marshal(raw)
	} else {
		bytes, err = toml.Marshal(raw)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Endpoint returns the request settings for one fetch.
func (c Config) Endpoint() query.Endpoint {
	return query.Endpoint{
		Host:     c.Host,
		Port:     c.Port,
		Path:     c.Path,
		UseHTTPS: c.UseHTTPS,
		Timeout:  c.Timeout,
	}
}

// StepInterval moves current to the neighbouring preset in direction dir
// (positive for longer). Values between presets snap to the nearest one.
func StepInterval(current time.Duration, dir int) time.Duration {
	idx := 0
	best := time.Duration(math.MaxInt64)
	for i, preset := range IntervalPresets {
		diff := preset - current
		if diff < 0 {
			diff = -diff
		}
		if diff < best {
			best, idx = diff, i
		}
	}
	switch {
	case dir > 0 && idx < len(IntervalPresets)-1:
		idx++
	case dir < 0 && idx > 0:
		idx--
	}
	return IntervalPresets[idx]
}

func seconds(v float64) time.Duration {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return time.Duration(v * float64(time.Second))
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
