package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load = %#v, want defaults %#v", cfg, Default())
	}
	if cfg.Host != defaultHost || cfg.Port != defaultPort || cfg.Path != defaultPath {
		t.Fatalf("endpoint = %s:%d%s, want %s:%d%s", cfg.Host, cfg.Port, cfg.Path, defaultHost, defaultPort, defaultPath)
	}
	if !cfg.UseHTTPS {
		t.Fatalf("UseHTTPS = false, want true")
	}
	if cfg.PollingEnabled {
		t.Fatalf("PollingEnabled = true, want false")
	}
}

func TestLoad_ParsesAndTrimsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
host = "  nuctax.local  "
port = 8443
path = " /Query "
use_https = false
timeout_seconds = 2.5
polling_enabled = true
polling_interval_seconds = 10
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Host != "nuctax.local" {
		t.Fatalf("Host = %q, want nuctax.local", cfg.Host)
	}
	if cfg.Port != 8443 {
		t.Fatalf("Port = %d, want 8443", cfg.Port)
	}
	if cfg.Path != "/Query" {
		t.Fatalf("Path = %q, want /Query", cfg.Path)
	}
	if cfg.UseHTTPS {
		t.Fatalf("UseHTTPS = true, want false")
	}
	if cfg.Timeout != 2500*time.Millisecond {
		t.Fatalf("Timeout = %v, want 2.5s", cfg.Timeout)
	}
	if !cfg.PollingEnabled || cfg.PollingInterval != 10*time.Second {
		t.Fatalf("polling = %v/%v, want true/10s", cfg.PollingEnabled, cfg.PollingInterval)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("host: NUCTAX\nport: 5524\npolling_interval_seconds: 30\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Host != "NUCTAX" || cfg.Port != 5524 {
		t.Fatalf("endpoint = %s:%d, want NUCTAX:5524", cfg.Host, cfg.Port)
	}
	if cfg.PollingInterval != 30*time.Second {
		t.Fatalf("PollingInterval = %v, want 30s", cfg.PollingInterval)
	}
	if !cfg.UseHTTPS {
		t.Fatalf("UseHTTPS = false, want default true when omitted")
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
host = "   "
path = ""
timeout_seconds = -1
polling_interval_seconds = 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load = %#v, want defaults", cfg)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`host = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestSave_RoundTrip(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			want := Config{
				Host:            "nuctax.local",
				Port:            5523,
				Path:            "/Nitrado/Query",
				UseHTTPS:        false,
				Timeout:         3 * time.Second,
				PollingEnabled:  true,
				PollingInterval: 2 * time.Second,
			}
			if err := Save(path, want); err != nil {
				t.Fatalf("Save returned error: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if got != want {
				t.Fatalf("Load = %#v, want %#v", got, want)
			}
		})
	}
}

func TestEndpoint_CopiesFields(t *testing.T) {
	ep := Default().Endpoint()
	if ep.Host != defaultHost || ep.Port != defaultPort || ep.Path != defaultPath || !ep.UseHTTPS || ep.Timeout != defaultTimeout {
		t.Fatalf("Endpoint = %#v, want defaults", ep)
	}
}

func TestStepInterval(t *testing.T) {
	tests := []struct {
		current time.Duration
		dir     int
		want    time.Duration
	}{
		{5 * time.Second, 1, 10 * time.Second},
		{5 * time.Second, -1, 2 * time.Second},
		{1 * time.Second, -1, 1 * time.Second},
		{60 * time.Second, 1, 60 * time.Second},
		{7 * time.Second, 0, 5 * time.Second},
		{45 * time.Second, 1, 60 * time.Second},
	}
	for _, tt := range tests {
		if got := StepInterval(tt.current, tt.dir); got != tt.want {
			t.Errorf("StepInterval(%v, %d) = %v, want %v", tt.current, tt.dir, got, tt.want)
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
