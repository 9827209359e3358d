// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate keeps Load from picking up files or variables of the host.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig().Validate() error = %v", err)
	}
	if cfg.Mining.MinSupport != 2 || cfg.Mining.MaxGap != 15 || cfg.Mining.MaxSpan != 60 {
		t.Errorf("mining defaults = %+v", cfg.Mining)
	}
	if !cfg.Mining.Refine {
		t.Error("Refine should default to true")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %q, want text", cfg.Output.Format)
	}
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "seqmine.yaml", `
mining:
  min_support: 10
  workers: 4
  use_time_constraints: true
  max_gap: 7
  max_span: 30
input:
  path: tx.csv
  time_column: day
server:
  read_timeout: 5s
`)
	t.Setenv("SEQMINE_MIN_SUPPORT", "25")
	t.Setenv("SEQMINE_LOG_LEVEL", "debug")
	t.Setenv("SEQMINE_UNRELATED", "ignored")
	t.Setenv("SEQMINE_HTTP_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"env beats file", cfg.Mining.MinSupport, 25},
		{"file beats default", cfg.Mining.Workers, 4},
		{"file bool", cfg.Mining.UseTimeConstraints, true},
		{"default kept", cfg.Mining.Refine, true},
		{"nested string", cfg.Input.Path, "tx.csv"},
		{"duration", cfg.Server.ReadTimeout, 5 * time.Second},
		{"env logging", cfg.Logging.Level, "debug"},
		{"env list", strings.Join(cfg.Server.CORSOrigins, "|"), "https://a.example|https://b.example"},
		{"store gc default", cfg.Store.GCInterval, 10 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadConfigPathEnvVar(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "custom.yaml", "output:\n  format: csv\n")
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Format != "csv" {
		t.Errorf("Output.Format = %q, want csv", cfg.Output.Format)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() with a missing explicit file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"zero support", func(c *Config) { c.Mining.MinSupport = 0 }, "mining.min_support"},
		{"bad output format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"missing item column", func(c *Config) { c.Input.ItemColumn = "" }, "input.item_column is required"},
		{"bad address", func(c *Config) { c.Server.Address = "nowhere" }, "server.address"},
		{"gap order", func(c *Config) {
			c.Mining.UseTimeConstraints = true
			c.Input.TimeColumn = "t"
			c.Mining.MinGap = 30
		}, "mining.min_gap"},
		{"span below gap", func(c *Config) {
			c.Mining.UseTimeConstraints = true
			c.Input.TimeColumn = "t"
			c.Mining.MaxSpan = 3
		}, "mining.max_span"},
		{"time column required", func(c *Config) { c.Mining.UseTimeConstraints = true }, "input.time_column"},
		{"store path required", func(c *Config) { c.Store.Path = "" }, "store.path"},
		{"store disabled without path", func(c *Config) {
			c.Store.Enabled = false
			c.Store.Path = ""
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"SEQMINE_MIN_SUPPORT":      "mining.min_support",
		"SEQMINE_HTTP_ADDRESS":     "server.address",
		"SEQMINE_METRICS_TEXTFILE": "metrics.textfile_path",
		"SEQMINE_NOT_A_SETTING":    "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
