// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when no path is given.
var DefaultConfigPaths = []string{
	"seqmine.yaml",
	"seqmine.yml",
	"/etc/seqmine/config.yaml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "SEQMINE_CONFIG"

// Load builds the configuration from three layers:
//
//  1. Defaults
//  2. YAML file: path if non-empty, else SEQMINE_CONFIG, else the first
//     existing entry of DefaultConfigPaths
//  3. SEQMINE_* environment variables
//
// An explicit path that does not exist is an error; a missing default file
// is not.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("SEQMINE_", ".", envValueFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps SEQMINE_-prefixed variables, lowercased and without the
// prefix, to koanf paths.
var envMappings = map[string]string{
	"min_support":          "mining.min_support",
	"use_time_constraints": "mining.use_time_constraints",
	"min_gap":              "mining.min_gap",
	"max_gap":              "mining.max_gap",
	"max_span":             "mining.max_span",
	"workers":              "mining.workers",
	"refine":               "mining.refine",
	"max_pattern_size":     "mining.max_pattern_size",

	"input_path":      "input.path",
	"input_format":    "input.format",
	"customer_column": "input.customer_column",
	"time_column":     "input.time_column",
	"item_column":     "input.item_column",
	"item_separator":  "input.item_separator",

	"output_format": "output.format",
	"output_path":   "output.path",

	"store_enabled":     "store.enabled",
	"store_path":        "store.path",
	"store_sync_writes": "store.sync_writes",
	"store_gc_interval": "store.gc_interval",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"metrics_textfile": "metrics.textfile_path",

	"http_address":          "server.address",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_cors_origins":     "server.cors_origins",
	"http_mine_rate_limit":  "server.mine_rate_limit",
	"http_max_body_bytes":   "server.max_body_bytes",
	"http_run_cache_size":   "server.run_cache_size",
	"http_run_cache_ttl":    "server.run_cache_ttl",
}

// envListKeys are split on commas.
var envListKeys = map[string]bool{
	"server.cors_origins": true,
}

// envTransformFunc maps SEQMINE_MIN_SUPPORT to mining.min_support and so on.
// Unknown variables map to "" and are ignored.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "SEQMINE_"))
	return envMappings[key]
}

func envValueFunc(key, value string) (string, interface{}) {
	path := envTransformFunc(key)
	if !envListKeys[path] {
		return path, value
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return path, out
}
