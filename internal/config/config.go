// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

// Package config loads seqmine configuration from defaults, an optional
// YAML file and SEQMINE_* environment variables, in increasing priority.
//
// Example seqmine.yaml:
//
//	mining:
//	  min_support: 25
//	  use_time_constraints: true
//	  max_gap: 15
//	  max_span: 60
//	  workers: 8
//	input:
//	  path: transactions.parquet
//	  customer_column: customer_id
//	  time_column: purchased_at
//	  item_column: sku
//	store:
//	  path: /var/lib/seqmine
//	logging:
//	  level: debug
//	  format: console
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Mining  MiningConfig  `koanf:"mining"`
	Input   InputConfig   `koanf:"input"`
	Output  OutputConfig  `koanf:"output"`
	Store   StoreConfig   `koanf:"store"`
	Logging LoggingConfig `koanf:"logging"`
	Metrics MetricsConfig `koanf:"metrics"`
	Server  ServerConfig  `koanf:"server"`
}

// MiningConfig holds the GSP parameters.
type MiningConfig struct {
	// MinSupport is the minimum number of supporting customers.
	MinSupport int `koanf:"min_support" validate:"gte=1"`

	// UseTimeConstraints enables the gap and span bounds below.
	UseTimeConstraints bool `koanf:"use_time_constraints"`

	// MinGap, MaxGap and MaxSpan are in days.
	MinGap  int `koanf:"min_gap" validate:"gte=0"`
	MaxGap  int `koanf:"max_gap" validate:"gte=0"`
	MaxSpan int `koanf:"max_span" validate:"gte=0"`

	// Workers evaluating candidates in parallel; 0 or 1 is sequential.
	Workers int `koanf:"workers" validate:"gte=0,lte=1024"`

	// Refine recounts frequent patterns exactly with customer attribution.
	Refine bool `koanf:"refine"`

	// MaxPatternSize limits pattern size; 0 is unbounded.
	MaxPatternSize int `koanf:"max_pattern_size" validate:"gte=0"`
}

// InputConfig describes the transaction log.
type InputConfig struct {
	Path   string `koanf:"path"`
	Format string `koanf:"format" validate:"oneof=auto csv parquet"`

	CustomerColumn string `koanf:"customer_column" validate:"required"`

	// TimeColumn may be empty when time constraints are off.
	TimeColumn string `koanf:"time_column"`
	ItemColumn string `koanf:"item_column" validate:"required"`

	// ItemSeparator splits one item cell into several items of the same
	// transaction. Empty keeps each cell whole.
	ItemSeparator string `koanf:"item_separator"`
}

// OutputConfig controls how mined patterns are written.
type OutputConfig struct {
	Format string `koanf:"format" validate:"oneof=json csv text"`

	// Path of the report; empty writes to stdout.
	Path string `koanf:"path"`
}

// StoreConfig configures the BadgerDB run store.
type StoreConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"`
	SyncWrites bool   `koanf:"sync_writes"`

	// GCInterval is how often serve reclaims value log space.
	GCInterval time.Duration `koanf:"gc_interval" validate:"gte=0"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig controls Prometheus export for batch runs.
type MetricsConfig struct {
	// TextfilePath receives the metrics after each mine command, for the
	// node_exporter textfile collector. Empty disables the export.
	TextfilePath string `koanf:"textfile_path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address         string        `koanf:"address" validate:"hostname_port"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`

	// CORSOrigins lists allowed browser origins. Empty disables CORS.
	CORSOrigins []string `koanf:"cors_origins"`

	// MineRateLimit caps POST /api/v1/mine per client IP and minute.
	// 0 disables the limit.
	MineRateLimit int `koanf:"mine_rate_limit" validate:"gte=0"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"gte=1024"`

	// RunCacheSize bounds the decoded runs the API keeps in memory.
	RunCacheSize int           `koanf:"run_cache_size" validate:"gte=1,lte=100000"`
	RunCacheTTL  time.Duration `koanf:"run_cache_ttl" validate:"gte=0"`
}

// defaultConfig returns the built-in defaults, the lowest layer.
func defaultConfig() *Config {
	return &Config{
		Mining: MiningConfig{
			MinSupport: 2,
			MinGap:     0,
			MaxGap:     15,
			MaxSpan:    60,
			Workers:    1,
			Refine:     true,
		},
		Input: InputConfig{
			Format:         "auto",
			CustomerColumn: "customer_id",
			TimeColumn:     "",
			ItemColumn:     "item",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Store: StoreConfig{
			Enabled:    true,
			Path:       "seqmine-data",
			SyncWrites: true,
			GCInterval: 10 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Address:         "127.0.0.1:8089",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    5 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
			MineRateLimit:   10,
			MaxBodyBytes:    32 << 20,
			RunCacheSize:    64,
			RunCacheTTL:     10 * time.Minute,
		},
	}
}
