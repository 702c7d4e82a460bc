// config.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package config is the ambient CLI/file configuration surface for
// cmd/fsdtap. The core decoder and aggregators (packages fsd, aggregate,
// capture) take no configuration of their own - no CLI surface, no
// environment variables, no on-disk files - so everything here is
// scoped to the demonstration command.
package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the demonstration command's runtime configuration: which
// server to connect to (or trace file to replay), where to log, and
// whether to record a session trace for later replay.
type Config struct {
	LogLevel         string `yaml:"log_level"`
	ServerDirURL     string `yaml:"server_directory_url"`
	ConnectAddress   string `yaml:"connect_address"`
	ReplayFile       string `yaml:"replay_file"`
	ReplayRate       float64 `yaml:"replay_rate"`
	RecordTraceFile  string `yaml:"record_trace_file"`
	LogDir           string `yaml:"log_dir"`
}

// Default returns the built-in defaults, used when neither a config
// file nor a flag overrides a field.
func Default() Config {
	return Config{
		LogLevel:     "info",
		ServerDirURL: "http://data.vatsim.net/vatsim-servers.txt",
		ReplayRate:   1.0,
	}
}

// LoadFile merges YAML defaults from filename into cfg, leaving fields
// the file doesn't mention untouched. A missing file is not an error -
// the built-in defaults and flags are sufficient on their own.
func LoadFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: reading %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parsing %s: %w", filename, err)
	}
	return nil
}

// ParseFlags registers the command's flags against fs, pre-populated
// from cfg, and returns a function that must be called after
// fs.Parse() to write the parsed values back into cfg.
func ParseFlags(fs *flag.FlagSet, cfg *Config) func() {
	logLevel := fs.String("log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	serverDirURL := fs.String("server-directory", cfg.ServerDirURL, "URL of the VATSIM server directory")
	connectAddress := fs.String("connect", cfg.ConnectAddress, "host:port of an FSD server to tap directly")
	replayFile := fs.String("replay", cfg.ReplayFile, "path of a recorded session trace to replay instead of connecting live")
	replayRate := fs.Float64("replay-rate", cfg.ReplayRate, "replay speed multiplier (1.0 = real time)")
	recordTraceFile := fs.String("record", cfg.RecordTraceFile, "path to record a zstd-compressed session trace to")
	logDir := fs.String("log-dir", cfg.LogDir, "directory to write rotating log files to")

	return func() {
		cfg.LogLevel = *logLevel
		cfg.ServerDirURL = *serverDirURL
		cfg.ConnectAddress = *connectAddress
		cfg.ReplayFile = *replayFile
		cfg.ReplayRate = *replayRate
		cfg.RecordTraceFile = *recordTraceFile
		cfg.LogDir = *logDir
	}
}
