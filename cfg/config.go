// Copyright 2024 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cfg

import (
	"strconv"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the root, fully-typed configuration for the table engine
// coordinator, bound from flags, environment variables, and an optional
// config file via BindFlags and decoded with DecodeHook.
type Config struct {
	Root ResolvedPath `yaml:"root"`

	MkDirMode Octal `yaml:"mkdir-mode"`

	Pool PoolConfig `yaml:"pool"`

	Maintenance MaintenanceConfig `yaml:"maintenance"`

	Telemetry TelemetryConfig `yaml:"telemetry"`

	Logging LoggingConfig `yaml:"logging"`

	Debug DebugConfig `yaml:"debug"`
}

// PoolConfig governs how long idle writer/reader pool entries are kept
// before releaseInactive evicts them.
type PoolConfig struct {
	WriterIdleExpiryMs int64 `yaml:"writer-idle-expiry-ms"`

	ReaderIdleExpiryMs int64 `yaml:"reader-idle-expiry-ms"`
}

// MaintenanceConfig governs the cooperative maintenance job's gating.
type MaintenanceConfig struct {
	IdleCheckIntervalMs int64 `yaml:"idle-check-interval-ms"`
}

// TelemetryConfig governs the engine's internal telemetry ring buffer and
// distributed tracing.
type TelemetryConfig struct {
	QueueCapacity int `yaml:"queue-capacity"`

	// TracingMode selects the span exporter: "" disables tracing (a noop
	// tracer is used), "stdout" writes spans to stdout for local debugging.
	TracingMode string `yaml:"tracing-mode"`

	// MetricsAddr, when non-empty, is the listen address for a Prometheus
	// scrape endpoint exposing the engine's OTel instruments. Empty disables
	// metrics export entirely (a noop handle is used).
	MetricsAddr string `yaml:"metrics-addr"`
}

// LoggingConfig governs the structured logger's severity, format, and
// rotation.
type LoggingConfig struct {
	Severity LogSeverity `yaml:"severity"`

	Format string `yaml:"format"`

	FilePath ResolvedPath `yaml:"file-path"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`
}

// LogRotateLoggingConfig mirrors the natefinch/lumberjack rotation knobs.
type LogRotateLoggingConfig struct {
	MaxFileSizeMb int `yaml:"max-file-size-mb"`

	BackupFileCount int `yaml:"backup-file-count"`

	Compress bool `yaml:"compress"`
}

type DebugConfig struct {
	ExitOnInvariantViolation bool `yaml:"exit-on-invariant-violation"`

	LogMutex bool `yaml:"log-mutex"`
}

func BindFlags(flagSet *pflag.FlagSet) error {
	var err error

	flagSet.StringP("root", "", "", "Root directory under which tables are stored.")

	err = viper.BindPFlag("root", flagSet.Lookup("root"))
	if err != nil {
		return err
	}

	flagSet.StringP("mkdir-mode", "", strconv.FormatInt(int64(DefaultMkDirMode), 8), "Permission bits used when the engine creates table directories, in octal.")

	err = viper.BindPFlag("mkdir-mode", flagSet.Lookup("mkdir-mode"))
	if err != nil {
		return err
	}

	flagSet.Int64P("writer-idle-expiry-ms", "", DefaultWriterIdleExpiryMs, "How long an idle writer pool entry is kept before releaseInactive evicts it.")

	err = viper.BindPFlag("pool.writer-idle-expiry-ms", flagSet.Lookup("writer-idle-expiry-ms"))
	if err != nil {
		return err
	}

	flagSet.Int64P("reader-idle-expiry-ms", "", DefaultReaderIdleExpiryMs, "How long an idle reader pool entry is kept before releaseInactive evicts it.")

	err = viper.BindPFlag("pool.reader-idle-expiry-ms", flagSet.Lookup("reader-idle-expiry-ms"))
	if err != nil {
		return err
	}

	flagSet.Int64P("idle-check-interval-ms", "", DefaultIdleCheckIntervalMs, "Minimum time between successive maintenance job sweeps.")

	err = viper.BindPFlag("maintenance.idle-check-interval-ms", flagSet.Lookup("idle-check-interval-ms"))
	if err != nil {
		return err
	}

	flagSet.IntP("telemetry-queue-capacity", "", DefaultTelemetryQueueCap, "Capacity of the internal telemetry ring buffer. Zero disables telemetry.")

	err = viper.BindPFlag("telemetry.queue-capacity", flagSet.Lookup("telemetry-queue-capacity"))
	if err != nil {
		return err
	}

	flagSet.StringP("tracing-mode", "", "", "Tracing span exporter: empty disables tracing, \"stdout\" writes to stdout.")

	err = viper.BindPFlag("telemetry.tracing-mode", flagSet.Lookup("tracing-mode"))
	if err != nil {
		return err
	}

	flagSet.StringP("metrics-addr", "", "", "Listen address for the Prometheus metrics scrape endpoint. Empty disables metrics export.")

	err = viper.BindPFlag("telemetry.metrics-addr", flagSet.Lookup("metrics-addr"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-severity", "", INFO, "Logging severity: TRACE, DEBUG, INFO, WARNING, ERROR, or OFF.")

	err = viper.BindPFlag("logging.severity", flagSet.Lookup("log-severity"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-format", "", "json", "Logging output format: text or json.")

	err = viper.BindPFlag("logging.format", flagSet.Lookup("log-format"))
	if err != nil {
		return err
	}

	flagSet.StringP("log-file", "", "", "Path to the log file. Empty writes to stderr.")

	err = viper.BindPFlag("logging.file-path", flagSet.Lookup("log-file"))
	if err != nil {
		return err
	}

	flagSet.BoolP("debug_invariants", "", false, "Exit when internal invariants are violated.")

	err = viper.BindPFlag("debug.exit-on-invariant-violation", flagSet.Lookup("debug_invariants"))
	if err != nil {
		return err
	}

	flagSet.BoolP("debug_mutex", "", false, "Print debug messages when a mutex is held too long.")

	err = viper.BindPFlag("debug.log-mutex", flagSet.Lookup("debug_mutex"))
	if err != nil {
		return err
	}

	return nil
}
