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

// GetDefaultLoggingConfig returns the default configuration that is to be used
// during application startup - before the provided configuration has been
// parsed.
func GetDefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Severity: LogSeverity(INFO),
		Format:   "json",
		LogRotate: LogRotateLoggingConfig{
			BackupFileCount: DefaultLogRotateBackupCount,
			Compress:        true,
			MaxFileSizeMb:   DefaultLogRotateMaxSizeMb,
		},
	}
}

// GetDefaultPoolConfig returns the default idle-expiry settings for the
// writer and reader pools.
func GetDefaultPoolConfig() PoolConfig {
	return PoolConfig{
		WriterIdleExpiryMs: DefaultWriterIdleExpiryMs,
		ReaderIdleExpiryMs: DefaultReaderIdleExpiryMs,
	}
}

// GetDefaultMaintenanceConfig returns the default maintenance job gating
// interval.
func GetDefaultMaintenanceConfig() MaintenanceConfig {
	return MaintenanceConfig{
		IdleCheckIntervalMs: DefaultIdleCheckIntervalMs,
	}
}

// GetDefaultTelemetryConfig returns the default telemetry ring buffer
// capacity.
func GetDefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		QueueCapacity: DefaultTelemetryQueueCap,
	}
}
