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

import "strings"

// Rationalize updates the config fields based on the values of other
// fields, the way the teacher's mount-time config does for GCS-specific
// fixups.
func Rationalize(c *Config) error {
	if c.Debug.LogMutex || c.Debug.ExitOnInvariantViolation {
		c.Logging.Severity = LogSeverity(TRACE)
	}

	root, err := resolvePath(string(c.Root))
	if err != nil {
		return err
	}
	c.Root = ResolvedPath(root)

	if c.Logging.FilePath != "" {
		logFile, err := resolvePath(string(c.Logging.FilePath))
		if err != nil {
			return err
		}
		c.Logging.FilePath = ResolvedPath(logFile)
	}

	c.Logging.Format = strings.ToLower(c.Logging.Format)

	if c.MkDirMode == 0 {
		c.MkDirMode = DefaultMkDirMode
	}
	if c.Pool.WriterIdleExpiryMs == 0 {
		c.Pool.WriterIdleExpiryMs = DefaultWriterIdleExpiryMs
	}
	if c.Pool.ReaderIdleExpiryMs == 0 {
		c.Pool.ReaderIdleExpiryMs = DefaultReaderIdleExpiryMs
	}
	if c.Maintenance.IdleCheckIntervalMs == 0 {
		c.Maintenance.IdleCheckIntervalMs = DefaultIdleCheckIntervalMs
	}

	return nil
}
