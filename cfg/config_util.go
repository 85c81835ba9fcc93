// Copyright 2024 Google LLC
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
	"os"
	"path/filepath"
	"strings"
)

// resolvePath expands a leading "~" to the user's home directory and makes
// the result absolute relative to the working directory.
func resolvePath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Abs(p)
}

// IsTelemetryEnabled reports whether the engine's telemetry ring buffer is
// enabled, i.e. whether its queue capacity is positive. Metric and trace
// export are gated separately by MetricsAddr and TracingMode.
func IsTelemetryEnabled(c *Config) bool {
	return c.Telemetry.QueueCapacity > 0
}
