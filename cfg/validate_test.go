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
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Root:        "/tmp/tables",
		MkDirMode:   DefaultMkDirMode,
		Pool:        GetDefaultPoolConfig(),
		Maintenance: GetDefaultMaintenanceConfig(),
		Telemetry:   GetDefaultTelemetryConfig(),
		Logging:     GetDefaultLoggingConfig(),
	}
}

func TestValidateConfig_AcceptsDefaults(t *testing.T) {
	err := ValidateConfig(validConfig())
	assert.NoError(t, err)
}

func TestValidateConfig_RequiresRoot(t *testing.T) {
	c := validConfig()
	c.Root = ""

	err := ValidateConfig(c)

	assert.EqualError(t, err, RootRequiredError)
}

func TestValidateConfig_RejectsNonPositiveIdleCheckInterval(t *testing.T) {
	c := validConfig()
	c.Maintenance.IdleCheckIntervalMs = 0

	err := ValidateConfig(c)

	assert.EqualError(t, err, IdleCheckIntervalInvalidError)
}

func TestValidateConfig_RejectsNegativeTelemetryQueueCapacity(t *testing.T) {
	c := validConfig()
	c.Telemetry.QueueCapacity = -1

	err := ValidateConfig(c)

	assert.EqualError(t, err, TelemetryQueueCapacityNegative)
}

func TestValidateConfig_RejectsBadLogRotateConfig(t *testing.T) {
	c := validConfig()
	c.Logging.LogRotate.MaxFileSizeMb = 0

	err := ValidateConfig(c)

	assert.Error(t, err)
}

func TestValidateConfig_RejectsUnknownLogFormat(t *testing.T) {
	c := validConfig()
	c.Logging.Format = "xml"

	err := ValidateConfig(c)

	assert.Error(t, err)
}
