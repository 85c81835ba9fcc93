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
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeInto(t *testing.T, input map[string]interface{}, out *Config) {
	t.Helper()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: DecodeHook(),
		Result:     out,
	})
	require.NoError(t, err)
	require.NoError(t, decoder.Decode(input))
}

func TestDecodeHook_ParsesOctalMkDirMode(t *testing.T) {
	var c Config
	decodeInto(t, map[string]interface{}{"mkdir-mode": "755"}, &c)
	assert.Equal(t, Octal(0755), c.MkDirMode)
}

func TestDecodeHook_NormalizesLogSeverityCase(t *testing.T) {
	var c Config
	decodeInto(t, map[string]interface{}{"logging": map[string]interface{}{"severity": "trace"}}, &c)
	assert.Equal(t, LogSeverity("TRACE"), c.Logging.Severity)
}

func TestDecodeHook_RejectsUnknownLogSeverity(t *testing.T) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: DecodeHook(),
		Result:     &Config{},
	})
	require.NoError(t, err)

	err = decoder.Decode(map[string]interface{}{"logging": map[string]interface{}{"severity": "LOUD"}})

	assert.Error(t, err)
}

func TestDecodeHook_ParsesDuration(t *testing.T) {
	type withDuration struct {
		D time.Duration
	}
	var out withDuration
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: DecodeHook(),
		Result:     &out,
	})
	require.NoError(t, err)
	require.NoError(t, decoder.Decode(map[string]interface{}{"D": "5s"}))
	assert.Equal(t, 5*time.Second, out.D)
}
