// Copyright 2023 Google Inc. All Rights Reserved.
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

package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// timeLayout renders to a fixed 26-character string, matched by ops
// tooling that greps the text log format.
const timeLayout = "2006/01/02 15:04:05.000000"

// severityHandler is a minimal slog.Handler emitting either a
// `time="..." severity=LEVEL message="..."` line (text) or a
// `{"timestamp":{...},"severity":"LEVEL","message":"..."}` line (json).
// It ignores attrs and groups; the engine logs plain messages only.
type severityHandler struct {
	mu           *sync.Mutex
	out          io.Writer
	programLevel *slog.LevelVar
	jsonFormat   bool
	prefix       string
}

func newSeverityHandler(out io.Writer, programLevel *slog.LevelVar, jsonFormat bool, prefix string) *severityHandler {
	return &severityHandler{
		mu:           &sync.Mutex{},
		out:          out,
		programLevel: programLevel,
		jsonFormat:   jsonFormat,
		prefix:       prefix,
	}
}

func (h *severityHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.programLevel.Level()
}

func (h *severityHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	severity := levelToSeverity(r.Level)
	message := h.prefix + r.Message

	var err error
	if h.jsonFormat {
		_, err = fmt.Fprintf(h.out, "{\"timestamp\":{\"seconds\":%d,\"nanos\":%d},\"severity\":%q,\"message\":%q}\n",
			r.Time.Unix(), r.Time.Nanosecond(), severity, message)
	} else {
		_, err = fmt.Fprintf(h.out, "time=%q severity=%s message=%q\n", r.Time.Format(timeLayout), severity, message)
	}
	return err
}

func (h *severityHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *severityHandler) WithGroup(_ string) slog.Handler { return h }
