// Copyright 2026 Google LLC
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

// Package errkind holds the engine coordinator's error kinds as a leaf
// package with no dependency on internal/engine itself, so that
// internal/upgrade (invoked from the engine constructor, before an *Engine
// exists) and internal/engine can both produce and match them without an
// import cycle. internal/engine/errors.go re-exports these under the
// engine package's own name for callers.
package errkind

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrEntryUnavailable means a pool operation could not proceed because the
// named entry is busy or locked.
var ErrEntryUnavailable = errors.New("engine: entry unavailable")

// ErrEntryLocked means a get found the entry administratively locked.
var ErrEntryLocked = errors.New("engine: entry locked")

// ErrReaderOutOfDate means a versioned reader request found a different
// metadata version than requested.
var ErrReaderOutOfDate = errors.New("engine: reader out of date")

// ErrSecurityViolation means write permission was denied by the security
// context.
var ErrSecurityViolation = errors.New("engine: security violation")

// CairoException is a filesystem or persistent-state error. It carries the
// OS errno (when known) and the path it concerns, and wraps the
// underlying error for %w formatting.
type CairoException struct {
	Errno syscall.Errno
	Path  string
	Err   error
}

func NewCairoException(path string, err error) CairoException {
	var errno syscall.Errno
	errors.As(err, &errno)
	return CairoException{Errno: errno, Path: path, Err: err}
}

func (e CairoException) Error() string {
	if e.Errno != 0 {
		return fmt.Sprintf("engine: %s: %s (errno %d)", e.Path, e.Err, e.Errno)
	}
	return fmt.Sprintf("engine: %s: %s", e.Path, e.Err)
}

func (e CairoException) Unwrap() error {
	return e.Err
}
