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

package engine

import "github.com/opencolumndb/tableengine/internal/engine/errkind"

// CairoException is a filesystem or persistent-state error: it carries the
// OS errno (when known) and the path it concerns, and wraps the
// underlying error for errors.Is/errors.As and %w formatting.
type CairoException = errkind.CairoException

// NewCairoException wraps err as a CairoException naming path, extracting
// a syscall.Errno from err via errors.As when one is present.
func NewCairoException(path string, err error) CairoException {
	return errkind.NewCairoException(path, err)
}

var (
	// ErrEntryUnavailable means a pool operation could not proceed because
	// the named entry is busy or locked.
	ErrEntryUnavailable = errkind.ErrEntryUnavailable

	// ErrEntryLocked means a get found the entry administratively locked.
	ErrEntryLocked = errkind.ErrEntryLocked

	// ErrReaderOutOfDate means a versioned reader request found a
	// different metadata version than requested.
	ErrReaderOutOfDate = errkind.ErrReaderOutOfDate

	// ErrSecurityViolation means write permission was denied by the
	// security context.
	ErrSecurityViolation = errkind.ErrSecurityViolation
)
