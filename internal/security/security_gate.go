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

// Package security defines the SecurityGate boundary the engine consults
// before any write operation. Authentication and authorization are named
// out of scope by the spec; this package only carries the interface and a
// permissive default so the engine has something to call.
package security

// Context is the caller identity the engine threads through create_table,
// get_writer, lock, remove, and rename. It is opaque to this package; a
// real implementation would attach principal/session information.
type Context struct {
	Principal string
}

// Gate decides whether a caller may perform a write operation on a table.
type Gate interface {
	// CheckWritePermitted returns an error if sec is not permitted to
	// create, write to, lock, remove, or rename the named table.
	CheckWritePermitted(sec Context, tableName string) error
}

// AllowAll is the default Gate: every write is permitted. Named out of
// scope by the spec ("the real implementations are named out of scope");
// this exists only so the engine has a concrete collaborator to call.
type AllowAll struct{}

var _ Gate = AllowAll{}

func (AllowAll) CheckWritePermitted(Context, string) error {
	return nil
}
