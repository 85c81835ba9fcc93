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

// Package fsfacade is the filesystem boundary the engine coordinator talks
// through: directory creation, renaming, removal, and iteration. It exists
// so the engine never calls the os package directly, matching the spec's
// "filesFacade" external collaborator. Query execution, column storage
// layout, and schema bytes are out of scope; this package only ever touches
// directory entries and the two fixed-offset words of a _meta file.
package fsfacade

import (
	"os"
)

// DirEntry describes one entry returned by Iterate, trimmed to what the
// upgrade procedure and status checks need.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FilesFacade is the filesystem boundary used by the engine coordinator and
// the upgrade procedure. The default implementation, OSFilesFacade, is a
// thin wrapper over the os package; tests may substitute a fake.
type FilesFacade interface {
	// MkdirAll creates path and any missing parents with the given mode.
	MkdirAll(path string, mode os.FileMode) error

	// RemoveAll recursively removes path. Removing a path that does not
	// exist is not an error.
	RemoveAll(path string) error

	// Rename moves oldPath to newPath. Callers that must reject an existing
	// destination check Exists(newPath) first; Rename itself matches
	// os.Rename and silently replaces an existing regular file.
	Rename(oldPath, newPath string) error

	// Exists reports whether path exists, and if so, whether it is a
	// directory.
	Exists(path string) (exists bool, isDir bool, err error)

	// Iterate lists the immediate children of dir, excluding "." and "..".
	Iterate(dir string) ([]DirEntry, error)

	// OpenReadWrite opens path for reading and writing, creating it with
	// mode if it does not exist.
	OpenReadWrite(path string, mode os.FileMode) (*os.File, error)

	// OpenReadOnly opens path for reading only.
	OpenReadOnly(path string) (*os.File, error)
}

// OSFilesFacade is the production FilesFacade, backed directly by the os
// package.
type OSFilesFacade struct{}

var _ FilesFacade = OSFilesFacade{}

func (OSFilesFacade) MkdirAll(path string, mode os.FileMode) error {
	return os.MkdirAll(path, mode)
}

func (OSFilesFacade) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (OSFilesFacade) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (OSFilesFacade) Exists(path string) (bool, bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return true, info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, false, nil
	}
	return false, false, err
}

func (OSFilesFacade) Iterate(dir string) ([]DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	result := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if name == "." || name == ".." {
			continue
		}
		result = append(result, DirEntry{Name: name, IsDir: e.IsDir()})
	}
	return result, nil
}

func (OSFilesFacade) OpenReadWrite(path string, mode os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE, mode)
}

func (OSFilesFacade) OpenReadOnly(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDONLY, 0)
}
