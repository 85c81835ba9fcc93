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

import (
	"path/filepath"

	"github.com/opencolumndb/tableengine/internal/tablemeta"
)

// constructWriter is the writer pool's ConstructFunc: it opens name's
// existing _meta file and reads the table id the upgrade procedure (or
// create_table) assigned it.
func (e *Engine) constructWriter(name string) (*Writer, error) {
	metaPath := filepath.Join(e.tableDir(name), tablemeta.FileName)

	meta, err := tablemeta.Read(metaPath)
	if err != nil {
		return nil, NewCairoException(metaPath, err)
	}

	return &Writer{name: name, tableID: meta.ID, metaPath: metaPath}, nil
}

// constructReader is the reader pool's ConstructFunc.
func (e *Engine) constructReader(name string) (*Reader, error) {
	metaPath := filepath.Join(e.tableDir(name), tablemeta.FileName)

	meta, err := tablemeta.Read(metaPath)
	if err != nil {
		return nil, NewCairoException(metaPath, err)
	}

	return &Reader{name: name, tableID: meta.ID, version: meta.Version, metaPath: metaPath}, nil
}
