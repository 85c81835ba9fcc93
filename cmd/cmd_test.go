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

package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/opencolumndb/tableengine/internal/engine"
	"github.com/opencolumndb/tableengine/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes rootCmd with args and returns its combined stdout.
func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func seedTable(t *testing.T, root, name string) {
	t.Helper()
	e, err := engine.New(engine.Options{Root: root})
	require.NoError(t, err)
	defer e.Close()

	_, err = e.CreateTable(context.Background(), security.Context{Principal: "test"}, root, engine.TableStructure{Name: name})
	require.NoError(t, err)
}

func TestStatusCmd_ReportsDoesNotExist(t *testing.T) {
	root := t.TempDir()

	out := run(t, "--root", root, "status", "missing")
	assert.Contains(t, out, "missing: DOES_NOT_EXIST")
}

func TestStatusCmd_ReportsExists(t *testing.T) {
	root := t.TempDir()
	seedTable(t, root, "trades")

	out := run(t, "--root", root, "status", "trades")
	assert.Contains(t, out, "trades: EXISTS")
}

func TestListCmd_ListsEveryTable(t *testing.T) {
	root := t.TempDir()
	seedTable(t, root, "a")
	seedTable(t, root, "b")

	out := run(t, "--root", root, "list")
	assert.True(t, strings.Contains(out, "a: EXISTS") && strings.Contains(out, "b: EXISTS"))
}

func TestMigrateNullFlagCmd_ReportsAlreadyCurrent(t *testing.T) {
	root := t.TempDir()
	seedTable(t, root, "t")

	out := run(t, "--root", root, "migrate-null-flag", "t")
	assert.Contains(t, out, "t: already at current version")
}

func TestStatusCmd_RejectsWrongArgCount(t *testing.T) {
	root := t.TempDir()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--root", root, "status"})
	assert.Error(t, rootCmd.ExecuteContext(context.Background()))
}
