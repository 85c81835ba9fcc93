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
	"fmt"

	"github.com/spf13/cobra"
)

var migrateNullFlagCmd = &cobra.Command{
	Use:   "migrate-null-flag <table>",
	Short: "Bump a table's metadata version past the null-flag threshold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, shutdown, err := buildEngine(ctx, &Config)
		if err != nil {
			return err
		}
		defer shutdown(ctx)
		defer e.Close()

		name := args[0]
		migrated, err := e.MigrateNullFlag(ctx, sec, name)
		if err != nil {
			return err
		}

		if migrated {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: migrated\n", name)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: already at current version\n", name)
		}
		return nil
	},
}
