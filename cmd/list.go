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

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every table under the configured root and its status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, shutdown, err := buildEngine(ctx, &Config)
		if err != nil {
			return err
		}
		defer shutdown(ctx)
		defer e.Close()

		tables, err := e.ListTables(ctx, sec, string(Config.Root))
		if err != nil {
			return err
		}

		for _, t := range tables {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", t.Name, t.Status)
		}
		return nil
	},
}
