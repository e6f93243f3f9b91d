/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cli implements the rcx command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}

// New returns the root command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rcx [sub-command]",
		Short: "Resolve declarative HTTP client declarations",
		Long: `rcx turns client declarations (service name, context id, qualifiers,
url, path, fallbacks and configuration types) into validated client
descriptors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}
	RegisterLoggingFlags(cmd)
	cmd.AddCommand(NewResolve())
	cmd.AddCommand(NewSchema())
	cmd.AddCommand(NewVersion())
	return cmd
}
