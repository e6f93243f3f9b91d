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

package cli

import (
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"dirpx.dev/rcx/declaration"
)

// NewSchema returns the command printing the declaration document schema.
func NewSchema() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of declaration documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := declaration.Schema()
			if err != nil {
				return err
			}
			output, err := cmd.Flags().GetString(FlagOutput)
			if err != nil {
				return err
			}
			if output == "yaml" {
				if raw, err = yaml.JSONToYAML(raw); err != nil {
					return err
				}
			} else {
				raw = append(raw, '\n')
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}
	cmd.Flags().StringP(FlagOutput, FlagOutputShortHand, "json", "output format (json, yaml)")
	return cmd
}
