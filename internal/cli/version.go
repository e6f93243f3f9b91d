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
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const (
	FlagFormat          = "format"
	FlagFormatShortHand = "f"
)

// BuildVersion is set at link time.
var BuildVersion = "n/a"

type versionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
}

// NewVersion returns the version command.
func NewVersion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of rcx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString(FlagFormat)
			if err != nil {
				return err
			}
			info := versionInfo{Version: BuildVersion}
			if bi, ok := debug.ReadBuildInfo(); ok {
				info.GoVersion = bi.GoVersion
				if BuildVersion == "n/a" && bi.Main.Version != "" {
					info.Version = bi.Main.Version
				}
			}
			switch format {
			case "json":
				return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
			case "text":
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "rcx %s (%s)\n", info.Version, info.GoVersion)
				return err
			default:
				return fmt.Errorf("invalid format: %s", format)
			}
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}
	cmd.Flags().StringP(FlagFormat, FlagFormatShortHand, "text", "output format (text, json)")
	return cmd
}
