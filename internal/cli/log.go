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
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

const (
	FlagLogLevel  = "loglevel"
	FlagLogFormat = "logformat"
)

// RegisterLoggingFlags adds the logging flags shared by every command.
func RegisterLoggingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(FlagLogLevel, "warn", "set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String(FlagLogFormat, "text", "set the log format (text, json)")
}

// GetBaseLogger builds the slog logger described by the logging flags.
// Logs go to stderr so that command output stays machine readable.
func GetBaseLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelName, err := cmd.Flags().GetString(FlagLogLevel)
	if err != nil {
		return nil, err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(levelName))); err != nil {
		return nil, fmt.Errorf("invalid log level: %s", levelName)
	}

	format, err := cmd.Flags().GetString(FlagLogFormat)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case "text":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	return slog.New(handler), nil
}

// GetLogger returns the base logger as a logr.Logger for the resolution packages.
// Their debug output (V(1)) is visible at the debug level.
func GetLogger(cmd *cobra.Command) (logr.Logger, error) {
	base, err := GetBaseLogger(cmd)
	if err != nil {
		return logr.Discard(), err
	}
	return logr.FromSlogHandler(base.Handler()), nil
}
