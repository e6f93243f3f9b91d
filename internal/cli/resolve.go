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
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"dirpx.dev/rcx"
	"dirpx.dev/rcx/apis"
	"dirpx.dev/rcx/builder"
	"dirpx.dev/rcx/config"
	"dirpx.dev/rcx/declaration"
	"dirpx.dev/rcx/metrics"
	"dirpx.dev/rcx/placeholder"
	"dirpx.dev/rcx/registry"
)

const (
	FlagFile               = "file"
	FlagFileShortHand      = "f"
	FlagOutput             = "output"
	FlagOutputShortHand    = "o"
	FlagSet                = "set"
	FlagExpandEnv          = "expand-env"
	FlagEnvPrefix          = "env-prefix"
	FlagStrictPlaceholders = "strict-placeholders"
	FlagStrictServiceID    = "strict-service-id"
	FlagScheme             = "scheme"
	FlagQualifierSuffix    = "qualifier-suffix"
	FlagDefaultConfigs     = "default-configuration"
	FlagConcurrency        = "concurrency"
	FlagMetricsFile        = "metrics-file"
)

// ErrResolutionFailed is returned when at least one declaration did not resolve.
var ErrResolutionFailed = errors.New("client resolution failed")

// descriptorList is the printed document.
type descriptorList struct {
	Clients []apis.ClientDescriptor `json:"clients"`
}

// NewResolve returns the resolve command.
func NewResolve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve -f clients.yaml",
		Short: "Resolve client declarations into client descriptors",
		Long: `Resolve reads a declaration document, expands placeholders, resolves every
client and registers it by context id. All descriptors are printed when every
client resolves; otherwise each failing client is reported with all of its
problems and the command fails.`,
		Args: cobra.NoArgs,
		RunE: runResolve,

		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	cmd.Flags().StringP(FlagFile, FlagFileShortHand, "", "declaration document (YAML or JSON)")
	_ = cmd.MarkFlagRequired(FlagFile)
	cmd.Flags().StringP(FlagOutput, FlagOutputShortHand, "yaml", "output format (yaml, json)")
	cmd.Flags().StringToString(FlagSet, nil, "placeholder values (key=value)")
	cmd.Flags().Bool(FlagExpandEnv, false, "resolve placeholders from the environment after --set values")
	cmd.Flags().String(FlagEnvPrefix, "", "prefix added to placeholder keys looked up in the environment")
	cmd.Flags().Bool(FlagStrictPlaceholders, false, "fail on placeholders without a value")
	cmd.Flags().Bool(FlagStrictServiceID, config.DefaultStrictServiceID, "require service ids to be legal host names")
	cmd.Flags().String(FlagScheme, config.DefaultScheme, "protocol added to urls declared without one")
	cmd.Flags().String(FlagQualifierSuffix, config.DefaultQualifierSuffix, "suffix of the default qualifier")
	cmd.Flags().StringSlice(FlagDefaultConfigs, nil, "configuration type names added to every client")
	cmd.Flags().Int(FlagConcurrency, config.DefaultConcurrency, "number of clients resolved in parallel")
	cmd.Flags().String(FlagMetricsFile, "", "write resolution metrics in Prometheus text format to this file")
	return cmd
}

func runResolve(cmd *cobra.Command, _ []string) error {
	logger, err := GetLogger(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	file, _ := flags.GetString(FlagFile)
	output, _ := flags.GetString(FlagOutput)
	if output != "yaml" && output != "json" {
		return fmt.Errorf("invalid output format: %s", output)
	}

	doc, err := declaration.Load(file)
	if err != nil {
		return err
	}
	attrs, err := expand(cmd, doc.Attributes())
	if err != nil {
		return err
	}

	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}
	cfg.Logger = logger

	metricsFile, _ := flags.GetString(FlagMetricsFile)
	var ext builder.Extension
	promReg := prometheus.NewRegistry()
	if metricsFile != "" {
		ext.Metrics = metrics.MustRegister(promReg)
	}
	rcx.SetAll(&cfg, ext, registry.New(cfg), nil, builder.New())

	results, err := rcx.RegisterAll(cmd.Context(), attrs)
	if err != nil {
		return err
	}
	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, promReg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	list := descriptorList{Clients: make([]apis.ClientDescriptor, 0, len(results))}
	failed := 0
	for i, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "client #%d (%s): %v\n", i, label(doc.Clients[i]), r.Err)
			continue
		}
		list.Clients = append(list.Clients, r.Descriptor)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d clients", ErrResolutionFailed, failed, len(results))
	}
	logger.Info("resolved clients", "file", file, "count", len(list.Clients))
	return write(cmd, output, list)
}

func expand(cmd *cobra.Command, attrs []apis.RawAttributes) ([]apis.RawAttributes, error) {
	flags := cmd.Flags()
	values, _ := flags.GetStringToString(FlagSet)
	expandEnv, _ := flags.GetBool(FlagExpandEnv)
	prefix, _ := flags.GetString(FlagEnvPrefix)
	strict, _ := flags.GetBool(FlagStrictPlaceholders)

	src := placeholder.Chain{placeholder.MapSource(values)}
	if expandEnv {
		src = append(src, placeholder.EnvSource{Prefix: prefix})
	}
	var opts []placeholder.Option
	if strict {
		opts = append(opts, placeholder.Strict())
	}
	if logger, err := GetLogger(cmd); err == nil {
		opts = append(opts, placeholder.WithLogger(logger))
	}
	e := placeholder.New(src, opts...)

	out := make([]apis.RawAttributes, len(attrs))
	var errs []error
	for i, a := range attrs {
		x, err := e.ExpandAttributes(a)
		if err != nil {
			errs = append(errs, fmt.Errorf("client #%d: %w", i, err))
			continue
		}
		out[i] = x
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func configFromFlags(cmd *cobra.Command) (apis.Config, error) {
	flags := cmd.Flags()
	strictID, err := flags.GetBool(FlagStrictServiceID)
	if err != nil {
		return apis.Config{}, err
	}
	scheme, _ := flags.GetString(FlagScheme)
	suffix, _ := flags.GetString(FlagQualifierSuffix)
	defaults, _ := flags.GetStringSlice(FlagDefaultConfigs)
	concurrency, _ := flags.GetInt(FlagConcurrency)

	refs := make([]apis.TypeRef, 0, len(defaults))
	for _, d := range defaults {
		refs = append(refs, apis.TypeRef{Name: d})
	}
	return config.NewConfig(
		config.WithStrictServiceID(strictID),
		config.WithDefaultScheme(scheme),
		config.WithQualifierSuffix(suffix),
		config.WithDefaultConfigurations(refs...),
		config.WithConcurrency(concurrency),
	), nil
}

func label(c declaration.Client) string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Value != "":
		return c.Value
	}
	return "unnamed"
}

func write(cmd *cobra.Command, output string, list descriptorList) error {
	raw, err := json.MarshalIndent(list, "", "  ")
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
}
