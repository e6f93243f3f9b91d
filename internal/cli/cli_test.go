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

package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"dirpx.dev/rcx/internal/cli"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clients.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.New()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

type printed struct {
	Clients []struct {
		Identity             string   `json:"identity"`
		ContextID            string   `json:"contextId"`
		BeanQualifiers       []string `json:"beanQualifiers"`
		Endpoint             string   `json:"endpoint"`
		FallbackType         string   `json:"fallbackType"`
		ConfigurationClasses []string `json:"configurationClasses"`
		Primary              bool     `json:"primary"`
	} `json:"clients"`
}

func TestResolve_YAML(t *testing.T) {
	path := writeFile(t, `
clients:
  - name: catalog
    path: /v1
  - name: orders
    url: ${orders.host}
    path: api
    fallback: example.com/orders.Fallback
`)
	out, _, err := run(t, "resolve", "-f", path, "--set", "orders.host=orders:8080",
		"--default-configuration", "example.com/shared.Defaults")
	require.NoError(t, err)

	var got printed
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got.Clients, 2)

	c := got.Clients[0]
	assert.Equal(t, "catalog", c.Identity)
	assert.Equal(t, []string{"catalogFeignClient"}, c.BeanQualifiers)
	assert.Equal(t, "/v1", c.Endpoint)
	assert.True(t, c.Primary)
	assert.Equal(t, []string{"example.com/shared.Defaults"}, c.ConfigurationClasses)

	o := got.Clients[1]
	assert.Equal(t, "http://orders:8080/api", o.Endpoint)
	assert.Equal(t, "example.com/orders.Fallback", o.FallbackType)
}

func TestResolve_JSONAndEnv(t *testing.T) {
	t.Setenv("RCX_CLI_GATEWAY", "https://gw.example.com")
	path := writeFile(t, "clients:\n  - name: catalog\n    url: ${GATEWAY}\n    path: /catalog/\n")

	out, _, err := run(t, "resolve", "-f", path, "-o", "json", "--expand-env", "--env-prefix", "RCX_CLI_")
	require.NoError(t, err)
	assert.Contains(t, out, `"endpoint": "https://gw.example.com/catalog/"`)
}

func TestResolve_ReportsEveryFailure(t *testing.T) {
	path := writeFile(t, `
clients:
  - value: orders
    name: orders-ctx
  - name: catalog
    url: "http://"
    fallbackFactory: "bad name"
  - name: fine
`)
	out, errOut, err := run(t, "resolve", "-f", path)
	require.ErrorIs(t, err, cli.ErrResolutionFailed)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "client #0 (orders-ctx)")
	assert.Contains(t, errOut, "conflicting client identity")
	assert.Contains(t, errOut, "client #1 (catalog)")
	assert.Contains(t, errOut, "malformed url")
	assert.Contains(t, errOut, "invalid fallback declaration")
	assert.NotContains(t, errOut, "client #2")
}

func TestResolve_ConflictingContextID(t *testing.T) {
	path := writeFile(t, `
clients:
  - name: orders
    contextId: shared
  - name: billing
    contextId: shared
`)
	_, errOut, err := run(t, "resolve", "-f", path)
	require.ErrorIs(t, err, cli.ErrResolutionFailed)
	assert.Contains(t, errOut, "client #1 (billing)")
	assert.Contains(t, errOut, "conflicting client registration")
}

func TestResolve_StrictFlags(t *testing.T) {
	path := writeFile(t, "clients:\n  - name: orders_service\n    url: ${missing}\n")

	_, _, err := run(t, "resolve", "-f", path, "--strict-placeholders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unresolvable placeholder")

	_, errOut, err := run(t, "resolve", "-f", path, "--strict-service-id")
	require.ErrorIs(t, err, cli.ErrResolutionFailed)
	assert.Contains(t, errOut, "not a legal hostname")
}

func TestResolve_MetricsFile(t *testing.T) {
	path := writeFile(t, "clients:\n  - name: catalog\n  - value: a\n    name: b\n")
	metricsPath := filepath.Join(t.TempDir(), "rcx.prom")

	_, _, err := run(t, "resolve", "-f", path, "--metrics-file", metricsPath)
	require.ErrorIs(t, err, cli.ErrResolutionFailed)

	raw, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `rcx_resolver_resolutions_total{outcome="success"} 1`)
	assert.Contains(t, string(raw), `rcx_resolver_resolutions_total{outcome="conflicting_identity"} 1`)
}

func TestResolve_InvalidDocument(t *testing.T) {
	path := writeFile(t, "clients:\n  - name: a\n    retries: 3\n")
	_, _, err := run(t, "resolve", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid declaration document")
}

func TestResolve_BadFlags(t *testing.T) {
	path := writeFile(t, "clients: []\n")

	_, _, err := run(t, "resolve")
	assert.Error(t, err, "missing --file")

	_, _, err = run(t, "resolve", "-f", path, "-o", "xml")
	assert.ErrorContains(t, err, "invalid output format")

	_, _, err = run(t, "--loglevel", "loud", "resolve", "-f", path)
	assert.ErrorContains(t, err, "invalid log level")
}

func TestResolve_DebugLogging(t *testing.T) {
	path := writeFile(t, "clients:\n  - name: catalog\n")
	_, errOut, err := run(t, "--loglevel", "debug", "resolve", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "resolved client descriptor")
	assert.Contains(t, errOut, "identity=catalog")
}

func TestSchema(t *testing.T) {
	out, _, err := run(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"clients"`)
	assert.Contains(t, out, `"fallbackFactory"`)

	out, _, err = run(t, "schema", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "additionalProperties: false")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rcx ")

	out, _, err = run(t, "version", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`)
}
