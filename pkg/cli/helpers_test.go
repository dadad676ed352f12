// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/stefanushinardi/azure-functions-ux/pkg/defaults"
	"github.com/stefanushinardi/azure-functions-ux/pkg/serializer"
)

// runAction runs a bare command holding flags and hands it to action.
func runAction(t *testing.T, flags []cli.Flag, args []string, action cli.ActionFunc) {
	t.Helper()
	cmd := &cli.Command{Name: "test", Flags: flags, Action: action}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestParseOutputFormat(t *testing.T) {
	tests := map[string]serializer.Format{
		"json":  serializer.FormatJSON,
		"yaml":  serializer.FormatYAML,
		"table": serializer.FormatTable,
		"tree":  serializer.FormatTree,
		"xml":   "",
		"csv":   "",
		"":      "",
	}

	for in, want := range tests {
		t.Run("format="+in, func(t *testing.T) {
			runAction(t, []cli.Flag{formatFlag(serializer.FormatJSON)}, []string{"--format", in},
				func(_ context.Context, cmd *cli.Command) error {
					got, err := parseOutputFormat(cmd)
					if want == "" {
						assert.ErrorContains(t, err, "unknown output format")
						return nil
					}
					assert.NoError(t, err)
					assert.Equal(t, want, got)
					return nil
				})
		})
	}
}

func TestCatalogReaderOptions(t *testing.T) {
	flags := func() []cli.Flag {
		return []cli.Flag{
			&cli.BoolFlag{Name: "catalog-insecure-tls"},
			&cli.DurationFlag{Name: "catalog-timeout", Value: defaults.HTTPClientTimeout},
		}
	}

	runAction(t, flags(), nil, func(_ context.Context, cmd *cli.Command) error {
		r := serializer.NewHttpReader(catalogReaderOptions(cmd)...)
		assert.Equal(t, name+"/"+version, r.UserAgent)
		assert.Equal(t, defaults.HTTPClientTimeout, r.TotalTimeout)
		assert.False(t, r.InsecureSkipVerify)
		return nil
	})

	runAction(t, flags(), []string{"--catalog-insecure-tls", "--catalog-timeout", "3s"},
		func(_ context.Context, cmd *cli.Command) error {
			r := serializer.NewHttpReader(catalogReaderOptions(cmd)...)
			assert.Equal(t, 3*time.Second, r.TotalTimeout)
			assert.Equal(t, 3*time.Second, r.Client.Timeout)
			assert.True(t, r.InsecureSkipVerify)
			return nil
		})
}

func TestWriteOutputDestination(t *testing.T) {
	data := map[string]string{"stack": "python"}

	var buf bytes.Buffer
	runAction(t, []cli.Flag{outputFlag()}, nil, func(ctx context.Context, cmd *cli.Command) error {
		cmd.Root().Writer = &buf
		return writeOutput(ctx, cmd, serializer.FormatYAML, data)
	})
	assert.Equal(t, "stack: python\n", buf.String())

	path := filepath.Join(t.TempDir(), "python.json")
	runAction(t, []cli.Flag{outputFlag()}, []string{"--output", path}, func(ctx context.Context, cmd *cli.Command) error {
		return writeOutput(ctx, cmd, serializer.FormatJSON, data)
	})
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"stack":"python"}`, string(written))
}
