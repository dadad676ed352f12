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
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/stefanushinardi/azure-functions-ux/pkg/defaults"
	"github.com/stefanushinardi/azure-functions-ux/pkg/oci"
	"github.com/stefanushinardi/azure-functions-ux/pkg/serializer"
	"github.com/stefanushinardi/azure-functions-ux/pkg/stacks"
)

const (
	// exportFileName is the document written into the export directory.
	exportFileName = "catalog.yaml"
	defaultOCITag  = "latest"
)

type exportCmdOptions struct {
	target      *oci.Reference
	versions    []string
	plainHTTP   bool
	insecureTLS bool
}

func parseExportCmdOptions(cmd *cli.Command) (*exportCmdOptions, error) {
	ref, err := oci.ParseOutputTarget(cmd.String("output"))
	if err != nil {
		return nil, fmt.Errorf("invalid --output: %w", err)
	}

	opts := &exportCmdOptions{
		target:      ref,
		versions:    cmd.StringSlice(stacks.QueryParamAPIVersion),
		plainHTTP:   cmd.Bool("plain-http"),
		insecureTLS: cmd.Bool("insecure-tls"),
	}

	if !ref.IsOCI && (opts.plainHTTP || opts.insecureTLS) {
		return nil, fmt.Errorf("--plain-http and --insecure-tls require an oci:// output")
	}
	if ref.IsOCI && ref.Tag == "" {
		opts.target = ref.WithTag(defaultTag())
	}
	return opts, nil
}

func defaultTag() string {
	if version == versionDefault {
		return defaultOCITag
	}
	return version
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:                  "export",
		EnableShellCompletion: true,
		Usage:                 "Export the catalog as a StackCatalog document",
		Description: `Writes the loaded catalog to <output>/catalog.yaml as a StackCatalog
document. The document can be served again with stacksd by pointing
STACKS_CATALOG at it.

When the output is an oci://registry/repository[:tag] reference the document
is packaged as an OCI artifact and pushed with ORAS. The tag defaults to the
CLI version, or "latest" for development builds.

# Examples

Export to a local directory:
  stacks export --output ./catalog

Export only the 2020-06-01 generation:
  stacks export --output ./catalog --api-version 2020-06-01

Push to a local registry:
  stacks export --output oci://localhost:5000/azure/stacks:v1 --plain-http`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Required: true,
				Usage:    "Export directory or oci://registry/repository[:tag] reference",
			},
			&cli.StringSliceFlag{
				Name:  stacks.QueryParamAPIVersion,
				Usage: "Generations to export (default: all loaded)",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the OCI registry",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the OCI registry (for local development)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseExportCmdOptions(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLIExportTimeout)
			defer cancel()

			store, err := loadStore(ctx, cmd)
			if err != nil {
				return err
			}

			doc, err := store.Document(opts.versions...)
			if err != nil {
				return fmt.Errorf("failed to build catalog document: %w", err)
			}

			if !opts.target.IsOCI {
				path, err := writeDocument(ctx, opts.target.LocalPath, doc)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.Root().Writer, "catalog exported to %s\n", path)
				return nil
			}

			workDir, err := os.MkdirTemp("", "stacks-export-*")
			if err != nil {
				return fmt.Errorf("failed to create work directory: %w", err)
			}
			defer func() {
				if err := os.RemoveAll(workDir); err != nil {
					slog.Warn("failed to remove work directory", "path", workDir, "error", err)
				}
			}()

			sourceDir := filepath.Join(workDir, "catalog")
			if _, err := writeDocument(ctx, sourceDir, doc); err != nil {
				return err
			}

			res, err := oci.PackageAndPush(ctx, oci.PublishOptions{
				SourceDir:   sourceDir,
				OutputDir:   workDir,
				Reference:   opts.target,
				Version:     version,
				PlainHTTP:   opts.plainHTTP,
				InsecureTLS: opts.insecureTLS,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "catalog pushed to %s (%s)\n", res.Reference, res.Digest)
			return nil
		},
	}
}

// writeDocument writes doc as YAML to dir/catalog.yaml and returns the path.
func writeDocument(ctx context.Context, dir string, doc *stacks.Catalog) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %q: %w", dir, err)
	}

	path := filepath.Join(dir, exportFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close export file", "path", path, "error", err)
		}
	}()

	if err := serializer.NewWriter(serializer.FormatYAML, f).Serialize(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", path, err)
	}

	slog.Info("catalog document written", "path", path, "versions", catalogVersions(doc))
	return path, nil
}

func catalogVersions(doc *stacks.Catalog) []string {
	var out []string
	if doc.V20200501 != nil {
		out = append(out, stacks.APIVersion20200501)
	}
	if doc.V20200601 != nil {
		out = append(out, stacks.APIVersion20200601)
	}
	return out
}
