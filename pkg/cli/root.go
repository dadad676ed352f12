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
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/stefanushinardi/azure-functions-ux/pkg/catalog"
	"github.com/stefanushinardi/azure-functions-ux/pkg/defaults"
	"github.com/stefanushinardi/azure-functions-ux/pkg/logging"
	"github.com/stefanushinardi/azure-functions-ux/pkg/serializer"
)

const (
	name           = "stacks"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Flags hold parse state, so every command gets its own instances.

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Output destination (default: stdout).
	Supports: file paths or ConfigMap URIs (cm://namespace/name).`,
	}
}

func formatFlag(def serializer.Format) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(def),
		Usage:   fmt.Sprintf("Output format (supported: %v)", serializer.SupportedFormats()),
	}
}

// Execute runs the CLI with the process arguments and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "App Service and Functions runtime stacks catalog",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `Query, export and validate the runtime stacks catalog served by stacksd.

The catalog source defaults to the embedded data. It can also be a directory
of generation files (2020-05-01.yaml, 2020-06-01.yaml) or an exported
StackCatalog document given as a file path, HTTP(S) URL or cm://namespace/name.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Usage:   "Catalog source (default: embedded catalog)",
				Sources: cli.EnvVars("STACKS_CATALOG"),
			},
			&cli.BoolFlag{
				Name:    "catalog-insecure-tls",
				Usage:   "Skip TLS verification when downloading an HTTPS catalog source",
				Sources: cli.EnvVars("STACKS_CATALOG_INSECURE_TLS"),
			},
			&cli.DurationFlag{
				Name:  "catalog-timeout",
				Value: defaults.HTTPClientTimeout,
				Usage: "Total timeout for downloading an HTTP(S) catalog source",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			queryCmd(),
			exportCmd(),
			validateCmd(),
		},
	}
}

// parseOutputFormat returns the --format value when it names a known format.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %v)", f, serializer.SupportedFormats())
	}
	return f, nil
}

// loadStore opens the catalog named by --catalog.
func loadStore(ctx context.Context, cmd *cli.Command) (*catalog.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.CLILoadTimeout)
	defer cancel()

	source := cmd.String("catalog")
	slog.Debug("loading catalog", "source", source)

	store, err := catalog.Open(ctx, source, catalogReaderOptions(cmd)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return store, nil
}

// catalogReaderOptions configures downloads of http(s) catalog sources.
func catalogReaderOptions(cmd *cli.Command) []serializer.HttpReaderOption {
	return []serializer.HttpReaderOption{
		serializer.WithUserAgent(name + "/" + version),
		serializer.WithTotalTimeout(cmd.Duration("catalog-timeout")),
		serializer.WithInsecureSkipVerify(cmd.Bool("catalog-insecure-tls")),
	}
}

// writeOutput serializes data to --output in the given format.
func writeOutput(ctx context.Context, cmd *cli.Command, format serializer.Format, data any) error {
	dest := cmd.String("output")

	var ser serializer.Serializer
	if dest == "" {
		ser = serializer.NewWriter(format, cmd.Root().Writer)
	} else {
		ser = serializer.NewFileWriterOrStdout(format, dest)
	}
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, data)
}
