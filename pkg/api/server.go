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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/stefanushinardi/azure-functions-ux/pkg/catalog"
	"github.com/stefanushinardi/azure-functions-ux/pkg/logging"
	"github.com/stefanushinardi/azure-functions-ux/pkg/serializer"
	"github.com/stefanushinardi/azure-functions-ux/pkg/server"
)

const (
	name           = "stacksd"
	versionDefault = "dev"

	// EnvCatalog selects the catalog source: empty for the embedded data, a
	// directory of generation files, or an exported document path or URI.
	EnvCatalog = "STACKS_CATALOG"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/stefanushinardi/azure-functions-ux/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve loads the stacks catalog and serves it until SIGINT or SIGTERM.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	store, err := catalog.Open(ctx, os.Getenv(EnvCatalog), serializer.WithUserAgent(name+"/"+version))
	if err != nil {
		slog.Error("failed to load stacks catalog", "error", err)
		return fmt.Errorf("failed to load stacks catalog: %w", err)
	}

	slog.Info("catalog loaded",
		"source", store.Catalog().Metadata[catalog.MetadataSource],
		"versions", store.Versions(),
	)

	s := server.New(serverOptions(store)...)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

func serverOptions(store *catalog.Store) []server.Option {
	return []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithAPIVersions(store.Versions()...),
		server.WithHandler(routes(store)),
	}
}

func routes(store *catalog.Store) map[string]http.HandlerFunc {
	return store.Routes()
}
