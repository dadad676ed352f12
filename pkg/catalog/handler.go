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

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stefanushinardi/azure-functions-ux/pkg/defaults"
	stackerrors "github.com/stefanushinardi/azure-functions-ux/pkg/errors"
	"github.com/stefanushinardi/azure-functions-ux/pkg/serializer"
	"github.com/stefanushinardi/azure-functions-ux/pkg/server"
)

var (
	// cacheTTL can be overridden for testing
	cacheTTL = defaults.StacksCacheTTL
)

// HandleStacks serves every catalog endpoint. The endpoint name is the last
// path segment, the method selects the operation and query parameters form
// the request. Responses are JSON arrays.
func (s *Store) HandleStacks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.StacksHandlerTimeout)
	defer cancel()

	name := strings.TrimPrefix(r.URL.Path, PathPrefix)
	ops := OperationsNamed(name)
	if len(ops) == 0 {
		server.WriteError(w, r, http.StatusNotFound, stackerrors.ErrCodeNotFound,
			"Unknown stacks endpoint", false, map[string]any{
				"endpoint": name,
			})
		return
	}

	op, ok := FindOperation(name, r.Method)
	if !ok {
		allowed := make([]string, 0, len(ops))
		for _, o := range ops {
			allowed = append(allowed, o.Method)
		}
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		server.WriteError(w, r, http.StatusMethodNotAllowed, stackerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": allowed,
			})
		return
	}

	result, err := s.Execute(ctx, op, RequestFromValues(r.URL.Query()))
	if err != nil {
		slog.Debug("stacks query rejected", "endpoint", name, "error", err)
		server.WriteErrorFromErr(w, r, err, "Failed to query stacks", nil)
		return
	}

	// Set caching headers
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(cacheTTL.Seconds())))

	serializer.RespondJSON(w, http.StatusOK, result)
}

// Routes returns the catalog routes keyed by path, ready for server.WithHandler.
func (s *Store) Routes() map[string]http.HandlerFunc {
	routes := make(map[string]http.HandlerFunc, len(operations))
	for _, op := range operations {
		routes[op.Path()] = s.HandleStacks
	}
	return routes
}
