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

package server

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	stackerrors "github.com/stefanushinardi/azure-functions-ux/pkg/errors"
	"github.com/stefanushinardi/azure-functions-ux/pkg/serializer"
)

// systemRoutes are served without the API middleware chain.
var systemRoutes = []string{"/health", "/ready", "/metrics"}

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	// API endpoints with middleware
	for path, handler := range s.config.Handlers {
		mux.HandleFunc(path, s.withMiddleware(handler))
	}

	return mux
}

// routes returns the sorted API and system routes.
func (s *Server) routes() []string {
	out := make([]string, 0, len(s.config.Handlers)+len(systemRoutes))
	for path := range s.config.Handlers {
		out = append(out, path)
	}
	out = append(out, systemRoutes...)
	slices.Sort(out)
	return out
}

// handleDefault lists the server routes on "/" and rejects any other
// unmatched path.
func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, stackerrors.ErrCodeNotFound,
			"Route not found", false, map[string]any{"path": r.URL.Path})
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		WriteError(w, r, http.StatusMethodNotAllowed, stackerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	resp := struct {
		Name        string   `json:"name"`
		Version     string   `json:"version"`
		APIVersions []string `json:"apiVersions"`
		Ready       bool     `json:"ready"`
		Timestamp   string   `json:"timestamp"`
		Routes      []string `json:"routes"`
	}{
		Name:        s.config.Name,
		Version:     s.config.Version,
		APIVersions: s.config.APIVersions,
		Ready:       s.isReady(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Routes:      s.routes(),
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}
