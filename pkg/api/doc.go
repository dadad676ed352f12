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

// Package api wires the stacks catalog into the HTTP server.
//
// Serve is the entry point of the stacksd binary:
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Loading the catalog from STACKS_CATALOG (embedded data when unset)
//   - Registering the catalog routes with pkg/server
//
// The pkg/server package handles the lifecycle, middleware, health and
// readiness probes and Prometheus metrics.
//
// # Endpoints
//
// Catalog endpoints (with rate limiting), all requiring ?api-version=:
//   - POST /stacks/webAppCreateStacks          (2020-05-01; os)
//   - POST /stacks/webAppConfigStacks          (2020-05-01; os)
//   - POST /stacks/webAppGitHubActionStacks    (2020-05-01; os)
//   - POST /stacks/functionAppStacks           (2020-05-01; removeHiddenStacks)
//   - GET  /stacks/functionAppStacks           (2020-06-01; os, stack, removeHiddenStacks)
//   - GET  /stacks/webAppStacks                (2020-06-01; os)
//
// System endpoints (no rate limiting):
//   - GET /health  - liveness probe
//   - GET /ready   - readiness probe
//   - GET /metrics - Prometheus metrics
//
// Example:
//
//	curl "http://localhost:8080/stacks/functionAppStacks?api-version=2020-06-01&os=linux&stack=python&removeHiddenStacks=true"
package api
