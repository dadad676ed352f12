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

// Package catalog serves the runtime stacks catalog: the static trees of
// App Service and Functions runtimes, queried per API version and pruned to
// the OS, stack and visibility a client asks for.
//
// # Sources
//
// The catalog ships embedded in the binary as one YAML file per API version
// (data/2020-05-01.yaml, data/2020-06-01.yaml). Alternative sources are
// opened with Open:
//
//	store, err := catalog.Open(ctx, "")                     // embedded
//	store, err := catalog.Open(ctx, "./data")               // directory of <api-version>.yaml
//	store, err := catalog.Open(ctx, "catalog.yaml")         // exported StackCatalog document
//	store, err := catalog.Open(ctx, "https://host/c.json")  // remote document
//	store, err := catalog.Open(ctx, "cm://stacks/catalog")  // Kubernetes ConfigMap
//
// Every source is validated before use. Missing required fields, duplicate
// sibling identifiers, settings without any OS branch or malformed functions
// extension versions fail the load with an INTERNAL error.
//
// # Queries
//
// Each endpoint is an Operation bound to one HTTP method and a set of API
// versions:
//
//	POST webAppCreateStacks        2020-05-01  os
//	POST webAppConfigStacks        2020-05-01  os
//	POST webAppGitHubActionStacks  2020-05-01  os
//	POST functionAppStacks         2020-05-01  removeHiddenStacks
//	GET  functionAppStacks         2020-06-01  os, stack, removeHiddenStacks
//	GET  webAppStacks              2020-06-01  os
//
// Store.Execute validates a Request, copies the trees it needs and prunes the
// copy, so concurrent queries never share mutable state:
//
//	op, _ := catalog.FindOperation(catalog.EndpointFunctionAppStacks, http.MethodGet)
//	result, err := store.Execute(ctx, op, catalog.Request{
//	    APIVersion:         "2020-06-01",
//	    OS:                 "linux",
//	    RemoveHiddenStacks: "true",
//	})
//
// HandleStacks exposes the same operations over HTTP under /stacks/.
//
// # Metrics
//
//   - stacks_catalog_cache_hits_total / stacks_catalog_cache_misses_total
//   - stacks_catalog_query_duration_seconds{endpoint, api_version}
//   - stacks_catalog_query_result_size{endpoint}
//   - stacks_catalog_query_errors_total{endpoint, code}
package catalog
