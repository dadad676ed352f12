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

// Package cli implements the stacks command-line client.
//
// # Commands
//
// query - Run a catalog query offline:
//
//	stacks query functionAppStacks --os linux --stack python --remove-hidden-stacks
//
// Queries go through the same validation and pruning as the HTTP endpoints,
// so error messages match what stacksd returns with a 400.
//
// export - Write the catalog as a StackCatalog document:
//
//	stacks export --output ./catalog
//	stacks export --output oci://ghcr.io/azure/stacks:v1
//
// validate - Load a catalog source and print per-family counts:
//
//	stacks --catalog ./data validate
//
// # Global Flags
//
//	--catalog, -c  Catalog source (env: STACKS_CATALOG, default: embedded)
//	--log-level    Log level (env: LOG_LEVEL, default: info)
//
// # Output Formats
//
// query and validate accept --format json, yaml, table or tree (stack trees
// only) and write to stdout, a file or a cm://namespace/name ConfigMap.
//
// # Exit Codes
//
//	0  Success
//	1  Invalid arguments, catalog load failure or query error
package cli
