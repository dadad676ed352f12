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

// Package serializer provides utilities for serializing catalog data to
// various formats and reading it back.
//
// The package supports four output formats:
//   - JSON: Machine-readable structured data with proper indentation
//   - YAML: Human-readable configuration format
//   - Table: Column output for values implementing Tabular, flattened keys otherwise
//   - Tree: Hierarchical output for values implementing TreeRenderer
//
// Usage:
//
//	writer := serializer.NewWriter(serializer.FormatJSON, os.Stdout)
//	defer writer.Close() // Important: close to release file handles
//	if err := writer.Serialize(ctx, data); err != nil {
//		log.Fatal(err)
//	}
//
// Destinations passed to NewFileWriterOrStdout may be a file path, empty
// (stdout) or a ConfigMap URI of the form cm://namespace/name.
//
// Sources passed to FromFile may be a file path, an http(s) URL or a
// ConfigMap URI:
//
//	catalog, err := serializer.FromFile[stacks.Catalog](ctx, "cm://stacks/catalog")
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
package serializer
