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
	"net/http"
	"slices"
	"strings"
)

// negotiateAPIVersion returns the api-version query parameter when it names
// a supported version, otherwise the latest supported version.
func negotiateAPIVersion(r *http.Request, supported []string) string {
	if v := strings.TrimSpace(r.URL.Query().Get("api-version")); isValidAPIVersion(v, supported) {
		return v
	}
	if len(supported) == 0 {
		return ""
	}
	return supported[len(supported)-1]
}

func isValidAPIVersion(version string, supported []string) bool {
	return version != "" && slices.Contains(supported, version)
}

// SetAPIVersionHeader reports the served API version to the client.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set("X-API-Version", version)
}
