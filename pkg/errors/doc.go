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

// Package errors provides the structured error type shared by the catalog,
// the HTTP server and the CLI.
//
// A StructuredError pairs an ErrorCode with a client-safe message. The HTTP
// layer maps codes to status codes (see server.HTTPStatusFromCode), so the
// validation errors produced for bad query parameters surface as 400
// responses without the handlers knowing about HTTP statuses.
//
// Usage:
//
//	if os != "linux" && os != "windows" {
//	    return errors.NewWithContext(errors.ErrCodeInvalidRequest,
//	        fmt.Sprintf("Incorrect os '%s' provided.", os),
//	        map[string]any{"os": os})
//	}
//
//	if err := yaml.Unmarshal(data, &gen); err != nil {
//	    return errors.Wrap(errors.ErrCodeInternal, "failed to parse catalog", err)
//	}
package errors
