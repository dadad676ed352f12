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

// Package logging configures log/slog for the stacks daemon and CLI.
//
// All records are JSON on stderr and carry the module name and version:
//
//	{"time":"2026-01-15T10:30:00Z","level":"INFO","msg":"catalog loaded","module":"stacksd","version":"v0.3.0","stacks":7}
//
// Debug records additionally include the source location.
//
// # Log Levels
//
// Supported levels (case-insensitive): debug, info (default), warn/warning, error.
// The LOG_LEVEL environment variable sets the level when no explicit level is given:
//
//	LOG_LEVEL=debug stacksd
//	stacks --log-level warn query webAppStacks
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("stacksd", version)
//	    slog.Info("starting", "port", 8080)
//	}
//
// Components that still take a *log.Logger (such as http.Server.ErrorLog)
// can use NewLogLogger.
package logging
