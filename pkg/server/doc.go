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

// Package server hosts HTTP handlers behind a shared middleware chain with
// health, readiness and metrics endpoints.
//
// # Architecture
//
// The server is stateless. Handlers are registered by path and every one of
// them runs behind the same chain:
//
//   - Prometheus request metrics labeled by the registered route pattern
//   - api-version negotiation reported in the X-API-Version header
//   - Request ID tracking (X-Request-Id, UUID format)
//   - Panic recovery
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - Request logging through log/slog
//
// # Usage
//
//	s := server.New(
//	    server.WithName("stacksd"),
//	    server.WithVersion(version),
//	    server.WithHandler(store.Routes()),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Configuration comes from NewConfig and the environment:
//
//	PORT                      listen port (default: 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown window
//	STACKS_RATE_LIMIT         requests per second, burst is twice the limit
//
// # System Endpoints
//
// GET /health - liveness probe, always 200 with {"status": "healthy"}
//
// GET /ready - readiness probe, 200 once serving and 503 while starting or
// draining
//
// GET /metrics - Prometheus exposition
//
// GET / - route listing unless the caller registers its own root handler
//
// When started under systemd with Type=notify, the server reports READY=1
// once listening and STOPPING=1 when shutdown begins.
//
// # Error Handling
//
// All errors return a consistent JSON structure:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "Incorrect os 'mac' provided. Allowed os values are 'linux' or 'windows'.",
//	  "details": {"parameter": "os", "value": "mac"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-10-19T12:00:00Z",
//	  "retryable": false
//	}
//
// Status codes follow the error code: INVALID_REQUEST (400), UNAUTHORIZED
// (401), NOT_FOUND (404), METHOD_NOT_ALLOWED (405), RATE_LIMIT_EXCEEDED
// (429), INTERNAL (500), SERVICE_UNAVAILABLE (503) and TIMEOUT (504).
package server
