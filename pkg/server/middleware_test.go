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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	stackerrors "github.com/stefanushinardi/azure-functions-ux/pkg/errors"
	"github.com/stefanushinardi/azure-functions-ux/pkg/stacks"
)

const testRoute = "/stacks/functionAppStacks"

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestVersionMiddlewareNegotiation(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		query    string
		want     string
	}{
		{"older supported version echoed", stacks.SupportedAPIVersions, "?api-version=2020-05-01", stacks.APIVersion20200501},
		{"newest supported version echoed", stacks.SupportedAPIVersions, "?api-version=2020-06-01", stacks.APIVersion20200601},
		{"missing version falls back to newest", stacks.SupportedAPIVersions, "", stacks.APIVersion20200601},
		{"unknown version falls back to newest", stacks.SupportedAPIVersions, "?api-version=2020-10-01", stacks.APIVersion20200601},
		{"padded version trimmed", stacks.SupportedAPIVersions, "?api-version=%202020-05-01%20", stacks.APIVersion20200501},
		{"restricted server ignores other versions", []string{stacks.APIVersion20200501}, "?api-version=2020-06-01", stacks.APIVersion20200501},
		{"restricted server default", []string{stacks.APIVersion20200501}, "", stacks.APIVersion20200501},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithAPIVersions(tt.versions...))

			var inContext string
			handler := s.versionMiddleware(func(w http.ResponseWriter, r *http.Request) {
				inContext, _ = r.Context().Value(contextKeyAPIVersion).(string)
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, testRoute+tt.query, nil))

			if got := rec.Header().Get("X-API-Version"); got != tt.want {
				t.Errorf("X-API-Version = %q, want %q", got, tt.want)
			}
			if inContext != tt.want {
				t.Errorf("context api version = %q, want %q", inContext, tt.want)
			}
		})
	}
}

func TestWithAPIVersionsReportedByRoot(t *testing.T) {
	s := New(WithAPIVersions(stacks.APIVersion20200601))

	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("X-API-Version"); got != stacks.APIVersion20200601 {
		t.Errorf("X-API-Version = %q, want %q", got, stacks.APIVersion20200601)
	}

	var body struct {
		APIVersions []string `json:"apiVersions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode root response: %v", err)
	}
	if len(body.APIVersions) != 1 || body.APIVersions[0] != stacks.APIVersion20200601 {
		t.Errorf("apiVersions = %v, want [%s]", body.APIVersions, stacks.APIVersion20200601)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	provided := uuid.New().String()

	tests := []struct {
		name     string
		header   string
		keepSent bool
	}{
		{"generated when absent", "", false},
		{"valid uuid kept", provided, true},
		{"invalid value replaced", "stacks-request-1", false},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inContext string
			handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
				inContext, _ = r.Context().Value(contextKeyRequestID).(string)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, testRoute, nil)
			if tt.header != "" {
				req.Header.Set("X-Request-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			got := rec.Header().Get("X-Request-Id")
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("X-Request-Id %q is not a uuid", got)
			}
			if got != inContext {
				t.Errorf("header %q and context %q differ", got, inContext)
			}
			if tt.keepSent && got != tt.header {
				t.Errorf("X-Request-Id = %q, want %q", got, tt.header)
			}
			if !tt.keepSent && got == tt.header {
				t.Errorf("X-Request-Id %q was not replaced", got)
			}
		})
	}
}

func TestRateLimitRejection(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 3
	cfg.RateLimitBurst = 6
	s := New(WithConfig(cfg))
	s.rateLimiter = rate.NewLimiter(0, 0)

	called := false
	handler := s.withMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	requestID := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, testRoute+"?api-version=2020-06-01", nil)
	req.Header.Set("X-Request-Id", requestID)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if called {
		t.Fatal("handler called while rate limited")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}

	resp := decodeError(t, rec)
	if resp.Code != string(stackerrors.ErrCodeRateLimitExceeded) {
		t.Errorf("code = %s, want %s", resp.Code, stackerrors.ErrCodeRateLimitExceeded)
	}
	if !resp.Retryable {
		t.Error("rate limit errors should be retryable")
	}
	if resp.RequestID != requestID {
		t.Errorf("requestId = %q, want %q", resp.RequestID, requestID)
	}
	if resp.Details["limit"] != float64(3) || resp.Details["burst"] != float64(6) {
		t.Errorf("details = %v, want limit 3 and burst 6", resp.Details)
	}
}

func TestRateLimitHeaders(t *testing.T) {
	t.Setenv("STACKS_RATE_LIMIT", "7")
	s := New()

	rec := httptest.NewRecorder()
	s.rateLimitMiddleware(okHandler)(rec, httptest.NewRequest(http.MethodGet, testRoute, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "7" {
		t.Errorf("X-RateLimit-Limit = %q, want 7", got)
	}
	// one token of the burst of 14 was spent
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "13" {
		t.Errorf("X-RateLimit-Remaining = %q, want 13", got)
	}
	if rec.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("expected X-RateLimit-Reset header")
	}
}

func TestPanicRecoveryWritesInternalError(t *testing.T) {
	s := New()
	handler := s.requestIDMiddleware(s.panicRecoveryMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("catalog view is nil")
	}))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, testRoute, nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Code != string(stackerrors.ErrCodeInternal) {
		t.Errorf("code = %s, want %s", resp.Code, stackerrors.ErrCodeInternal)
	}
	if resp.RequestID != rec.Header().Get("X-Request-Id") {
		t.Errorf("requestId = %q, want the X-Request-Id header %q", resp.RequestID, rec.Header().Get("X-Request-Id"))
	}
	if strings.Contains(rec.Body.String(), "catalog view is nil") {
		t.Error("panic value leaked to the client")
	}
}

func TestLoggingMiddlewarePreservesStatus(t *testing.T) {
	s := New()
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusMethodNotAllowed} {
		handler := s.loggingMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, testRoute, nil))
		if rec.Code != status {
			t.Errorf("status = %d, want %d", rec.Code, status)
		}
	}
}

func TestResponseWriterRecordsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)
	if rw.Status() != http.StatusOK {
		t.Errorf("default status = %d, want 200", rw.Status())
	}

	rw.WriteHeader(http.StatusBadRequest)
	rw.WriteHeader(http.StatusInternalServerError)
	if rw.Status() != http.StatusBadRequest || rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d/%d, want 400", rw.Status(), rec.Code)
	}
	if rw.Unwrap() != rec {
		t.Error("Unwrap did not return the wrapped writer")
	}
}

func TestMiddlewareOnlyWrapsAPIRoutes(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{testRoute: okHandler}))
	mux := s.httpServer.Handler

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, testRoute+"?api-version=2020-05-01", nil))
	for _, h := range []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("expected %s on %s", h, testRoute)
		}
	}
	if got := rec.Header().Get("X-API-Version"); got != stacks.APIVersion20200501 {
		t.Errorf("X-API-Version = %q, want %q", got, stacks.APIVersion20200501)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get("X-Request-Id") != "" || rec.Header().Get("X-API-Version") != "" {
		t.Error("system routes should bypass the API middleware")
	}
}

func TestMetricsEndpointReportsRequests(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{testRoute: okHandler}))
	mux := s.httpServer.Handler

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, testRoute, nil))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`stacks_http_requests_total{method="GET",path="` + testRoute + `",status="200"}`,
		"stacks_http_request_duration_seconds",
		"stacks_http_requests_in_flight",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}
