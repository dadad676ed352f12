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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	stackerrors "github.com/stefanushinardi/azure-functions-ux/pkg/errors"
)

func TestNewDefaults(t *testing.T) {
	s := New()

	if s.config.Name != "server" {
		t.Errorf("Name = %q, want server", s.config.Name)
	}
	if s.httpServer.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", s.httpServer.Addr)
	}
	if s.httpServer.ErrorLog == nil {
		t.Error("expected the http server error log to be routed to slog")
	}
	if _, ok := s.config.Handlers["/"]; !ok {
		t.Error("expected default root handler")
	}
	if s.isReady() {
		t.Error("server should not be ready before Start")
	}
}

func TestOptions(t *testing.T) {
	functionApp := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }
	webApp := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) }

	s := New(
		WithConfig(nil),
		WithName("stacksd"),
		WithVersion("1.2.3"),
		WithHandler(map[string]http.HandlerFunc{"/stacks/functionAppStacks": functionApp}),
		WithHandler(map[string]http.HandlerFunc{"/stacks/webAppStacks": functionApp}),
		WithHandler(map[string]http.HandlerFunc{"/stacks/webAppStacks": webApp}),
	)

	if s.config.Name != "stacksd" || s.config.Version != "1.2.3" {
		t.Errorf("identity = %s/%s, want stacksd/1.2.3", s.config.Name, s.config.Version)
	}
	if len(s.config.Handlers) != 3 {
		t.Fatalf("handlers = %d, want 3 (two routes and root)", len(s.config.Handlers))
	}

	rec := httptest.NewRecorder()
	s.config.Handlers["/stacks/webAppStacks"](rec, httptest.NewRequest(http.MethodGet, "/stacks/webAppStacks", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("later WithHandler should replace the route, got status %d", rec.Code)
	}
}

func TestWithConfigPort(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 9191

	s := New(WithConfig(cfg), WithName("stacksd"))
	if s.httpServer.Addr != "127.0.0.1:9191" {
		t.Errorf("Addr = %q, want 127.0.0.1:9191", s.httpServer.Addr)
	}
	if cfg.Name != "stacksd" {
		t.Error("options after WithConfig should apply to the provided config")
	}
}

func TestHealthAndReady(t *testing.T) {
	s := New()

	tests := []struct {
		path       string
		ready      bool
		wantStatus int
		wantBody   string
	}{
		{"/health", false, http.StatusOK, "healthy"},
		{"/ready", false, http.StatusServiceUnavailable, "not_ready"},
		{"/ready", true, http.StatusOK, "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.wantBody, func(t *testing.T) {
			s.setReady(tt.ready)

			rec := httptest.NewRecorder()
			s.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode %s: %v", tt.path, err)
			}
			if resp.Status != tt.wantBody {
				t.Errorf("status field = %q, want %q", resp.Status, tt.wantBody)
			}
		})
	}

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /health status = %d, want 405", rec.Code)
	}
}

func TestDefaultRootListsRoutes(t *testing.T) {
	s := New(
		WithName("stacksd"),
		WithVersion("1.2.3"),
		WithHandler(map[string]http.HandlerFunc{
			"/stacks/webAppStacks":      func(http.ResponseWriter, *http.Request) {},
			"/stacks/functionAppStacks": func(http.ResponseWriter, *http.Request) {},
		}),
	)

	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Name    string   `json:"name"`
		Version string   `json:"version"`
		Ready   bool     `json:"ready"`
		Routes  []string `json:"routes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode root response: %v", err)
	}

	want := []string{"/", "/health", "/metrics", "/ready", "/stacks/functionAppStacks", "/stacks/webAppStacks"}
	if !slices.Equal(body.Routes, want) {
		t.Errorf("routes = %v, want %v", body.Routes, want)
	}
	if body.Name != "stacksd" || body.Version != "1.2.3" || body.Ready {
		t.Errorf("unexpected identity %+v", body)
	}
}

func TestDefaultRootErrors(t *testing.T) {
	s := New()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantCode   stackerrors.ErrorCode
		wantAllow  string
	}{
		{"unknown path", http.MethodGet, "/stacks/rubyStacks", http.StatusNotFound, stackerrors.ErrCodeNotFound, ""},
		{"post to root", http.MethodPost, "/", http.StatusMethodNotAllowed, stackerrors.ErrCodeMethodNotAllowed, http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Allow"); got != tt.wantAllow {
				t.Errorf("Allow = %q, want %q", got, tt.wantAllow)
			}
			resp := decodeError(t, rec)
			if resp.Code != string(tt.wantCode) {
				t.Errorf("code = %s, want %s", resp.Code, tt.wantCode)
			}
			if resp.RequestID == "" {
				t.Error("expected requestId in error response")
			}
		})
	}
}

func TestCustomRootHandlerKept(t *testing.T) {
	called := false
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/": func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusNoContent)
		},
	}))

	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !called || rec.Code != http.StatusNoContent {
		t.Errorf("custom root not used: called=%v status=%d", called, rec.Code)
	}
}

func TestStartAndShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 100 * time.Millisecond

	s := New(WithConfig(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	deadline := time.Now().Add(time.Second)
	for !s.isReady() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !s.isReady() {
		t.Fatal("server did not become ready")
	}

	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("shutdown timed out")
	}
	if s.isReady() {
		t.Error("server should not be ready after shutdown")
	}
}
