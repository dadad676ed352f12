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

package client

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func resetSingleton() {
	clientOnce = sync.Once{}
	cachedClient = nil
	cachedConfig = nil
	clientErr = nil
}

func TestResolveKubeconfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Setenv(EnvKubeconfig, "")
	if got := ResolveKubeconfig("/explicit"); got != "/explicit" {
		t.Errorf("explicit path ignored: %q", got)
	}
	if got := ResolveKubeconfig(""); got != "" {
		t.Errorf("expected in-cluster (empty) without any kubeconfig, got %q", got)
	}

	t.Setenv(EnvKubeconfig, "/from/env")
	if got := ResolveKubeconfig(""); got != "/from/env" {
		t.Errorf("env path ignored: %q", got)
	}
}

func TestBuildKubeClient_InvalidPaths(t *testing.T) {
	invalid := filepath.Join(t.TempDir(), "invalid-kubeconfig")
	if err := os.WriteFile(invalid, []byte("invalid yaml content"), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tests := []struct {
		name       string
		kubeconfig string
		env        string
	}{
		{name: "explicit missing path", kubeconfig: "/nonexistent/path/to/kubeconfig"},
		{name: "env missing path", env: "/nonexistent/env/kubeconfig"},
		{name: "explicit invalid file", kubeconfig: invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvKubeconfig, tt.env)

			_, _, err := BuildKubeClient(tt.kubeconfig)
			if err == nil {
				t.Fatal("BuildKubeClient() expected error")
			}
			if !strings.Contains(err.Error(), "failed to build kube config") {
				t.Errorf("BuildKubeClient() error = %v", err)
			}
		})
	}
}

func TestGetKubeClient_Singleton(t *testing.T) {
	resetSingleton()
	defer resetSingleton()

	client1, config1, err1 := GetKubeClient()
	client2, config2, err2 := GetKubeClient()

	// nolint:errorlint // checking the cached instance
	if err1 != err2 {
		t.Errorf("GetKubeClient() should return same error instance: first=%v, second=%v", err1, err2)
	}
	if client1 != client2 {
		t.Error("GetKubeClient() should return the same client instance")
	}
	if config1 != config2 {
		t.Error("GetKubeClient() should return the same config instance")
	}
}

func TestGetKubeClientWithConfig_Explicit(t *testing.T) {
	resetSingleton()
	defer resetSingleton()

	if _, _, err := GetKubeClientWithConfig("/nonexistent/kubeconfig"); err == nil {
		t.Error("expected error for missing kubeconfig")
	}
}
