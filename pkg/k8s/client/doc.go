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

// Package client provides the shared Kubernetes client used to read and
// write catalog documents stored in ConfigMaps.
//
// The client is initialized once on first use and cached:
//
//	clientset, _, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//
// Kubeconfig discovery order is: explicit path, KUBECONFIG, ~/.kube/config,
// then in-cluster service account credentials. A custom path bypasses the
// shared client:
//
//	clientset, _, err := client.GetKubeClientWithConfig("/path/to/kubeconfig")
package client
