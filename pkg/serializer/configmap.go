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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/stefanushinardi/azure-functions-ux/pkg/defaults"
	"github.com/stefanushinardi/azure-functions-ux/pkg/header"
	"github.com/stefanushinardi/azure-functions-ux/pkg/k8s/client"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap destinations and sources.
	ConfigMapURIScheme = "cm://"

	// ConfigMapDataPrefix is the base name of the data key holding the document.
	ConfigMapDataPrefix = "catalog"

	// ConfigMapFieldManager owns the fields written through server-side apply.
	ConfigMapFieldManager = "stacks"
)

// ConfigMapWriter writes serialized data to a Kubernetes ConfigMap.
// The ConfigMap is created if it doesn't exist, or updated if it does.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	client    client.Interface
}

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithKubeClient sets the client used for the apply. Without it the shared
// client from the k8s/client package is used.
func WithKubeClient(c client.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.client = c
	}
}

// NewConfigMapWriter creates a new ConfigMapWriter that writes to the specified
// namespace and ConfigMap name in the given format.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    knownOrJSON(format),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Serialize writes data to the ConfigMap.
// The ConfigMap will have:
//   - data.catalog.{yaml|json|txt}: the serialized content
//   - data.format: the format used
//   - data.timestamp: RFC 3339 timestamp of the document
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	k8sClient := w.client
	if k8sClient == nil {
		c, _, err := client.GetKubeClient()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		k8sClient = c
	}

	content, err := marshal(w.format, data)
	if err != nil {
		return fmt.Errorf("failed to serialize data: %w", err)
	}

	kind, version, timestamp := documentLabels(data)

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "stacks",
			"app.kubernetes.io/component": kind,
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			ConfigMapDataPrefix + "." + w.format.extension(): string(content),
			"format":    string(w.format),
			"timestamp": timestamp,
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format)

	// Force takes ownership from previous field managers
	_, err = k8sClient.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, configMap, metav1.ApplyOptions{
		FieldManager: ConfigMapFieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// documentLabels extracts kind, version and timestamp from documents that
// carry a header, with defaults for everything else.
func documentLabels(data any) (kind, version, timestamp string) {
	kind = header.KindStackCatalog.String()
	version = "unknown"
	timestamp = time.Now().UTC().Format(time.RFC3339)

	h, ok := data.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	})
	if !ok {
		return kind, version, timestamp
	}
	if k := h.GetKind(); k != "" {
		kind = k.String()
	}
	metadata := h.GetMetadata()
	if v := metadata["version"]; v != "" {
		version = v
	}
	if ts := metadata["timestamp"]; ts != "" {
		timestamp = ts
	}
	return kind, version, timestamp
}

// Close is a no-op for ConfigMapWriter as there are no resources to release.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// FromConfigMap reads the document stored by ConfigMapWriter from
// namespace/name and deserializes it into T.
func FromConfigMap[T any](ctx context.Context, k8sClient client.Interface, namespace, name string) (*T, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := k8sClient.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	format := FormatYAML
	if f, ok := cm.Data["format"]; ok {
		format = Format(f)
	}

	content, ok := cm.Data[ConfigMapDataPrefix+"."+format.extension()]
	if !ok {
		// fall back to any readable key
		for _, f := range []Format{FormatYAML, FormatJSON} {
			if data, found := cm.Data[ConfigMapDataPrefix+"."+f.extension()]; found {
				content, format, ok = data, f, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("ConfigMap %s/%s has no %s data", namespace, name, ConfigMapDataPrefix)
	}

	slog.Debug("reading from ConfigMap",
		"namespace", namespace,
		"name", name,
		"format", format)

	reader, err := NewReader(format, strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to read ConfigMap %s/%s: %w", namespace, name, err)
	}

	var out T
	if err := reader.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize ConfigMap %s/%s: %w", namespace, name, err)
	}
	return &out, nil
}

// parseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name
// and returns the namespace and name components.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	path := strings.TrimPrefix(uri, ConfigMapURIScheme)
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	if strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot contain '/'")
	}

	return namespace, name, nil
}
