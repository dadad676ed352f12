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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stefanushinardi/azure-functions-ux/pkg/k8s/client"
)

// FormatFromPath determines the serialization format based on file extension.
// Supported extensions:
//   - .json → FormatJSON
//   - .yaml, .yml → FormatYAML
//   - .table, .txt → FormatTable
//
// Returns FormatJSON as default for unknown extensions.
// Extension matching is case-insensitive.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".table"), strings.HasSuffix(lowerPath, ".txt"):
		return FormatTable
	default:
		slog.Warn("unknown file extension, defaulting to JSON", "filePath", filePath)
		return FormatJSON
	}
}

// Reader handles deserialization of structured data (JSON, YAML) from any
// io.Reader source. Close must be called when the Reader was created with
// NewFileReader; it is safe to call more than once.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a new Reader for deserializing data from input.
// Table and tree formats are write-only and are rejected.
// If input implements io.Closer it is closed by Reader.Close.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// NewFileReader creates a new Reader that reads from a local file.
func NewFileReader(format Format, filePath string) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return &Reader{
		format: format,
		input:  file,
		closer: file,
	}, nil
}

func checkReadable(format Format) error {
	if format.IsUnknown() {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable || format == FormatTree {
		return fmt.Errorf("%s format does not support deserialization", format)
	}
	return nil
}

// Deserialize reads data from the input source and unmarshals it into v,
// which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases any resources held by the Reader.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil // Prevent double-close
	return err
}

// FromFile reads and deserializes data from a file path, URL, or ConfigMap URI into type T.
//
// Supported input sources:
//   - Local file paths: /path/to/catalog.json, ./catalog.yaml
//   - HTTP URLs: https://example.com/stacks/catalog.yaml
//   - ConfigMap URIs: cm://namespace/configmap-name
//
// Format detection:
//   - File paths and URLs: determined by extension (.json, .yaml, .yml)
//   - ConfigMap: from the "format" data key, YAML when absent
//
// Example:
//
//	catalog, err := FromFile[stacks.Catalog](ctx, "cm://stacks/catalog")
//
// The HttpReader options only apply to HTTP(S) URLs.
func FromFile[T any](ctx context.Context, path string, opts ...HttpReaderOption) (*T, error) {
	return FromFileWithKubeconfig[T](ctx, path, "", opts...)
}

// FromFileWithKubeconfig is FromFile with a custom kubeconfig path, which is
// only used for ConfigMap URIs. An empty kubeconfig uses default discovery.
func FromFileWithKubeconfig[T any](ctx context.Context, path, kubeconfig string, opts ...HttpReaderOption) (*T, error) {
	if strings.HasPrefix(path, ConfigMapURIScheme) {
		namespace, name, err := parseConfigMapURI(path)
		if err != nil {
			return nil, fmt.Errorf("invalid ConfigMap URI: %w", err)
		}
		k8sClient, _, err := client.GetKubeClientWithConfig(kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		return FromConfigMap[T](ctx, k8sClient, namespace, name)
	}

	format := FormatFromPath(path)
	slog.Debug("determined file format",
		slog.String("path", path),
		slog.String("format", string(format)),
	)

	var (
		reader *Reader
		err    error
	)
	if isRemote(path) {
		reader, err = newRemoteReader(ctx, format, path, opts...)
	} else {
		reader, err = NewFileReader(format, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %q: %w", path, err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr)
		}
	}()

	var out T
	if err := reader.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", path, err)
	}

	slog.Debug("successfully loaded object", slog.String("path", path))
	return &out, nil
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func newRemoteReader(ctx context.Context, format Format, rawURL string, opts ...HttpReaderOption) (*Reader, error) {
	// the extension of the URL path decides the format, not the query string
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		format = FormatFromPath(u.Path)
	}
	data, err := NewHttpReader(opts...).ReadWithContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download remote file: %w", err)
	}
	return NewReader(format, bytes.NewReader(data))
}
