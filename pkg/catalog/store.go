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

package catalog

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	stackerrors "github.com/stefanushinardi/azure-functions-ux/pkg/errors"
	"github.com/stefanushinardi/azure-functions-ux/pkg/header"
	"github.com/stefanushinardi/azure-functions-ux/pkg/serializer"
	"github.com/stefanushinardi/azure-functions-ux/pkg/stacks"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Metadata keys stamped on loaded catalogs.
const (
	MetadataSource = "source"
	SourceEmbedded = "embedded"
)

var (
	defaultOnce  sync.Once
	defaultStore *Store
	defaultErr   error
)

// Store is an immutable, validated catalog. Every accessor and query returns
// data the caller owns.
type Store struct {
	catalog *stacks.Catalog
}

// NewStore validates c and returns a store holding a private copy of it.
func NewStore(c *stacks.Catalog) (*Store, error) {
	if c == nil || (c.V20200501 == nil && c.V20200601 == nil) {
		return nil, stackerrors.New(stackerrors.ErrCodeInternal, "catalog has no API generations")
	}
	if c.V20200501 != nil {
		if err := validateStruct(stacks.APIVersion20200501+" catalog", c.V20200501); err != nil {
			return nil, err
		}
	}
	if c.V20200601 != nil {
		if err := validateStruct(stacks.APIVersion20200601+" catalog", c.V20200601); err != nil {
			return nil, err
		}
	}

	cp := c.DeepCopy()
	if cp.Kind == "" {
		cp.Kind = header.KindStackCatalog
	}
	if cp.APIVersion == "" {
		cp.APIVersion = header.APIVersion
	}
	if cp.Metadata == nil {
		cp.Metadata = make(map[string]string)
	}
	return &Store{catalog: cp}, nil
}

// Default returns the catalog compiled into the binary. It is loaded and
// validated once; later calls share the same store.
func Default(_ context.Context) (*Store, error) {
	loaded := false
	defaultOnce.Do(func() {
		loaded = true
		catalogCacheMisses.Inc()

		sub, err := fs.Sub(dataFS, "data")
		if err != nil {
			defaultErr = stackerrors.Wrap(stackerrors.ErrCodeInternal, "embedded catalog data not found", err)
			return
		}
		defaultStore, defaultErr = loadFS(sub, SourceEmbedded)
	})

	if !loaded && defaultErr == nil {
		catalogCacheHits.Inc()
	}
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultStore, nil
}

// LoadFS reads one "<api-version>.yaml" file per supported API version from
// fsys. Missing versions are skipped but at least one must be present.
func LoadFS(fsys fs.FS) (*Store, error) {
	return loadFS(fsys, "fs")
}

func loadFS(fsys fs.FS, source string) (*Store, error) {
	c := &stacks.Catalog{}
	c.Init(header.KindStackCatalog, header.APIVersion, "")
	c.Metadata[MetadataSource] = source

	for _, v := range stacks.SupportedAPIVersions {
		name := v + ".yaml"
		data, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("catalog data file not found, skipping", "file", name)
			continue
		}
		if err != nil {
			return nil, stackerrors.Wrap(stackerrors.ErrCodeInternal, fmt.Sprintf("failed to read %s", name), err)
		}

		switch v {
		case stacks.APIVersion20200501:
			var g stacks.Generation20200501
			if err := decodeStrict(name, data, &g); err != nil {
				return nil, err
			}
			c.V20200501 = &g
		case stacks.APIVersion20200601:
			var g stacks.Generation20200601
			if err := decodeStrict(name, data, &g); err != nil {
				return nil, err
			}
			c.V20200601 = &g
			slog.Debug("catalog generation decoded",
				"file", name,
				"functionAppStacks", g.FunctionAppStacks.Values(),
				"webAppStacks", g.WebAppStacks().Values())
		}
	}

	s, err := NewStore(c)
	if err != nil {
		return nil, err
	}
	slog.Debug("catalog loaded", "source", source, "versions", s.Versions())
	return s, nil
}

// decodeStrict decodes YAML rejecting fields the catalog types don't declare.
func decodeStrict(name string, data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return stackerrors.Wrap(stackerrors.ErrCodeInternal, fmt.Sprintf("failed to parse %s", name), err)
	}
	return nil
}

// LoadDocument reads an exported StackCatalog document from a file path,
// an http(s) URL or a cm://namespace/name ConfigMap URI. opts configure the
// download of http(s) documents.
func LoadDocument(ctx context.Context, uri string, opts ...serializer.HttpReaderOption) (*Store, error) {
	doc, err := serializer.FromFile[stacks.Catalog](ctx, uri, opts...)
	if err != nil {
		return nil, stackerrors.WrapWithContext(stackerrors.ErrCodeInternal, "failed to load catalog document", err,
			map[string]any{"uri": uri})
	}
	if doc.Kind != "" && doc.Kind != header.KindStackCatalog {
		return nil, stackerrors.NewWithContext(stackerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unexpected document kind %q, want %q", doc.Kind, header.KindStackCatalog),
			map[string]any{"uri": uri})
	}

	s, err := NewStore(doc)
	if err != nil {
		return nil, err
	}
	s.catalog.Metadata[MetadataSource] = uri
	return s, nil
}

// Open resolves a catalog source: empty selects the embedded catalog, a
// directory is read with LoadFS and anything else with LoadDocument.
func Open(ctx context.Context, source string, opts ...serializer.HttpReaderOption) (*Store, error) {
	if source == "" {
		return Default(ctx)
	}
	if fi, err := os.Stat(source); err == nil && fi.IsDir() {
		return loadFS(os.DirFS(source), source)
	}
	return LoadDocument(ctx, source, opts...)
}

// Versions returns the loaded API versions in release order.
func (s *Store) Versions() []string {
	var out []string
	if s.catalog.V20200501 != nil {
		out = append(out, stacks.APIVersion20200501)
	}
	if s.catalog.V20200601 != nil {
		out = append(out, stacks.APIVersion20200601)
	}
	return out
}

// HasVersion reports whether the API version is loaded.
func (s *Store) HasVersion(v string) bool {
	return slices.Contains(s.Versions(), v)
}

// Generation20200501 returns a copy of the 2020-05-01 trees, or nil when
// that version is not loaded.
func (s *Store) Generation20200501() *stacks.Generation20200501 {
	return s.catalog.V20200501.DeepCopy()
}

// Generation20200601 returns a copy of the 2020-06-01 trees, or nil when
// that version is not loaded.
func (s *Store) Generation20200601() *stacks.Generation20200601 {
	return s.catalog.V20200601.DeepCopy()
}

// Catalog returns a copy of the whole catalog document.
func (s *Store) Catalog() *stacks.Catalog {
	return s.catalog.DeepCopy()
}

// Document returns a copy of the catalog restricted to versions. No versions
// selects every loaded version.
func (s *Store) Document(versions ...string) (*stacks.Catalog, error) {
	if len(versions) == 0 {
		return s.Catalog(), nil
	}

	out := &stacks.Catalog{Header: s.catalog.Header}
	out.Metadata = make(map[string]string, len(s.catalog.Metadata))
	for k, v := range s.catalog.Metadata {
		out.Metadata[k] = v
	}

	for _, v := range versions {
		if err := stacks.ValidateAPIVersion(v, stacks.SupportedAPIVersions); err != nil {
			return nil, err
		}
		if !s.HasVersion(v) {
			return nil, stackerrors.NewWithContext(stackerrors.ErrCodeNotFound,
				fmt.Sprintf("API version %s is not loaded", v), map[string]any{"version": v})
		}
		switch v {
		case stacks.APIVersion20200501:
			out.V20200501 = s.Generation20200501()
		case stacks.APIVersion20200601:
			out.V20200601 = s.Generation20200601()
		}
	}
	return out, nil
}
