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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stackerrors "github.com/stefanushinardi/azure-functions-ux/pkg/errors"
	"github.com/stefanushinardi/azure-functions-ux/pkg/header"
	"github.com/stefanushinardi/azure-functions-ux/pkg/serializer"
	"github.com/stefanushinardi/azure-functions-ux/pkg/stacks"
)

const minimal20200601 = `
webAppRuntimeStacks:
  - displayText: Ruby
    value: ruby
    majorVersions:
      - displayText: Ruby 2
        value: "2"
        minorVersions:
          - displayText: Ruby 2.6
            value: "2.6"
            stackSettings:
              linuxRuntimeSettings:
                runtimeVersion: RUBY|2.6
                remoteDebuggingSupported: false
                appInsightsSettings:
                  isSupported: false
                gitHubActionSettings:
                  isSupported: false
webAppContainerStacks:
  - displayText: Tomcat
    value: tomcat
    majorVersions:
      - displayText: Tomcat 9.0
        value: "9.0"
        minorVersions:
          - displayText: Tomcat 9.0
            value: "9.0"
            stackSettings:
              windowsContainerSettings:
                javaContainer: TOMCAT
                javaContainerVersion: "9.0"
functionAppStacks:
  - displayText: Python
    value: python
    majorVersions:
      - displayText: Python 3
        value: "3"
        minorVersions:
          - displayText: Python 3.9
            value: "3.9"
            stackSettings:
              linuxRuntimeSettings:
                runtimeVersion: Python|3.9
                remoteDebuggingSupported: false
                appInsightsSettings:
                  isSupported: true
                gitHubActionSettings:
                  isSupported: true
                appSettingsDictionary:
                  FUNCTIONS_WORKER_RUNTIME: python
                siteConfigPropertiesDictionary:
                  use32BitWorkerProcess: false
                  linuxFxVersion: Python|3.9
                supportedFunctionsExtensionVersions: [EXT]
`

func minimalFS(ext string) fstest.MapFS {
	return fstest.MapFS{
		"2020-06-01.yaml": &fstest.MapFile{Data: []byte(strings.ReplaceAll(minimal20200601, "EXT", ext))},
	}
}

func embeddedStore(t *testing.T) *Store {
	t.Helper()
	s, err := Default(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func TestDefaultLoadsEmbeddedCatalog(t *testing.T) {
	s := embeddedStore(t)

	assert.Equal(t, stacks.SupportedAPIVersions, s.Versions())
	c := s.Catalog()
	assert.Equal(t, header.KindStackCatalog, c.Kind)
	assert.Equal(t, header.APIVersion, c.APIVersion)
	assert.Equal(t, SourceEmbedded, c.Metadata[MetadataSource])

	again, err := Default(context.Background())
	require.NoError(t, err)
	assert.Same(t, s, again)
}

func TestDefaultCatalogShape(t *testing.T) {
	s := embeddedStore(t)

	g := s.Generation20200601()
	require.NotNil(t, g)
	assert.Contains(t, g.FunctionAppStacks.Values(), "python")
	assert.Contains(t, g.WebAppContainerStacks.Values(), "jetty")

	old := s.Generation20200501()
	require.NotNil(t, old)
	assert.NotEmpty(t, old.WebAppCreateStacks)
	assert.NotEmpty(t, old.WebAppConfigStacks.Windows)
	assert.NotEmpty(t, old.WebAppConfigStacks.Linux)
	assert.NotEmpty(t, old.FunctionAppStacks)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := embeddedStore(t)

	g := s.Generation20200601()
	g.FunctionAppStacks = stacks.Prune(g.FunctionAppStacks, stacks.Filter{StackValue: "python", OS: stacks.OSWindows})
	assert.Empty(t, g.FunctionAppStacks)

	fresh := s.Generation20200601()
	assert.Contains(t, fresh.FunctionAppStacks.Values(), "python")

	c := s.Catalog()
	c.Metadata[MetadataSource] = "changed"
	assert.Equal(t, SourceEmbedded, s.Catalog().Metadata[MetadataSource])
}

func TestDocument(t *testing.T) {
	s := embeddedStore(t)

	doc, err := s.Document(stacks.APIVersion20200601)
	require.NoError(t, err)
	assert.Nil(t, doc.V20200501)
	assert.NotNil(t, doc.V20200601)
	assert.Equal(t, header.KindStackCatalog, doc.Kind)

	all, err := s.Document()
	require.NoError(t, err)
	assert.NotNil(t, all.V20200501)
	assert.NotNil(t, all.V20200601)

	_, err = s.Document("2019-01-01")
	assert.True(t, stackerrors.IsCode(err, stackerrors.ErrCodeInvalidRequest))
}

func TestLoadFS(t *testing.T) {
	s, err := LoadFS(minimalFS("~4"))
	require.NoError(t, err)
	assert.Equal(t, []string{stacks.APIVersion20200601}, s.Versions())
	assert.Nil(t, s.Generation20200501())

	_, err = s.Document(stacks.APIVersion20200501)
	assert.True(t, stackerrors.IsCode(err, stackerrors.ErrCodeNotFound))
}

func TestLoadFSErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"no data files", fstest.MapFS{}},
		{"unparseable yaml", fstest.MapFS{"2020-06-01.yaml": &fstest.MapFile{Data: []byte("webAppRuntimeStacks: {")}}},
		{"unknown field", fstest.MapFS{"2020-06-01.yaml": &fstest.MapFile{Data: []byte("runtimeStacks: []")}}},
		{"extension version without range", minimalFS("latest")},
		{"empty extension version", minimalFS(`""`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.fsys)
			require.Error(t, err)
			assert.True(t, stackerrors.IsCode(err, stackerrors.ErrCodeInternal), "got %v", err)
		})
	}
}

func TestValidationReportsViolations(t *testing.T) {
	_, err := LoadFS(minimalFS("latest"))
	var se *stackerrors.StructuredError
	require.ErrorAs(t, err, &se)

	violations, ok := se.Context["violations"].([]string)
	require.True(t, ok)
	require.NotEmpty(t, violations)
	assert.Contains(t, violations[0], "supportedFunctionsExtensionVersions")
}

func TestNewStoreRejectsEmptyCatalog(t *testing.T) {
	_, err := NewStore(nil)
	assert.True(t, stackerrors.IsCode(err, stackerrors.ErrCodeInternal))

	_, err = NewStore(&stacks.Catalog{})
	assert.True(t, stackerrors.IsCode(err, stackerrors.ErrCodeInternal))
}

func TestNewStoreRejectsDuplicateStacks(t *testing.T) {
	s, err := LoadFS(minimalFS("~4"))
	require.NoError(t, err)

	c := s.Catalog()
	c.V20200601.FunctionAppStacks = append(c.V20200601.FunctionAppStacks, c.V20200601.FunctionAppStacks[0])
	_, err = NewStore(c)
	assert.True(t, stackerrors.IsCode(err, stackerrors.ErrCodeInternal))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "")
	require.NoError(t, err)
	assert.Same(t, embeddedStore(t), s)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2020-06-01.yaml"), []byte(strings.ReplaceAll(minimal20200601, "EXT", "~3")), 0o600))
	s, err = Open(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{stacks.APIVersion20200601}, s.Versions())
	assert.Equal(t, dir, s.Catalog().Metadata[MetadataSource])

	_, err = Open(ctx, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadDocumentRoundTrip(t *testing.T) {
	src := embeddedStore(t).Catalog()
	data, err := json.Marshal(src)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	s, err := LoadDocument(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, src.V20200601, s.Generation20200601())
	assert.Equal(t, src.V20200501, s.Generation20200501())
	assert.Equal(t, path, s.Catalog().Metadata[MetadataSource])
}

func TestLoadDocumentRejectsOtherKinds(t *testing.T) {
	src := embeddedStore(t).Catalog()
	src.Kind = header.KindStackList
	data, err := json.Marshal(src)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "list.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = LoadDocument(context.Background(), path)
	assert.True(t, stackerrors.IsCode(err, stackerrors.ErrCodeInvalidRequest))
}

func TestLoadDocumentOverHTTP(t *testing.T) {
	src := embeddedStore(t).Catalog()
	data, err := json.Marshal(src)
	require.NoError(t, err)

	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	uri := srv.URL + "/catalog.json"
	s, err := Open(context.Background(), uri,
		serializer.WithUserAgent("stacks/test"),
		serializer.WithTotalTimeout(5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "stacks/test", userAgent)
	assert.Equal(t, src.V20200601, s.Generation20200601())
	assert.Equal(t, uri, s.Catalog().Metadata[MetadataSource])
}
