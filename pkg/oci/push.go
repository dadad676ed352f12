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

package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/distribution/reference"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	stackerrors "github.com/stefanushinardi/azure-functions-ux/pkg/errors"
)

const (
	// ArtifactType is the media type of exported stacks catalog artifacts.
	ArtifactType = "application/vnd.azure.stacks.catalog.v1"

	// storeDirName is the OCI image layout directory created by Package.
	storeDirName = "oci-layout"
)

// PackageOptions configures local OCI packaging.
type PackageOptions struct {
	// SourceDir is the directory holding the exported catalog files.
	SourceDir string
	// OutputDir receives the OCI image layout.
	OutputDir string
	// Registry is the OCI registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the image repository path (e.g., "azure/stacks").
	Repository string
	// Tag is the image tag (e.g., "v1.0.0").
	Tag string
	// Annotations are added to the manifest.
	Annotations map[string]string
	// ReproducibleTimestamp pins the org.opencontainers.image.created annotation.
	ReproducibleTimestamp string
}

// PackageResult describes a locally packaged artifact.
type PackageResult struct {
	// Digest is the SHA256 digest of the manifest.
	Digest string
	// Reference is the full image reference (registry/repository:tag).
	Reference string
	// StorePath is the OCI image layout directory.
	StorePath string
}

// PushOptions configures pushing a packaged artifact to a registry.
type PushOptions struct {
	// Registry is the OCI registry host.
	Registry string
	// Repository is the image repository path.
	Repository string
	// Tag is the image tag to push.
	Tag string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
}

// PushResult contains the result of a successful push.
type PushResult struct {
	// Digest is the SHA256 digest of the pushed manifest.
	Digest string
	// Reference is the full image reference (registry/repository:tag).
	Reference string
}

// Package packs the files under SourceDir into a single gzip layer and
// stores the tagged manifest in an OCI image layout under OutputDir.
func Package(ctx context.Context, opts PackageOptions) (*PackageResult, error) {
	switch {
	case opts.Tag == "":
		return nil, fmt.Errorf("tag is required for OCI packaging")
	case opts.Registry == "":
		return nil, fmt.Errorf("registry is required for OCI packaging")
	case opts.Repository == "":
		return nil, fmt.Errorf("repository is required for OCI packaging")
	}

	refString, err := imageReference(opts.Registry, opts.Repository, opts.Tag)
	if err != nil {
		return nil, err
	}

	// ORAS resolves relative names against its own working directory
	absSourceDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory: %w", err)
	}

	src, err := file.New(absSourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create file store: %w", err)
	}
	defer func() { _ = src.Close() }()

	src.TarReproducible = true

	layerDesc, err := src.Add(ctx, ".", ociv1.MediaTypeImageLayerGzip, absSourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to add source directory to store: %w", err)
	}

	annotations := make(map[string]string, len(opts.Annotations)+1)
	for k, v := range opts.Annotations {
		annotations[k] = v
	}
	if opts.ReproducibleTimestamp != "" {
		annotations[ociv1.AnnotationCreated] = opts.ReproducibleTimestamp
	}

	manifestDesc, err := oras.PackManifest(ctx, src, oras.PackManifestVersion1_1, ArtifactType,
		oras.PackManifestOptions{
			Layers:              []ociv1.Descriptor{layerDesc},
			ManifestAnnotations: annotations,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to pack manifest: %w", err)
	}

	if err := src.Tag(ctx, manifestDesc, opts.Tag); err != nil {
		return nil, fmt.Errorf("failed to tag manifest in file store: %w", err)
	}

	storePath := filepath.Join(opts.OutputDir, storeDirName)
	if err := os.MkdirAll(storePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create OCI layout directory: %w", err)
	}

	dst, err := oci.New(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create OCI layout store: %w", err)
	}

	desc, err := oras.Copy(ctx, src, opts.Tag, dst, opts.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to copy artifact into OCI layout: %w", err)
	}

	return &PackageResult{
		Digest:    desc.Digest.String(),
		Reference: refString,
		StorePath: storePath,
	}, nil
}

// PushFromStore copies the tagged manifest from an OCI image layout to the
// remote repository.
func PushFromStore(ctx context.Context, storePath string, opts PushOptions) (*PushResult, error) {
	if opts.Tag == "" {
		return nil, fmt.Errorf("tag is required to push OCI image")
	}

	refString, err := imageReference(opts.Registry, opts.Repository, opts.Tag)
	if err != nil {
		return nil, err
	}

	src, err := oci.New(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open OCI layout store: %w", err)
	}

	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", stripProtocol(opts.Registry), opts.Repository))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize remote repository: %w", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	desc, err := oras.Copy(ctx, src, opts.Tag, repo, opts.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to push artifact to registry: %w", err)
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: refString,
	}, nil
}

// PublishOptions configures PackageAndPush.
type PublishOptions struct {
	// SourceDir is the directory holding the exported catalog files.
	SourceDir string
	// OutputDir receives the intermediate OCI image layout.
	OutputDir string
	// Reference is the parsed oci:// target; it must carry a tag.
	Reference *Reference
	// Version is recorded in the org.opencontainers.image.version annotation.
	Version string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
}

// PackageAndPush packages SourceDir and pushes it to the referenced registry.
func PackageAndPush(ctx context.Context, opts PublishOptions) (*PushResult, error) {
	if opts.Reference == nil || !opts.Reference.IsOCI {
		return nil, stackerrors.New(stackerrors.ErrCodeInvalidRequest, "OCI reference is required for PackageAndPush")
	}
	if opts.Reference.Tag == "" {
		return nil, stackerrors.New(stackerrors.ErrCodeInvalidRequest, "tag is required for OCI packaging")
	}

	pkg, err := Package(ctx, PackageOptions{
		SourceDir:  opts.SourceDir,
		OutputDir:  opts.OutputDir,
		Registry:   opts.Reference.Registry,
		Repository: opts.Reference.Repository,
		Tag:        opts.Reference.Tag,
		Annotations: map[string]string{
			ociv1.AnnotationVersion: opts.Version,
			ociv1.AnnotationTitle:   "App Service Stacks Catalog",
			ociv1.AnnotationSource:  "https://github.com/stefanushinardi/azure-functions-ux",
		},
	})
	if err != nil {
		return nil, stackerrors.Wrap(stackerrors.ErrCodeInternal, "failed to package OCI artifact", err)
	}

	slog.Info("OCI artifact packaged locally",
		"reference", pkg.Reference,
		"digest", pkg.Digest,
		"store_path", pkg.StorePath,
	)

	res, err := PushFromStore(ctx, pkg.StorePath, PushOptions{
		Registry:    opts.Reference.Registry,
		Repository:  opts.Reference.Repository,
		Tag:         opts.Reference.Tag,
		PlainHTTP:   opts.PlainHTTP,
		InsecureTLS: opts.InsecureTLS,
	})
	if err != nil {
		return nil, stackerrors.Wrap(stackerrors.ErrCodeUnavailable, "failed to push OCI artifact to registry", err)
	}

	slog.Info("OCI artifact pushed",
		"reference", res.Reference,
		"digest", res.Digest,
	)
	return res, nil
}

func imageReference(registry, repository, tag string) (string, error) {
	ref := fmt.Sprintf("%s/%s:%s", stripProtocol(registry), repository, tag)
	if _, err := reference.ParseNormalizedNamed(ref); err != nil {
		return "", fmt.Errorf("invalid image reference '%s': %w", ref, err)
	}
	return ref, nil
}

// stripProtocol removes an http:// or https:// prefix from a registry URL.
func stripProtocol(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	registry = strings.TrimPrefix(registry, "http://")
	return registry
}

// createAuthClient returns a registry client using Docker credential
// helpers, optionally skipping TLS verification.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credentials unavailable", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}
