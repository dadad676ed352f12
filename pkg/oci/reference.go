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
	"fmt"
	"strings"

	"github.com/distribution/reference"

	stackerrors "github.com/stefanushinardi/azure-functions-ux/pkg/errors"
)

// URIScheme is the URI scheme for OCI registry output (e.g., "oci://ghcr.io/org/stacks:tag").
const URIScheme = "oci://"

// Reference is a parsed export target, either an OCI registry reference or
// a local directory path.
type Reference struct {
	// IsOCI indicates whether this is an OCI registry reference.
	IsOCI bool
	// Registry is the OCI registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the image repository path (e.g., "azure/stacks").
	Repository string
	// Tag is the image tag. Empty means the caller applies a default.
	Tag string
	// LocalPath is the directory path for non-OCI output.
	LocalPath string
}

// ParseOutputTarget parses an export target. oci://registry/repository[:tag]
// values are split into their components, anything else is a local directory.
func ParseOutputTarget(target string) (*Reference, error) {
	if !strings.HasPrefix(target, URIScheme) {
		return &Reference{LocalPath: target}, nil
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(target, URIScheme))
	if err != nil {
		return nil, stackerrors.WrapWithContext(stackerrors.ErrCodeInvalidRequest,
			"invalid OCI reference", err, map[string]any{"target": target})
	}

	var tag string
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	registry := reference.Domain(ref)
	repository := reference.Path(ref)
	if err := ValidateRegistryReference(registry, repository); err != nil {
		return nil, err
	}

	return &Reference{
		IsOCI:      true,
		Registry:   registry,
		Repository: repository,
		Tag:        tag,
	}, nil
}

// ValidateRegistryReference checks that registry and repository form a valid
// untagged image name. A leading http:// or https:// on the registry is ignored.
func ValidateRegistryReference(registry, repository string) error {
	name := fmt.Sprintf("%s/%s", stripProtocol(registry), repository)
	named, err := reference.ParseNormalizedNamed(name)
	if err != nil {
		return stackerrors.WrapWithContext(stackerrors.ErrCodeInvalidRequest,
			"invalid registry reference", err, map[string]any{"reference": name})
	}
	if _, ok := named.(reference.Digested); ok {
		return stackerrors.NewWithContext(stackerrors.ErrCodeInvalidRequest,
			"registry reference must not include a digest", map[string]any{"reference": name})
	}
	return nil
}

// String returns "oci://registry/repository[:tag]" or the local path.
func (r *Reference) String() string {
	if !r.IsOCI {
		return r.LocalPath
	}
	return URIScheme + r.ImageReference()
}

// ImageReference returns the image reference without the oci:// scheme, or
// "" for local paths.
func (r *Reference) ImageReference() string {
	if !r.IsOCI {
		return ""
	}
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy of the reference with the tag replaced. Local
// references are returned unchanged.
func (r *Reference) WithTag(tag string) *Reference {
	if !r.IsOCI {
		return r
	}
	cp := *r
	cp.Tag = tag
	return &cp
}
