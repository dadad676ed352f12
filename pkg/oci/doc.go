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

// Package oci publishes exported stacks catalogs as OCI artifacts.
//
// An export directory is packed into a single reproducible gzip layer with
// artifact type "application/vnd.azure.stacks.catalog.v1", stored in a local
// OCI image layout and then copied to a remote registry with ORAS.
//
// # Usage
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/azure/stacks:v1")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.PackageAndPush(ctx, oci.PublishOptions{
//	    SourceDir: exportDir,
//	    OutputDir: workDir,
//	    Reference: ref,
//	    Version:   version,
//	})
//
// Package and PushFromStore can also be called separately when the layout
// should be inspected or kept before pushing.
//
// # Authentication
//
// Registry credentials come from the Docker configuration
// (~/.docker/config.json) through the ORAS credentials package. PlainHTTP
// and InsecureTLS relax transport security for local registries.
package oci
