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
// Package stacks defines the runtime stack trees served by the catalog and
// the filter that prunes them.
//
// Two tree shapes exist. API version 2020-06-01 uses three levels:
//
//	Stack -> MajorVersion -> MinorVersion -> per-OS settings
//
// where the settings are one of three variants: WebAppRuntimes,
// JavaContainers or FunctionAppRuntimes. API version 2020-05-01 uses
// PlatformStack -> PlatformVersion -> []Platform, where each platform record
// describes a single OS.
//
// # Filtering
//
// Prune and PrunePlatforms apply a Filter bottom-up:
//
//  1. When StackValue is set, only the matching stack is kept (zero or one).
//  2. Every branch failing an active predicate (OS mismatch, hidden,
//     no GitHub Actions support) is cleared.
//  3. Minor versions (or versions) without branches are removed.
//  4. Major versions without minor versions are removed.
//  5. Stacks without major versions are removed.
//
// Filtering mutates its input, so callers work on a DeepCopy of shared data:
//
//	fn := stacks.Prune(gen.FunctionAppStacks.DeepCopy(), stacks.Filter{
//	    OS:           stacks.OSLinux,
//	    RemoveHidden: true,
//	})
//
// The result preserves sibling order, is never nil and is a fixed point:
// pruning it again with the same filter changes nothing.
//
// # Parameters
//
// ValidateAPIVersion, ParseOS, ParseStackValue and ParseRemoveHidden validate
// raw query parameters and return INVALID_REQUEST structured errors whose
// messages name the offending value and the allowed set.
package stacks
