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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog load metrics
	catalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stacks_catalog_cache_hits_total",
			Help: "Total number of embedded catalog cache hits",
		},
	)
	catalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stacks_catalog_cache_misses_total",
			Help: "Total number of embedded catalog cache misses (initial loads)",
		},
	)

	// Query metrics
	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stacks_catalog_query_duration_seconds",
			Help:    "Duration of catalog queries in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"endpoint", "api_version"},
	)
	queryResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stacks_catalog_query_result_size",
			Help:    "Number of leaf entries returned by catalog queries",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
		[]string{"endpoint"},
	)
	queryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stacks_catalog_query_errors_total",
			Help: "Total number of rejected catalog queries",
		},
		[]string{"endpoint", "code"},
	)
)
