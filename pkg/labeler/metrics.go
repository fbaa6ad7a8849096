/*
 * Copyright (C) 2025 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package labeler

import (
	"github.com/netobserv/netipv4trie/pkg/operational"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	entriesGauge = operational.DefineMetric(
		"labeler_entries",
		"Number of subnets loaded in the labeler",
		operational.TypeGauge,
	)
	lookupsCounter = operational.DefineMetric(
		"labeler_lookups",
		"Counter of subnet owner lookups, by result",
		operational.TypeCounter,
		"result",
	)
	ownersHistogram = operational.DefineMetric(
		"labeler_owners",
		"Number of owners found per lookup",
		operational.TypeHistogram,
	)
	errorsCounter = operational.DefineMetric(
		"labeler_errors",
		"Counter of errors while loading subnets or resolving flow addresses",
		operational.TypeCounter,
		"code",
	)
)

type metrics struct {
	entries prometheus.Gauge
	lookups *prometheus.CounterVec
	owners  prometheus.Observer
	errors  *prometheus.CounterVec
}

func newMetrics(opMetrics *operational.Metrics) *metrics {
	return &metrics{
		entries: opMetrics.NewGauge(&entriesGauge),
		lookups: opMetrics.NewCounterVec(&lookupsCounter),
		owners:  opMetrics.NewHistogram(&ownersHistogram, []float64{0, 1, 2, 3, 4, 6, 8}),
		errors:  opMetrics.NewCounterVec(&errorsCounter),
	}
}

func (m *metrics) lookup(owners int) {
	m.owners.Observe(float64(owners))
	if owners > 0 {
		m.lookups.WithLabelValues("hit").Inc()
	} else {
		m.lookups.WithLabelValues("miss").Inc()
	}
}

// `code` must stay a short static string to keep cardinality low
func (m *metrics) error(code string) {
	m.errors.WithLabelValues(code).Inc()
}
