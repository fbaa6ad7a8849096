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
package operational

import (
	"testing"

	"github.com/netobserv/netipv4trie/pkg/api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var (
	testCounter = DefineMetric("test_lookups", "Counter used in tests", TypeCounter, "result")
	testGauge   = DefineMetric("test_entries", "Gauge used in tests", TypeGauge)
	testHisto   = DefineMetric("test_depth", "Histogram used in tests", TypeHistogram)
)

func TestMetrics_Prefix(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(&api.MetricsSettings{Prefix: "netipv4trie_"}, reg)

	m.NewCounter(&testCounter, "hit").Add(3)
	m.NewGauge(&testGauge).Set(7)

	count, err := testutil.GatherAndCount(reg, "netipv4trie_test_lookups", "netipv4trie_test_entries")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestMetrics_SharedDefinition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(nil, reg)

	first := m.NewCounterVec(&testCounter)
	second := m.NewCounterVec(&testCounter)
	first.WithLabelValues("hit").Inc()
	second.WithLabelValues("hit").Inc()
	require.Equal(t, float64(2), testutil.ToFloat64(first.WithLabelValues("hit")))
}

func TestMetrics_Histogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(&api.MetricsSettings{Prefix: "netipv4trie_"}, reg)

	h := m.NewHistogram(&testHisto, []float64{1, 2, 4})
	h.Observe(1)
	h.Observe(3)
	require.Equal(t, 1, testutil.CollectAndCount(m.NewHistogramVec(&testHisto, nil)))

	count, err := testutil.GatherAndCount(reg, "netipv4trie_test_depth")
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Panics(t, func() { m.NewCounterVec(&testHisto) })
}

func TestMetrics_WrongType(t *testing.T) {
	m := NewMetrics(nil, prometheus.NewRegistry())
	require.Panics(t, func() { m.NewGauge(&testCounter) })
}

func TestGetDocumentation(t *testing.T) {
	doc := GetDocumentation()
	require.Contains(t, doc, "### test_lookups")
	require.Contains(t, doc, "| **Labels** | result |")
	require.Contains(t, doc, "| **Type** | gauge |")
	require.Contains(t, doc, "| **Labels** | none |")
}
