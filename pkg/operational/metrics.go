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
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/netobserv/netipv4trie/pkg/api"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type MetricType string

const (
	TypeCounter   MetricType = "counter"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

type MetricDefinition struct {
	Name   string
	Help   string
	Type   MetricType
	Labels []string
}

var allMetrics []MetricDefinition

// DefineMetric declares a metric so that it shows up in the generated documentation.
// It is meant to be called from package level var blocks.
func DefineMetric(name, help string, t MetricType, labels ...string) MetricDefinition {
	def := MetricDefinition{
		Name:   name,
		Help:   help,
		Type:   t,
		Labels: labels,
	}
	allMetrics = append(allMetrics, def)
	return def
}

// Metrics registers the defined metrics, with the configured prefix, into a prometheus registry.
type Metrics struct {
	settings   *api.MetricsSettings
	registerer prometheus.Registerer
}

// NewMetrics uses the default prometheus registry when registerer is nil.
func NewMetrics(settings *api.MetricsSettings, registerer prometheus.Registerer) *Metrics {
	if settings == nil {
		settings = &api.MetricsSettings{}
	}
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Metrics{settings: settings, registerer: registerer}
}

func (o *Metrics) fullName(def *MetricDefinition) string {
	return o.settings.Prefix + def.Name
}

// register returns the collector already registered under the same name when there is one,
// so that several components may share a definition.
func (o *Metrics) register(c prometheus.Collector, name string) prometheus.Collector {
	err := o.registerer.Register(c)
	if err == nil {
		return c
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return already.ExistingCollector
	}
	log.Errorf("metrics registration error [%s]: %v", name, err)
	return c
}

func (o *Metrics) NewCounterVec(def *MetricDefinition) *prometheus.CounterVec {
	verifyMetricType(def, TypeCounter)
	fullName := o.fullName(def)
	c := prometheus.NewCounterVec(prometheus.CounterOpts{Name: fullName, Help: def.Help}, def.Labels)
	return o.register(c, fullName).(*prometheus.CounterVec)
}

func (o *Metrics) NewCounter(def *MetricDefinition, labels ...string) prometheus.Counter {
	return o.NewCounterVec(def).WithLabelValues(labels...)
}

func (o *Metrics) NewGaugeVec(def *MetricDefinition) *prometheus.GaugeVec {
	verifyMetricType(def, TypeGauge)
	fullName := o.fullName(def)
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: fullName, Help: def.Help}, def.Labels)
	return o.register(g, fullName).(*prometheus.GaugeVec)
}

func (o *Metrics) NewGauge(def *MetricDefinition, labels ...string) prometheus.Gauge {
	return o.NewGaugeVec(def).WithLabelValues(labels...)
}

func (o *Metrics) NewHistogramVec(def *MetricDefinition, buckets []float64) *prometheus.HistogramVec {
	verifyMetricType(def, TypeHistogram)
	fullName := o.fullName(def)
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: fullName, Help: def.Help, Buckets: buckets}, def.Labels)
	return o.register(h, fullName).(*prometheus.HistogramVec)
}

func (o *Metrics) NewHistogram(def *MetricDefinition, buckets []float64, labels ...string) prometheus.Observer {
	return o.NewHistogramVec(def, buckets).WithLabelValues(labels...)
}

func verifyMetricType(def *MetricDefinition, t MetricType) {
	if def.Type != t {
		log.Panicf("operational metric %q is of type %q but is being registered as %q", def.Name, def.Type, t)
	}
}

func GetDocumentation() string {
	defs := make([]MetricDefinition, len(allMetrics))
	copy(defs, allMetrics)
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })

	doc := ""
	for _, opts := range defs {
		doc += fmt.Sprintf(
			`
### %s
| **Name** | %s | 
|:---|:---|
| **Description** | %s | 
| **Type** | %s | 
| **Labels** | %s | 

`,
			opts.Name,
			opts.Name,
			opts.Help,
			opts.Type,
			labelsDoc(opts.Labels),
		)
	}

	return doc
}

func labelsDoc(labels []string) string {
	if len(labels) == 0 {
		return "none"
	}
	return strings.Join(labels, ", ")
}
