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
package test

import (
	"math/rand"
	"net/netip"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestInitConfig(t *testing.T) {
	cfg := InitConfig(t, `
log-level: info
subnets:
  - name: lab
    cidrs: [10.0.0.0/8]
rules:
  - input: SrcAddr
    output: SrcOwner
    excludeExact: true
`)
	require.Equal(t, "info", cfg.LogLevel)
	require.Len(t, cfg.Subnets, 1)
	require.Equal(t, []string{"10.0.0.0/8"}, cfg.Subnets[0].CIDRs)
	require.True(t, cfg.Rules[0].ExcludeExact)
}

func TestRandomCIDR(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	pool := netip.MustParsePrefix("10.0.0.0/20")
	for i := 0; i < 100; i++ {
		p := netip.MustParsePrefix(RandomCIDR(rnd, 12))
		require.True(t, pool.Contains(p.Addr()), p.String())
		require.GreaterOrEqual(t, p.Bits(), 12)
	}
}

func TestReadExposedMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_gauge", Help: "test"})
	reg.MustRegister(gauge)
	gauge.Set(3)
	require.Contains(t, ReadExposedMetrics(t, reg), "test_gauge 3")
}
