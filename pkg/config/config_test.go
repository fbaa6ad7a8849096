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
package config

import (
	"encoding/json"
	"testing"

	"github.com/netobserv/netipv4trie/pkg/api"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

const sampleConfig = `
log-level: debug
metricsSettings:
  port: 9102
  prefix: netipv4trie_
health:
  port: "8080"
subnets:
  - name: datacenter
    cidrs:
      - 10.0.0.0/8
  - name: rack-1
    cidrs:
      - 10.211.213.188/30
      - 10.211.213.190/31
rules:
  - input: SrcAddr
    output: SrcOwner
  - input: DstAddr
    output: DstOwners
    select: all
`

func TestJsonUnmarshalStrict(t *testing.T) {
	type Message struct {
		Foo int    `json:"F"`
		Bar string `json:"B"`
	}
	msg := `{"F":1, "B":"bbb"}`
	var actualMsg Message
	expectedMsg := Message{Foo: 1, Bar: "bbb"}
	err := JsonUnmarshalStrict([]byte(msg), &actualMsg)
	require.NoError(t, err)
	require.Equal(t, expectedMsg, actualMsg)

	msg = `{"F":1, "B":"bbb", "NewField":0}`
	err = JsonUnmarshalStrict([]byte(msg), &actualMsg)
	require.Error(t, err)
}

func TestUnmarshalInline(t *testing.T) {
	cfg := `{"metricsSettings":{"port":9102,"prefix":"netipv4trie_"}}`
	var cfs ConfigFileStruct
	err := yaml.Unmarshal([]byte(cfg), &cfs)
	require.NoError(t, err)
	require.Equal(t, "netipv4trie_", cfs.MetricsSettings.Prefix)
	require.Equal(t, 9102, cfs.MetricsSettings.PromConnectionInfo.Port)

	err = json.Unmarshal([]byte(cfg), &cfs)
	require.NoError(t, err)
	require.Equal(t, "netipv4trie_", cfs.MetricsSettings.Prefix)
	require.Equal(t, 9102, cfs.MetricsSettings.PromConnectionInfo.Port)
}

func TestParseYAML(t *testing.T) {
	cfg, err := ParseYAML([]byte(sampleConfig))
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 9102, cfg.MetricsSettings.Port)
	require.Equal(t, "8080", cfg.Health.Port)
	require.Len(t, cfg.Subnets, 2)
	require.Equal(t, []string{"10.211.213.188/30", "10.211.213.190/31"}, cfg.Subnets[1].CIDRs)
	require.Equal(t, api.LabelRule{Input: "DstAddr", Output: "DstOwners", Select: "all"}, cfg.Rules[1])

	_, err = ParseYAML([]byte("subnets:\n  - nam: typo\n"))
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	// what viper hands over: lower case keys, loosely typed values
	settings := map[string]interface{}{
		"log-level": "info",
		"metricssettings": map[string]interface{}{
			"port":   "9102",
			"prefix": "netipv4trie_",
		},
		"health": map[string]interface{}{"port": 8080},
		"subnets": []interface{}{
			map[interface{}]interface{}{"name": "datacenter", "cidrs": []interface{}{"10.0.0.0/8"}},
		},
		"rules": []interface{}{
			map[string]interface{}{"input": "SrcAddr", "output": "SrcOwner", "excludeexact": "true"},
		},
	}
	cfg, err := Decode(settings)
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 9102, cfg.MetricsSettings.Port)
	require.Equal(t, "netipv4trie_", cfg.MetricsSettings.Prefix)
	require.Equal(t, "8080", cfg.Health.Port)
	require.Equal(t, api.SubnetLabels{{Name: "datacenter", CIDRs: []string{"10.0.0.0/8"}}}, cfg.Subnets)
	require.Equal(t, api.LabelRules{{Input: "SrcAddr", Output: "SrcOwner", ExcludeExact: true}}, cfg.Rules)

	_, err = Decode(map[string]interface{}{"metricssettings": map[string]interface{}{"port": "not a port"}})
	require.Error(t, err)
}

func TestParseConfig_Overrides(t *testing.T) {
	base, err := ParseYAML([]byte(sampleConfig))
	require.NoError(t, err)

	opts := Options{
		Subnets:     `[{"name":"lab","cidrs":["192.168.0.0/16"]}]`,
		Health:      api.Health{Port: "9000"},
		MetricsPort: 9200,
	}
	cfg, err := ParseConfig(&opts, base)
	require.NoError(t, err)
	require.Equal(t, api.SubnetLabels{{Name: "lab", CIDRs: []string{"192.168.0.0/16"}}}, cfg.Subnets)
	require.Equal(t, base.Rules, cfg.Rules)
	require.Equal(t, "9000", cfg.Health.Port)
	require.Equal(t, 9200, cfg.MetricsSettings.Port)
	require.Equal(t, base.MetricsSettings.Prefix, cfg.MetricsSettings.Prefix)

	_, err = ParseConfig(&Options{Rules: `[{"input":"a","bogus":true}]`}, base)
	require.Error(t, err)
}

func TestParseConfig_OverridesKeepTLS(t *testing.T) {
	base, err := ParseYAML([]byte(`
health:
  address: 127.0.0.1
  port: "8080"
lookup:
  address: 127.0.0.1
  port: 9443
  tls:
    type: simple
    certPath: /etc/netipv4trie/cert.pem
    keyPath: /etc/netipv4trie/key.pem
`))
	require.NoError(t, err)

	cfg, err := ParseConfig(&Options{Lookup: api.LookupServer{Port: 9443}, Health: api.Health{Port: "8081"}}, base)
	require.NoError(t, err)
	require.Equal(t, 9443, cfg.Lookup.Port)
	require.Equal(t, "127.0.0.1", cfg.Lookup.Address)
	require.NotNil(t, cfg.Lookup.TLS)
	require.Equal(t, "simple", cfg.Lookup.TLS.Type)
	require.Equal(t, api.Health{Address: "127.0.0.1", Port: "8081"}, cfg.Health)

	cfg, err = ParseConfig(&Options{Lookup: api.LookupServer{Address: "0.0.0.0", Port: 8443}}, base)
	require.NoError(t, err)
	require.Equal(t, api.LookupServer{Address: "0.0.0.0", Port: 8443, TLS: base.Lookup.TLS}, cfg.Lookup)
}

func TestDump(t *testing.T) {
	cfg, err := ParseYAML([]byte(sampleConfig))
	require.NoError(t, err)
	out, err := Dump(&cfg)
	require.NoError(t, err)
	again, err := ParseYAML([]byte(out))
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}
