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
	"bytes"
	"encoding/json"

	"github.com/mitchellh/mapstructure"
	"github.com/netobserv/netipv4trie/pkg/api"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Options are the command line overrides. Subnets and Rules hold JSON, the same way
// they would appear in the config file.
type Options struct {
	Subnets     string
	Rules       string
	Health      api.Health
	Lookup      api.LookupServer
	MetricsPort int
}

type ConfigFileStruct struct {
	LogLevel        string              `yaml:"log-level,omitempty" json:"log-level,omitempty" mapstructure:"log-level"`
	MetricsSettings api.MetricsSettings `yaml:"metricsSettings,omitempty" json:"metricsSettings,omitempty" mapstructure:"metricsSettings"`
	Health          api.Health          `yaml:"health,omitempty" json:"health,omitempty" mapstructure:"health"`
	Lookup          api.LookupServer    `yaml:"lookup,omitempty" json:"lookup,omitempty" mapstructure:"lookup"`
	Subnets         api.SubnetLabels    `yaml:"subnets,omitempty" json:"subnets,omitempty" mapstructure:"subnets"`
	Rules           api.LabelRules      `yaml:"rules,omitempty" json:"rules,omitempty" mapstructure:"rules"`
}

// Decode builds the configuration from loosely typed settings, such as the ones collected by viper
// from the config file, the environment and the flags.
func Decode(settings map[string]interface{}) (ConfigFileStruct, error) {
	var cfg ConfigFileStruct
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
		TagName:          "mapstructure",
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(settings); err != nil {
		return cfg, errors.Wrap(err, "decoding configuration")
	}
	logrus.Debugf("decoded configuration: %d subnets, %d rules", len(cfg.Subnets), len(cfg.Rules))
	return cfg, nil
}

// ParseConfig applies the command line overrides on top of cfg.
func ParseConfig(opts *Options, cfg ConfigFileStruct) (ConfigFileStruct, error) {
	if opts.Subnets != "" {
		logrus.Debugf("opts.Subnets = %v ", opts.Subnets)
		var subnets api.SubnetLabels
		if err := JsonUnmarshalStrict([]byte(opts.Subnets), &subnets); err != nil {
			logrus.Errorf("error when parsing subnets: %v", err)
			return cfg, errors.Wrap(err, "parsing subnets")
		}
		cfg.Subnets = subnets
	}
	if opts.Rules != "" {
		logrus.Debugf("opts.Rules = %v ", opts.Rules)
		var rules api.LabelRules
		if err := JsonUnmarshalStrict([]byte(opts.Rules), &rules); err != nil {
			logrus.Errorf("error when parsing rules: %v", err)
			return cfg, errors.Wrap(err, "parsing rules")
		}
		cfg.Rules = rules
	}
	// only the fields that have a flag are overridden, TLS settings come from the file
	if opts.Health.Address != "" {
		cfg.Health.Address = opts.Health.Address
	}
	if opts.Health.Port != "" {
		cfg.Health.Port = opts.Health.Port
	}
	if opts.Lookup.Address != "" {
		cfg.Lookup.Address = opts.Lookup.Address
	}
	if opts.Lookup.Port != 0 {
		cfg.Lookup.Port = opts.Lookup.Port
	}
	if opts.MetricsPort != 0 {
		cfg.MetricsSettings.Port = opts.MetricsPort
	}
	return cfg, nil
}

// ParseYAML reads a whole configuration file; unknown fields are rejected.
func ParseYAML(data []byte) (ConfigFileStruct, error) {
	var cfg ConfigFileStruct
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "reading yaml configuration")
	}
	return cfg, nil
}

// Dump renders the configuration as yaml.
func Dump(cfg *ConfigFileStruct) (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// JsonUnmarshalStrict is like Unmarshal except that any fields that are found
// in the data that do not have corresponding struct members, or mapping
// keys that are duplicates, will result in an error.
func JsonUnmarshalStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
