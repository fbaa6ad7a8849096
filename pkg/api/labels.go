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

package api

type SubnetLabel struct {
	Name  string   `yaml:"name" json:"name" mapstructure:"name" doc:"name of the owner, written to the flows"`
	CIDRs []string `yaml:"cidrs" json:"cidrs" mapstructure:"cidrs" doc:"list of addresses or CIDRs (e.g. 10.0.0.0/8) owned by this name"`
}

type SubnetLabels []SubnetLabel

type LabelSelectEnum struct {
	Longest  string `yaml:"longest" json:"longest" doc:"most specific owner (longest prefix match)"`
	Broadest string `yaml:"broadest" json:"broadest" doc:"least specific owner"`
	All      string `yaml:"all" json:"all" doc:"every owner, broadest first"`
}

func LabelSelectName(operation string) string {
	return GetEnumName(LabelSelectEnum{}, operation)
}

type LabelRule struct {
	Input        string `yaml:"input" json:"input" mapstructure:"input" doc:"entry input field, holding an IP address or a CIDR"`
	Output       string `yaml:"output" json:"output" mapstructure:"output" doc:"entry output field"`
	Select       string `yaml:"select,omitempty" json:"select,omitempty" mapstructure:"select" enum:"LabelSelectEnum" doc:"(default: longest) one of the following:"`
	ExcludeExact bool   `yaml:"excludeExact,omitempty" json:"excludeExact,omitempty" mapstructure:"excludeExact" doc:"only consider strict supernets of the input, ignoring an owner declared for exactly that address or range"`
}

type LabelRules []LabelRule
