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

const TagYaml = "yaml"
const TagDoc = "doc"
const TagEnum = "enum"

// Note: items beginning with doc: "## title" are top level items that get divided into sections inside api.md.

type API struct {
	SubnetLabels    SubnetLabels    `yaml:"subnets" doc:"## Subnet labels API\nFollowing is the supported API format for declaring subnet owners:\n"`
	LabelRules      LabelRules      `yaml:"rules" doc:"## Label rules API\nFollowing is the supported API format for labeling flows with subnet owners:\n"`
	MetricsSettings MetricsSettings `yaml:"metricsSettings" doc:"## Metrics settings API\nFollowing is the supported API format for the operational metrics:\n"`
	Health          Health          `yaml:"health" doc:"## Health API\nFollowing is the supported API format for the health server:\n"`
	Lookup          LookupServer    `yaml:"lookup" doc:"## Lookup server API\nFollowing is the supported API format for the HTTP lookup server:\n"`
}
