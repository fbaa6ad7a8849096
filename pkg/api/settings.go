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

type PromConnectionInfo struct {
	Address string     `yaml:"address,omitempty" json:"address,omitempty" mapstructure:"address" doc:"endpoint address to expose"`
	Port    int        `yaml:"port,omitempty" json:"port,omitempty" mapstructure:"port" doc:"endpoint port number to expose, 0 disables the server"`
	TLS     *ServerTLS `yaml:"tls,omitempty" json:"tls,omitempty" mapstructure:"tls" doc:"TLS configuration for the endpoint"`
}

type MetricsSettings struct {
	PromConnectionInfo `yaml:",inline" json:",inline" mapstructure:",squash"`
	Prefix             string `yaml:"prefix,omitempty" json:"prefix,omitempty" mapstructure:"prefix" doc:"prefix for names of the operational metrics"`
	NoPanic            bool   `yaml:"noPanic,omitempty" json:"noPanic,omitempty" mapstructure:"noPanic" doc:"keep running when the metrics server fails"`
}

type Health struct {
	Address string `yaml:"address,omitempty" json:"address,omitempty" mapstructure:"address" doc:"health server address"`
	Port    string `yaml:"port,omitempty" json:"port,omitempty" mapstructure:"port" doc:"health server port"`
}

type LookupServer struct {
	Address string     `yaml:"address,omitempty" json:"address,omitempty" mapstructure:"address" doc:"lookup server address"`
	Port    int        `yaml:"port,omitempty" json:"port,omitempty" mapstructure:"port" doc:"lookup server port"`
	TLS     *ServerTLS `yaml:"tls,omitempty" json:"tls,omitempty" mapstructure:"tls" doc:"TLS configuration for the lookup server"`
}
