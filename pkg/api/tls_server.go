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

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/pkg/errors"
)

type ServerTLS struct {
	Type       string `yaml:"type,omitempty" json:"type,omitempty" mapstructure:"type" enum:"TLSTypeEnum" doc:"one of the following:"`
	CertPath   string `yaml:"certPath,omitempty" json:"certPath,omitempty" mapstructure:"certPath" doc:"path to the server certificate"`
	KeyPath    string `yaml:"keyPath,omitempty" json:"keyPath,omitempty" mapstructure:"keyPath" doc:"path to the server private key"`
	CACertPath string `yaml:"caCertPath,omitempty" json:"caCertPath,omitempty" mapstructure:"caCertPath" doc:"path to the CA certificate, required for mTLS"`
}

type TLSTypeEnum struct {
	None   string `yaml:"none" json:"none" doc:"No TLS"`
	Simple string `yaml:"simple" json:"simple" doc:"One-way TLS"`
	Mutual string `yaml:"mutual" json:"mutual" doc:"Mutual TLS"`
}

func TLSTypeName(operation string) string {
	return GetEnumName(TLSTypeEnum{}, operation)
}

// Build returns nil when TLS is not configured.
func (c *ServerTLS) Build() (*tls.Config, error) {
	if c == nil || c.Type == "" || c.Type == TLSTypeName("None") {
		return nil, nil
	}
	if !IsEnumValue(TLSTypeEnum{}, c.Type) {
		return nil, errors.Errorf("unknown TLS type %q", c.Type)
	}
	if c.CertPath == "" {
		return nil, errors.New("certPath must be provided for TLS")
	}
	if c.KeyPath == "" {
		return nil, errors.New("keyPath must be provided for TLS")
	}

	pair, err := tls.LoadX509KeyPair(c.CertPath, c.KeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading server key pair")
	}
	tlsConfig := &tls.Config{
		// TLS clients must use TLS 1.2 or higher
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{pair},
	}

	if c.Type == TLSTypeName("Mutual") {
		caCert, err := os.ReadFile(c.CACertPath)
		if err != nil {
			return nil, errors.Wrap(err, "reading CA certificate")
		}
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
		tlsConfig.ClientCAs = x509.NewCertPool()
		if !tlsConfig.ClientCAs.AppendCertsFromPEM(caCert) {
			return nil, errors.Errorf("no PEM certificate found in %s", c.CACertPath)
		}
	}

	return tlsConfig, nil
}
