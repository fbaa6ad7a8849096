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
package prometheus

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/netobserv/netipv4trie/pkg/api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var plog = logrus.WithField("component", "prometheus")

// InitializePrometheus starts the global metrics server, unless no port is configured,
// in which case it returns nil.
func InitializePrometheus(settings *api.MetricsSettings) *http.Server {
	if settings.Port == 0 {
		plog.Info("metrics server disabled")
		return nil
	}
	return StartServer(settings, prometheus.DefaultGatherer)
}

// StartServer listens for prometheus resource usage requests in the background.
func StartServer(settings *api.MetricsSettings, gatherer prometheus.Gatherer) *http.Server {
	// if value of address is empty, then by default it will take 0.0.0.0
	addr := fmt.Sprintf("%s:%v", settings.Address, settings.Port)
	plog.Infof("StartServer: addr = %s", addr)

	mux := http.NewServeMux()
	// The Handler function provides a default handler to expose metrics
	// via an HTTP server. "/metrics" is the usual endpoint for that.
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		tlsConfig, err := settings.TLS.Build()
		if err != nil {
			plog.Errorf("error getting TLS configuration: %v", err)
			if !settings.NoPanic {
				os.Exit(1)
			}
			return
		}
		if tlsConfig != nil {
			httpServer.TLSConfig = tlsConfig
			err = httpServer.ListenAndServeTLS(settings.TLS.CertPath, settings.TLS.KeyPath)
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			plog.Errorf("error in http.ListenAndServe: %v", err)
			if !settings.NoPanic {
				os.Exit(1)
			}
		}
	}()

	return httpServer
}
