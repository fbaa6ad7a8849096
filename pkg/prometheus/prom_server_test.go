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
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/netobserv/netipv4trie/pkg/api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestInitializePrometheus_Disabled(t *testing.T) {
	require.Nil(t, InitializePrometheus(&api.MetricsSettings{}))
}

func TestStartServer(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "netipv4trie_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Add(5)

	settings := api.MetricsSettings{PromConnectionInfo: api.PromConnectionInfo{Address: "127.0.0.1", Port: 9190}}
	srv := StartServer(&settings, reg)
	defer func() { _ = srv.Shutdown(context.Background()) }()

	serverURL := "http://127.0.0.1:9190"
	httpClient := &http.Client{}

	// wait for our test http server to come up
	checkHTTPReady(httpClient, serverURL)

	resp, err := httpClient.Get(serverURL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(bodyBytes), "netipv4trie_test_total 5")
}

func checkHTTPReady(httpClient *http.Client, url string) {
	for i := 0; i < 60; i++ {
		if r, err := httpClient.Get(url); err == nil {
			r.Body.Close()
			break
		}
		time.Sleep(time.Second)
	}
}
