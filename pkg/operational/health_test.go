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
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/netobserv/netipv4trie/pkg/api"
	"github.com/stretchr/testify/require"
)

const (
	livePath  = "/live"
	readyPath = "/ready"
)

func TestNewHealthServer(t *testing.T) {
	type args struct {
		ready bool
		port  string
	}
	type want struct {
		statusCode int
	}

	tests := []struct {
		name string
		args args
		want want
	}{
		{name: "subnets loaded", args: args{ready: true, port: "7000"}, want: want{statusCode: 200}},
		{name: "subnets not loaded", args: args{ready: false, port: "7001"}, want: want{statusCode: 503}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := func() error {
				if !tt.args.ready {
					return errors.New("not ready")
				}
				return nil
			}
			server := NewHealthServer(&api.Health{Port: tt.args.port}, check, check)
			require.NotNil(t, server)
			expectedAddr := fmt.Sprintf("0.0.0.0:%s", tt.args.port)
			require.Equal(t, expectedAddr, server.address)

			client := &http.Client{}

			time.Sleep(time.Second)
			readyURL := url.URL{Scheme: "http", Host: expectedAddr, Path: readyPath}
			resp, err := client.Get(readyURL.String())
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, tt.want.statusCode, resp.StatusCode)

			liveURL := url.URL{Scheme: "http", Host: expectedAddr, Path: livePath}
			resp, err = client.Get(liveURL.String())
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, tt.want.statusCode, resp.StatusCode)

			require.NoError(t, server.Shutdown(context.Background()))
		})
	}
}
