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
	"net"
	"net/http"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/netobserv/netipv4trie/pkg/api"
	log "github.com/sirupsen/logrus"
)

const defaultServerHost = "0.0.0.0"

type Server struct {
	handler healthcheck.Handler
	server  *http.Server
	address string
}

func (hs *Server) serve() {
	for {
		err := hs.server.ListenAndServe()
		if err == http.ErrServerClosed {
			return
		}
		log.Errorf("http.ListenAndServe error %v", err)
		time.Sleep(10 * time.Second)
	}
}

func (hs *Server) Shutdown(ctx context.Context) error {
	return hs.server.Shutdown(ctx)
}

// NewHealthServer exposes /live and /ready. isReady is typically false until the subnets are loaded.
func NewHealthServer(cfg *api.Health, isAlive, isReady healthcheck.Check) *Server {
	handler := healthcheck.NewHandler()
	host := cfg.Address
	if host == "" {
		host = defaultServerHost
	}
	address := net.JoinHostPort(host, cfg.Port)

	handler.AddLivenessCheck("SubnetsCheck", isAlive)
	handler.AddReadinessCheck("SubnetsCheck", isReady)

	server := &Server{
		handler: handler,
		address: address,
		server:  &http.Server{Addr: address, Handler: handler, ReadHeaderTimeout: 10 * time.Second},
	}

	go server.serve()

	return server
}
