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

// Package server exposes the subnet labeler over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/netipv4trie/pkg/api"
	"github.com/netobserv/netipv4trie/pkg/labeler"
	"github.com/netobserv/netipv4trie/pkg/prefix"
	"github.com/sirupsen/logrus"
)

var (
	slog = logrus.WithField("component", "server")
	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

type AncestorsResponse struct {
	Target string   `json:"target"`
	Key    string   `json:"key"`
	Owners []string `json:"owners"`
}

type EncodeResponse struct {
	Target string `json:"target"`
	Key    string `json:"key"`
	Length int    `json:"length"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server answers lookups from many goroutines at once; the labeler is never modified after New.
type Server struct {
	cfg        *api.LookupServer
	labeler    *labeler.Labeler
	httpServer *http.Server
}

func NewServer(cfg *api.LookupServer, l *labeler.Labeler) *Server {
	s := &Server{cfg: cfg, labeler: l}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ancestors", s.ancestors)
	mux.HandleFunc("GET /encode", s.encode)
	mux.HandleFunc("GET /subnets", s.subnets)
	return mux
}

// Start listens in the background. Errors other than a shutdown are reported on the returned channel.
func (s *Server) Start() <-chan error {
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		tlsConfig, err := s.cfg.TLS.Build()
		if err != nil {
			errs <- err
			return
		}
		slog.Infof("lookup server listening on %s", s.httpServer.Addr)
		if tlsConfig != nil {
			s.httpServer.TLSConfig = tlsConfig
			err = s.httpServer.ListenAndServeTLS(s.cfg.TLS.CertPath, s.cfg.TLS.KeyPath)
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			slog.Errorf("lookup server: %v", err)
			errs <- err
		}
	}()
	return errs
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) ancestors(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	inclusive := false
	if raw := r.URL.Query().Get("inclusive"); raw != "" {
		var err error
		if inclusive, err = strconv.ParseBool(raw); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "inclusive: " + err.Error()})
			return
		}
	}
	key, err := prefix.Encode(target)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	owners := s.labeler.OwnersOfKey(key, inclusive)
	if owners == nil {
		owners = []string{}
	}
	writeJSON(w, http.StatusOK, AncestorsResponse{Target: target, Key: key.String(), Owners: owners})
}

func (s *Server) encode(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	key, err := prefix.Encode(target)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, EncodeResponse{Target: target, Key: key.String(), Length: key.Len()})
}

func (s *Server) subnets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.labeler.Subnets())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Errorf("can't marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Debugf("can't write response: %v", err)
	}
}
