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
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/netipv4trie/pkg/api"
	"github.com/netobserv/netipv4trie/pkg/config"
	"github.com/netobserv/netipv4trie/pkg/labeler"
	"github.com/netobserv/netipv4trie/pkg/operational"
	"github.com/netobserv/netipv4trie/pkg/prefix"
	"github.com/netobserv/netipv4trie/pkg/prometheus"
	"github.com/netobserv/netipv4trie/pkg/server"
	"github.com/netobserv/netipv4trie/pkg/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const maxLineSize = 1024 * 1024

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <address|cidr>...",
		Short: "Print the trie key of addresses and CIDRs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return encode(cmd.OutOrStdout(), args)
		},
	}
}

func encode(out io.Writer, targets []string) error {
	for _, target := range targets {
		key, err := prefix.Encode(target)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s -> %s (len %d)\n", target, key, key.Len())
	}
	return nil
}

func newLookupCmd() *cobra.Command {
	var inclusive bool
	cmd := &cobra.Command{
		Use:   "lookup <address|cidr>...",
		Short: "Print the owners of addresses and CIDRs, broadest first",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			l, err := labeler.New(cfg.Subnets, nil)
			if err != nil {
				return err
			}
			return lookup(cmd.OutOrStdout(), l, args, inclusive)
		},
	}
	cmd.Flags().BoolVar(&inclusive, "inclusive", false, "also report the owner of exactly the target")
	return cmd
}

func lookup(out io.Writer, l *labeler.Labeler, targets []string, inclusive bool) error {
	for _, target := range targets {
		owners, err := l.Owners(target, inclusive)
		if err != nil {
			return err
		}
		if len(owners) == 0 {
			fmt.Fprintf(out, "%s: -\n", target)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", target, strings.Join(owners, ", "))
	}
	return nil
}

func newLabelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "label",
		Short: "Label JSON flows read line by line from stdin, and write them to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := labeler.ValidateRules(cfg.Rules); err != nil {
				return err
			}
			l, err := labeler.New(cfg.Subnets, nil)
			if err != nil {
				return err
			}
			return label(cmd.InOrStdin(), cmd.OutOrStdout(), l, cfg.Rules)
		},
	}
}

func label(in io.Reader, out io.Writer, l *labeler.Labeler, rules api.LabelRules) error {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	writer := bufio.NewWriter(out)
	defer writer.Flush()
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var flow config.GenericMap
		if err := json.Unmarshal(line, &flow); err != nil {
			log.Warnf("skipping line %d: %v", lineNum, err)
			continue
		}
		l.Transform([]config.GenericMap{flow}, rules)
		encoded, err := json.Marshal(flow)
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNum)
		}
		if _, err := writer.Write(append(encoded, '\n')); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve lookups over HTTP, along with metrics and health endpoints",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\nBuild version: %s\nBuild date: %s\n", filepath.Base(os.Args[0]), buildVersion, buildDate)
		},
	}
}

func dumpConfig(cfg *config.ConfigFileStruct) {
	dump, err := config.Dump(cfg)
	if err != nil {
		panic(fmt.Sprintf("error dumping config: %v", err))
	}
	fmt.Printf("Using configuration:\n%s\n", dump)
}

func serve() error {
	fmt.Printf("Starting %s:\n=====\nBuild version: %s\nBuild date: %s\n\n", filepath.Base(os.Args[0]), buildVersion, buildDate)

	cfg, err := loadConfig()
	if err != nil {
		log.Errorf("error in parsing config file: %v", err)
		return err
	}
	dumpConfig(&cfg)
	if cfg.Lookup.Port == 0 {
		return errors.New("lookup.port must be set to serve lookups")
	}

	// Setup (threads) exit manager
	utils.SetupElegantExit()
	exitChan := make(chan struct{})
	utils.RegisterExitChannel(exitChan)

	promServer := prometheus.InitializePrometheus(&cfg.MetricsSettings)

	var loaded atomic.Bool
	healthServer := operational.NewHealthServer(&cfg.Health,
		func() error { return nil },
		func() error {
			if !loaded.Load() {
				return errors.New("subnets not loaded yet")
			}
			return nil
		})

	var lookupServer *server.Server
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if lookupServer != nil {
			_ = lookupServer.Shutdown(ctx)
		}
		if promServer != nil {
			_ = promServer.Shutdown(ctx)
		}
		_ = healthServer.Shutdown(ctx)
		log.Debugf("exiting serve")
	}()

	l, err := labeler.New(cfg.Subnets, operational.NewMetrics(&cfg.MetricsSettings, nil))
	if err != nil {
		log.Errorf("failed to load subnets: %v", err)
		return err
	}
	loaded.Store(true)

	lookupServer = server.NewServer(&cfg.Lookup, l)
	errs := lookupServer.Start()
	select {
	case <-exitChan:
		log.Info("exit signal received")
		return nil
	case err := <-errs:
		return err
	}
}
