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
package utils

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"
)

var (
	registeredChannels []chan struct{}
	chanMutex          sync.Mutex
)

// RegisterExitChannel makes ch closed when the process receives SIGINT or SIGTERM.
func RegisterExitChannel(ch chan struct{}) {
	chanMutex.Lock()
	defer chanMutex.Unlock()
	registeredChannels = append(registeredChannels, ch)
}

// SetupElegantExit must be called before any RegisterExitChannel.
func SetupElegantExit() {
	log.Debugf("entering SetupElegantExit")
	chanMutex.Lock()
	registeredChannels = make([]chan struct{}, 0)
	chanMutex.Unlock()

	exitSigChan := make(chan os.Signal, 1)
	signal.Notify(exitSigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-exitSigChan
		log.Debugf("received exit signal = %v", sig)
		chanMutex.Lock()
		defer chanMutex.Unlock()
		for _, ch := range registeredChannels {
			close(ch)
		}
		registeredChannels = nil
	}()
}
