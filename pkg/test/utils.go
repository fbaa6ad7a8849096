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
package test

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/netobserv/netipv4trie/pkg/config"
	"github.com/netobserv/netipv4trie/pkg/prefix"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// InitConfig reads a yaml configuration the same way the command line does, through viper.
func InitConfig(t *testing.T, conf string) config.ConfigFileStruct {
	v := viper.New()
	v.SetConfigType("yaml")
	err := v.ReadConfig(bytes.NewReader([]byte(conf)))
	require.NoError(t, err)

	cfg, err := config.Decode(v.AllSettings())
	require.NoError(t, err)
	return cfg
}

// RandomAddr draws an address from 10.0.0.0/20 so that random prefixes overlap often.
func RandomAddr(rnd *rand.Rand) string {
	ip := uint32(10)<<24 | uint32(rnd.Intn(16))<<8 | uint32(rnd.Intn(256))
	return prefix.Uint32ToAddr(ip)
}

// RandomCIDR returns a RandomAddr with a mask between minMask and 32.
func RandomCIDR(rnd *rand.Rand, minMask int) string {
	mask := minMask + rnd.Intn(prefix.MaxBits-minMask+1)
	return fmt.Sprintf("%s/%d", RandomAddr(rnd), mask)
}
