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
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/netipv4trie/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	buildVersion       = "unknown"
	buildDate          = "unknown"
	cfgFile            string
	logLevel           string
	envPrefix          = "NETIPV4TRIE"
	defaultCfgFileName = ".netipv4trie"
	opts               config.Options
	v                  *viper.Viper
)

// rootCmd represents the root command
var rootCmd = &cobra.Command{
	Use:          "netipv4trie",
	Short:        "Resolve the owners of IPv4 addresses and ranges from declared subnets",
	SilenceUsage: true,
}

// initConfig use config file and ENV variables if set.
func initConfig() {
	v = viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		// Search config in home directory with name ".netipv4trie" (without extension).
		v.AddConfigPath(home)
		v.SetConfigName(defaultCfgFileName)
	}

	// Read environment variables that match prefix
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	cfgErr := v.ReadInConfig()

	bindFlags(rootCmd, v)

	initLogger()

	if cfgErr != nil && cfgFile != "" {
		log.Errorf("Read config error: %v", cfgErr)
	}
}

func initLogger() {
	ll, err := log.ParseLevel(logLevel)
	if err != nil {
		ll = log.ErrorLevel
	}
	log.SetLevel(ll)
	log.SetFormatter(&log.TextFormatter{DisableColors: false, FullTimestamp: true, PadLevelText: true, DisableQuote: true})
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if strings.Contains(f.Name, ".") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, ".", "_"))
			_ = v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix))
		}

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			switch val.(type) {
			case bool, uint, string, int32, int16, int8, int, uint32, uint64, int64, float64, float32:
				_ = cmd.PersistentFlags().Set(f.Name, fmt.Sprintf("%v", val))
			default:
				var jsonNew = jsoniter.ConfigCompatibleWithStandardLibrary
				b, err := jsonNew.Marshal(&val)
				if err != nil {
					log.Fatalf("can't parse flag %s into json with value %v got error %s", f.Name, val, err)
					return
				}
				_ = cmd.PersistentFlags().Set(f.Name, string(b))
			}
		}
	})
}

func initFlags() {
	cobra.OnInitialize(initConfig)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is $HOME/%s)", defaultCfgFileName))
	flags.StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warning, error")
	flags.StringVar(&opts.Health.Address, "health.address", "0.0.0.0", "Health server address")
	flags.StringVar(&opts.Health.Port, "health.port", "8080", "Health server port")
	flags.IntVar(&opts.MetricsPort, "metrics.port", 0, "Prometheus metrics port (default: disabled)")
	flags.StringVar(&opts.Lookup.Address, "lookup.address", "", "Lookup server address")
	flags.IntVar(&opts.Lookup.Port, "lookup.port", 0, "Lookup server port")
	flags.StringVar(&opts.Subnets, "subnets", "", "json of config file subnets field")
	flags.StringVar(&opts.Rules, "rules", "", "json of config file rules field")

	rootCmd.AddCommand(newEncodeCmd(), newLookupCmd(), newLabelCmd(), newServeCmd(), newVersionCmd())
}

// loadConfig merges the config file, the environment and the flags.
func loadConfig() (config.ConfigFileStruct, error) {
	cfg, err := config.Decode(v.AllSettings())
	if err != nil {
		return cfg, err
	}
	return config.ParseConfig(&opts, cfg)
}

func main() {
	initFlags()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
