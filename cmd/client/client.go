// Copyright 2026 PlanMate <dev@planmate.site>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"fmt"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/planmate/planmate-ai/clients/planmate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// clientViper represents the configuration of the `planmate client` command
var clientViper = viper.New()

const (
	clientConfigKey              = "config"
	clientServerURLKey           = "server_url"
	clientAuthTokenKey           = "auth_token"
	clientConsoleOutputFormatKey = "console_output"
	clientTimeoutKey             = "timeout"
	defaultClientTimeout         = 30 * time.Second
)

// ClientCmd represents the `planmate client` command
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Query a running PlanMate AI api service",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(_cmd *cobra.Command, _args []string) error {
		return initConfig()
	},
}

// initConfig reads an optional config file into the client configuration.
func initConfig() error {
	cfgFile := clientViper.GetString(clientConfigKey)
	if cfgFile != "" {
		// The config file given explicitly must be readable
		clientViper.SetConfigFile(cfgFile)
		return clientViper.ReadInConfig()
	}

	home, err := homedir.Dir()
	if err != nil {
		return err
	}

	// Search config in home directory with name ".planmate" (without extension)
	clientViper.AddConfigPath(home)
	clientViper.SetConfigName(".planmate")

	if err := clientViper.ReadInConfig(); err != nil {
		// A missing default config file is fine
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}

// newServiceClient builds a REST client from the shared client flags.
func newServiceClient() *planmate.Client {
	return planmate.NewClient(planmate.Options{
		ServerURL: clientViper.GetString(clientServerURLKey),
		AuthToken: clientViper.GetString(clientAuthTokenKey),
		Timeout:   clientViper.GetDuration(clientTimeoutKey),
	})
}

func init() {
	ClientCmd.PersistentFlags().String(
		clientConfigKey,
		"",
		"Config file (default is $HOME/.planmate.yaml)",
	)

	clientViper.SetDefault(clientServerURLKey, planmate.DefaultOptions.ServerURL)
	_ = clientViper.BindEnv(clientServerURLKey, "PLANMATE_SERVER_URL")
	ClientCmd.PersistentFlags().String(
		clientServerURLKey,
		clientViper.GetString(clientServerURLKey),
		"URL of the PlanMate AI api service",
	)

	clientViper.SetDefault(clientAuthTokenKey, "")
	_ = clientViper.BindEnv(clientAuthTokenKey, "PLANMATE_AUTH_TOKEN")
	ClientCmd.PersistentFlags().String(
		clientAuthTokenKey,
		clientViper.GetString(clientAuthTokenKey),
		"Bearer token sent to the api service, required when it runs with a secret",
	)

	clientViper.SetDefault(clientConsoleOutputFormatKey, string(text))
	_ = clientViper.BindEnv(clientConsoleOutputFormatKey, "PLANMATE_CLIENT_CONSOLE_OUTPUT")
	ClientCmd.PersistentFlags().String(
		clientConsoleOutputFormatKey,
		clientViper.GetString(clientConsoleOutputFormatKey),
		fmt.Sprintf(
			"Set console output format as one of %v",
			expectedOutputFormats,
		),
	)

	clientViper.SetDefault(clientTimeoutKey, defaultClientTimeout)
	_ = clientViper.BindEnv(clientTimeoutKey, "PLANMATE_CLIENT_TIMEOUT")
	ClientCmd.PersistentFlags().Duration(
		clientTimeoutKey,
		clientViper.GetDuration(clientTimeoutKey),
		"Timeout for the operation",
	)

	// Don't sort alphabetically, keep insertion order
	ClientCmd.PersistentFlags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = clientViper.BindPFlags(ClientCmd.PersistentFlags())

	// Add the client subcommands
	ClientCmd.AddCommand(recommendCmd)
	ClientCmd.AddCommand(chatCmd)
	ClientCmd.AddCommand(priceCmd)
	ClientCmd.AddCommand(tokenCmd)
}
