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

	"github.com/planmate/planmate-ai/services/api/httpserver"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tokenViper represents the configuration of the `planmate client token` command
var tokenViper = viper.New()

const (
	tokenSecretKey      = "secret"
	tokenServiceNameKey = "service_name"
)

func init() {
	tokenViper.SetDefault(tokenSecretKey, "")
	_ = tokenViper.BindEnv(tokenSecretKey, "PLANMATE_API_SECRET")
	tokenCmd.Flags().String(
		tokenSecretKey,
		tokenViper.GetString(tokenSecretKey),
		"Secret the api service was started with",
	)

	tokenViper.SetDefault(tokenServiceNameKey, "plan_server")
	tokenCmd.Flags().String(
		tokenServiceNameKey,
		tokenViper.GetString(tokenServiceNameKey),
		"Name of the service the token is issued to",
	)

	// Don't sort alphabetically, keep insertion order
	tokenCmd.Flags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = tokenViper.BindPFlags(tokenCmd.Flags())
}

// tokenCmd represents the `planmate client token` command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a secret protected api service",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		consoleOutputFormat, err := retrieveConsoleOutputFormat()
		if err != nil {
			return err
		}

		secret := tokenViper.GetString(tokenSecretKey)
		if secret == "" {
			return fmt.Errorf("missing required argument \"--%s\"", tokenSecretKey)
		}

		token, err := httpserver.MakeAndSerializeToken(tokenViper.GetString(tokenServiceNameKey), secret)
		if err != nil {
			return err
		}

		switch consoleOutputFormat {
		case text:
			fmt.Println(token)
		case json:
			err := renderJSON(struct {
				Token string `json:"token"`
			}{Token: token})
			if err != nil {
				return err
			}
		}
		return nil
	},
}
