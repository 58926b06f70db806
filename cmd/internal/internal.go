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

package internal

import (
	"github.com/planmate/planmate-ai/services/api"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// InternalCmd represents the `planmate internal` command
var InternalCmd = &cobra.Command{
	Use:    "internal",
	Short:  "Run planmate internal commands",
	Args:   cobra.NoArgs,
	Hidden: true,
}

// generateAPISpecViper represents the configuration of the `planmate internal generate_api_spec` command
var generateAPISpecViper = viper.New()

const generateAPISpecOutputKey = "output"

// generateAPISpecCmd represents the `planmate internal generate_api_spec` command
var generateAPISpecCmd = &cobra.Command{
	Use:   "generate_api_spec",
	Short: "Generate the http openapi spec of the api service",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		output := generateAPISpecViper.GetString(generateAPISpecOutputKey)

		return api.GenerateOpenAPISpec(output)
	},
}

func init() {
	generateAPISpecViper.SetDefault(generateAPISpecOutputKey, "./planmate-openapi.json")

	generateAPISpecCmd.PersistentFlags().String(
		generateAPISpecOutputKey,
		generateAPISpecViper.GetString(generateAPISpecOutputKey),
		"Path to the json output file",
	)

	// Don't sort alphabetically, keep insertion order
	generateAPISpecCmd.PersistentFlags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = generateAPISpecViper.BindPFlags(generateAPISpecCmd.PersistentFlags())

	// Add the internal subcommands
	InternalCmd.AddCommand(generateAPISpecCmd)
}
