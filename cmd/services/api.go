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

package services

import (
	"context"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/planmate/planmate-ai/cmd/services/utils"
	"github.com/planmate/planmate-ai/services/api"
	"github.com/planmate/planmate-ai/version"
)

// apiViper represents the configuration of the api command
var apiViper = viper.New()

const apiPortKey = "port"
const apiPortEnv = "PORT"
const apiAllowedOriginsKey = "allowed_origins"
const apiAllowedOriginsEnv = "PLANMATE_ALLOWED_ORIGINS"
const apiSecretKey = "secret"
const apiSecretEnv = "PLANMATE_API_SECRET"
const apiOpenWeatherKeyKey = "openweather_api_key"
const apiOpenWeatherKeyEnv = "OPENWEATHER_API_KEY"
const apiGeminiKeyKey = "gemini_api_key"
const apiGeminiKeyEnv = "GEMINI_API_KEY"
const apiGeminiURLKey = "gemini_api_url"
const apiGeminiURLEnv = "GEMINI_API_URL"
const apiPlacesKeyKey = "places_api_key"
const apiPlacesKeyEnv = "GOOGLE_PLACES_API_KEY"
const apiTemperatureKey = "temperature"
const apiTemperatureEnv = "PLANMATE_GENERATION_TEMPERATURE"

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the PlanMate AI api",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		err := configureLog(servicesViper)
		if err != nil {
			return err
		}

		// Optional .env next to the binary, values already present in the
		// environment win.
		if err := godotenv.Load(); err == nil {
			log.Debug("Loaded environment from .env")
		}

		log.WithFields(logrus.Fields{
			"version": version.Version,
			"hash":    version.Hash,
		}).Info("starting the api service")

		options := api.Options{
			Port:              apiViper.GetUint(apiPortKey),
			AllowedOrigins:    parseAllowedOrigins(apiViper.GetString(apiAllowedOriginsKey)),
			Secret:            apiViper.GetString(apiSecretKey),
			OpenWeatherAPIKey: apiViper.GetString(apiOpenWeatherKeyKey),
			GeminiAPIKey:      apiViper.GetString(apiGeminiKeyKey),
			GeminiAPIURL:      apiViper.GetString(apiGeminiURLKey),
			PlacesAPIKey:      apiViper.GetString(apiPlacesKeyKey),
			Temperature:       apiViper.GetFloat64(apiTemperatureKey),
		}

		ctx := utils.ContextWithUserTermination(context.Background())

		err = api.Run(ctx, options)
		if err != nil {
			if err == context.Canceled {
				log.Info("interrupted by user")
				return nil
			}
			return err
		}
		return nil
	},
}

func parseAllowedOrigins(origins string) []string {
	var parsed []string
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			parsed = append(parsed, origin)
		}
	}
	return parsed
}

func init() {
	apiViper.SetDefault(apiPortKey, api.DefaultOptions.Port)
	_ = apiViper.BindEnv(apiPortKey, apiPortEnv)
	apiCmd.Flags().Uint(
		apiPortKey,
		apiViper.GetUint(apiPortKey),
		"The http port to listen on",
	)

	apiViper.SetDefault(apiAllowedOriginsKey, strings.Join(api.DefaultOptions.AllowedOrigins, ","))
	_ = apiViper.BindEnv(apiAllowedOriginsKey, apiAllowedOriginsEnv)
	apiCmd.Flags().String(
		apiAllowedOriginsKey,
		apiViper.GetString(apiAllowedOriginsKey),
		"Comma separated list of origins allowed to call the API from a browser",
	)

	apiViper.SetDefault(apiSecretKey, api.DefaultOptions.Secret)
	_ = apiViper.BindEnv(apiSecretKey, apiSecretEnv)
	apiCmd.Flags().String(
		apiSecretKey,
		apiViper.GetString(apiSecretKey),
		"Secret used to verify service bearer tokens, leave empty to disable authentication",
	)

	apiViper.SetDefault(apiOpenWeatherKeyKey, api.DefaultOptions.OpenWeatherAPIKey)
	_ = apiViper.BindEnv(apiOpenWeatherKeyKey, apiOpenWeatherKeyEnv)
	apiCmd.Flags().String(
		apiOpenWeatherKeyKey,
		apiViper.GetString(apiOpenWeatherKeyKey),
		"OpenWeatherMap API key",
	)

	apiViper.SetDefault(apiGeminiKeyKey, api.DefaultOptions.GeminiAPIKey)
	_ = apiViper.BindEnv(apiGeminiKeyKey, apiGeminiKeyEnv)
	apiCmd.Flags().String(
		apiGeminiKeyKey,
		apiViper.GetString(apiGeminiKeyKey),
		"Gemini API key",
	)

	apiViper.SetDefault(apiGeminiURLKey, api.DefaultOptions.GeminiAPIURL)
	_ = apiViper.BindEnv(apiGeminiURLKey, apiGeminiURLEnv)
	apiCmd.Flags().String(
		apiGeminiURLKey,
		apiViper.GetString(apiGeminiURLKey),
		"Gemini API base URL, keep empty for the public endpoint",
	)

	apiViper.SetDefault(apiPlacesKeyKey, api.DefaultOptions.PlacesAPIKey)
	_ = apiViper.BindEnv(apiPlacesKeyKey, apiPlacesKeyEnv)
	apiCmd.Flags().String(
		apiPlacesKeyKey,
		apiViper.GetString(apiPlacesKeyKey),
		"Google Places API key",
	)

	apiViper.SetDefault(apiTemperatureKey, api.DefaultOptions.Temperature)
	_ = apiViper.BindEnv(apiTemperatureKey, apiTemperatureEnv)
	apiCmd.Flags().Float64(
		apiTemperatureKey,
		apiViper.GetFloat64(apiTemperatureKey),
		"Generation temperature override for the chatbot model",
	)

	// Don't sort alphabetically, keep insertion order
	apiCmd.Flags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = apiViper.BindPFlags(apiCmd.Flags())
}
