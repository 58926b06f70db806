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

// Package api assembles the clients and services behind the PlanMate AI
// HTTP API and runs the server.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/planmate/planmate-ai/clients/gemini"
	"github.com/planmate/planmate-ai/clients/openweather"
	"github.com/planmate/planmate-ai/clients/places"
	"github.com/planmate/planmate-ai/services/api/httpserver"
	"github.com/planmate/planmate-ai/services/chat"
	"github.com/planmate/planmate-ai/services/pricing"
	"github.com/planmate/planmate-ai/services/recommendation"
)

var log = logrus.WithField("component", "api")

type Options struct {
	Port              uint
	AllowedOrigins    []string
	Secret            string
	OpenWeatherAPIKey string
	GeminiAPIKey      string
	GeminiAPIURL      string
	PlacesAPIKey      string
	Temperature       float64
}

var DefaultOptions = Options{
	Port: 8010,
	AllowedOrigins: []string{
		"https://www.planmate.site",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	},
	Secret:            "",
	OpenWeatherAPIKey: "",
	GeminiAPIKey:      "",
	GeminiAPIURL:      "",
	PlacesAPIKey:      "",
	Temperature:       0,
}

// newHTTPServer builds the provider clients, the services and the http
// server. Missing provider keys are reported but never prevent the server
// from starting, the affected features degrade at call time instead.
func newHTTPServer(options Options) (*httpserver.Server, error) {
	weatherClient := openweather.NewClient(openweather.Options{
		APIKey: options.OpenWeatherAPIKey,
	})
	geminiClient := gemini.NewClient(gemini.Options{
		APIKey:  options.GeminiAPIKey,
		BaseURL: options.GeminiAPIURL,
	})
	placesClient := places.NewClient(places.Options{
		APIKey: options.PlacesAPIKey,
	})

	if !weatherClient.Available() {
		log.Warning("No OpenWeatherMap API key configured, weather forecasts are unavailable")
	}
	if !geminiClient.Available() {
		log.Warning("No Gemini API key configured, the chatbot and generated texts are unavailable")
	}
	if !placesClient.Available() {
		log.Warning("No Google Places API key configured, the chatbot can't search places")
	}

	generationConfig := gemini.DefaultChatGenerationConfig()
	if options.Temperature > 0 {
		generationConfig = gemini.ExtendGenerationConfig(generationConfig, gemini.GenerationConfig{
			Temperature: &options.Temperature,
		})
	}

	return httpserver.New(
		options.Port,
		recommendation.NewService(weatherClient, geminiClient),
		chat.NewService(geminiClient, placesClient, generationConfig),
		pricing.NewService(geminiClient),
		options.AllowedOrigins,
		options.Secret,
	)
}

func Run(ctx context.Context, options Options) error {
	httpServer, err := newHTTPServer(options)
	if err != nil {
		return err
	}

	group, ctx := errgroup.WithContext(ctx)

	// Start the http server
	group.Go(func() error {
		log.WithField("port", options.Port).Info("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("unexpected error while serving http routes: %v", err)
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		log.Info("Gracefully stopping")

		log.Debug("Stopping the http server")
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(stopCtx); err != nil {
			log.WithField("error", err).Warning("Error while stopping")
		}
		return ctx.Err()
	})

	return group.Wait()
}

// GenerateOpenAPISpec writes the openapi specification of the http api to
// outputFile without starting the service.
func GenerateOpenAPISpec(outputFile string) error {
	httpServer, err := newHTTPServer(DefaultOptions)
	if err != nil {
		return err
	}
	return httpServer.GenerateOpenAPISpec(outputFile)
}
