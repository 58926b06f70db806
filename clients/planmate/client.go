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

// Package planmate is a REST client of the PlanMate AI HTTP API, it backs
// the `planmate client` commands.
package planmate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/planmate/planmate-ai/api"
)

// DefaultServerURL is where a locally started api service listens.
const DefaultServerURL = "http://localhost:8010"

// Options are the options for the PlanMate AI client.
type Options struct {
	ServerURL string
	AuthToken string
	Timeout   time.Duration
}

// DefaultOptions are the default options for the PlanMate AI client.
var DefaultOptions = Options{
	ServerURL: DefaultServerURL,
	AuthToken: "",
	Timeout:   30 * time.Second,
}

// Client talks to a running PlanMate AI api service.
type Client struct {
	http *resty.Client
}

// NewClient creates a PlanMate AI client from the given options.
func NewClient(options Options) *Client {
	serverURL := options.ServerURL
	if serverURL == "" {
		serverURL = DefaultOptions.ServerURL
	}
	timeout := options.Timeout
	if timeout == 0 {
		timeout = DefaultOptions.Timeout
	}
	httpClient := resty.New().SetBaseURL(serverURL).SetTimeout(timeout)
	if options.AuthToken != "" {
		// Sends `Authorization: Bearer <token>` on every request
		httpClient.SetAuthToken(options.AuthToken)
	}
	return &Client{http: httpClient}
}

// HTTPClient exposes the underlying resty client, mostly for tests.
func (c *Client) HTTPClient() *resty.Client {
	return c.http
}

// Info is the identity of the server, returned by its root route.
type Info struct {
	Message     string `json:"message"`
	Version     string `json:"version"`
	VersionHash string `json:"version_hash"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// responseError surfaces the `message` of an error body, falling back to the
// http status when the body is not one of ours.
func responseError(resp *resty.Response) error {
	var body errorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		return fmt.Errorf("%s", body.Message)
	}
	return fmt.Errorf("unexpected response from the server (%s)", resp.Status())
}

// Info retrieves the identity of the server.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&Info{}).
		Get("/")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, responseError(resp)
	}
	return resp.Result().(*Info), nil
}

// Recommend requests the per-day weather and outfit recommendation of a trip.
func (c *Client) Recommend(
	ctx context.Context,
	request api.WeatherRecommendationRequest,
) (*api.WeatherRecommendationResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&api.WeatherRecommendationResponse{}).
		Post("/recommendations")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, responseError(resp)
	}
	return resp.Result().(*api.WeatherRecommendationResponse), nil
}

// GenerateChat runs one chatbot turn.
func (c *Client) GenerateChat(ctx context.Context, request api.ChatRequest) (*api.ChatActionResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&api.ChatActionResponse{}).
		Post("/api/chatbot/generate")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, responseError(resp)
	}
	return resp.Result().(*api.ChatActionResponse), nil
}

// PredictPrice requests the cost prediction of a plan.
func (c *Client) PredictPrice(
	ctx context.Context,
	request api.PricePredictionRequest,
) (*api.PricePredictionResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&api.PricePredictionResponse{}).
		Post("/price")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, responseError(resp)
	}
	return resp.Result().(*api.PricePredictionResponse), nil
}
