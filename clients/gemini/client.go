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

// Package gemini is a client for the Generative Language REST API. There is
// no official Go SDK for it, the service talks to the documented v1beta
// HTTP surface directly.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "gemini")

const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// PreferredModels is the model preference order, first available wins.
var PreferredModels = []string{
	"models/gemini-2.5-flash",
	"models/gemini-2.0-flash",
	"models/gemini-flash-latest",
}

var (
	// ErrMissingKey is reported before any HTTP call when the client has no
	// API key, callers treat it as "Gemini unavailable".
	ErrMissingKey = errors.New("GEMINI_API_KEY is not set")
	ErrNoModel    = errors.New("no available Gemini model supports content generation")
)

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Gemini API error (http %d)", e.StatusCode)
	}
	return fmt.Sprintf("Gemini API error (http %d): %s", e.StatusCode, e.Message)
}

type Options struct {
	APIKey          string
	BaseURL         string
	PreferredModels []string
	Timeout         time.Duration
}

var DefaultOptions = Options{
	APIKey:          "",
	BaseURL:         DefaultBaseURL,
	PreferredModels: PreferredModels,
	Timeout:         60 * time.Second,
}

type Client struct {
	http            *resty.Client
	apiKey          string
	preferredModels []string

	mu            sync.Mutex
	resolvedModel string
}

func NewClient(options Options) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	preferredModels := options.PreferredModels
	if len(preferredModels) == 0 {
		preferredModels = PreferredModels
	}
	timeout := options.Timeout
	if timeout == 0 {
		timeout = DefaultOptions.Timeout
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(timeout)

	return &Client{
		http:            httpClient,
		apiKey:          options.APIKey,
		preferredModels: preferredModels,
	}
}

// Available reports whether the client is configured to reach the API at all.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// HTTPClient exposes the underlying resty client, for tests.
func (c *Client) HTTPClient() *resty.Client {
	return c.http
}

// ListModels retrieves every model of the v1beta surface, following
// pagination.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	if !c.Available() {
		return nil, ErrMissingKey
	}

	models := []Model{}
	pageToken := ""
	for {
		var page listModelsResponse
		request := c.http.R().
			SetContext(ctx).
			SetQueryParam("key", c.apiKey).
			SetQueryParam("pageSize", "1000").
			SetResult(&page)
		if pageToken != "" {
			request.SetQueryParam("pageToken", pageToken)
		}

		resp, err := request.Get("/v1beta/models")
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, newAPIError(resp)
		}

		models = append(models, page.Models...)
		if page.NextPageToken == "" {
			return models, nil
		}
		pageToken = page.NextPageToken
	}
}

// ResolveModel picks the first preferred model that supports content
// generation. The resolution is cached for the lifetime of the client.
func (c *Client) ResolveModel(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolvedModel != "" {
		return c.resolvedModel, nil
	}

	models, err := c.ListModels(ctx)
	if err != nil {
		return "", err
	}

	available := map[string]bool{}
	for _, model := range models {
		if model.SupportsGenerateContent() {
			available[model.Name] = true
		}
	}

	for _, candidate := range c.preferredModels {
		if available[candidate] {
			log.WithField("model", candidate).Info("Gemini model resolved")
			c.resolvedModel = candidate
			return candidate, nil
		}
	}
	return "", ErrNoModel
}

// GenerateContent resolves a model and runs a generation request against it.
func (c *Client) GenerateContent(
	ctx context.Context,
	request GenerateContentRequest,
) (*GenerateContentResponse, error) {
	if !c.Available() {
		return nil, ErrMissingKey
	}

	model, err := c.ResolveModel(ctx)
	if err != nil {
		return nil, err
	}

	var result GenerateContentResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(request).
		SetResult(&result).
		Post(fmt.Sprintf("/v1beta/%s:generateContent", model))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, newAPIError(resp)
	}
	return &result, nil
}

// GenerateText is the single-prompt shortcut used by the recommendation and
// pricing features.
func (c *Client) GenerateText(
	ctx context.Context,
	prompt string,
	config *GenerationConfig,
) (string, error) {
	response, err := c.GenerateContent(ctx, GenerateContentRequest{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: config,
	})
	if err != nil {
		return "", err
	}
	return response.Text(), nil
}

func newAPIError(resp *resty.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode()}
	var body apiErrorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		apiErr.Message = body.Error.Message
	}
	return apiErr
}
