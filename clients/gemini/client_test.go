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

package gemini

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client := NewClient(Options{APIKey: "test-key"})
	httpmock.ActivateNonDefault(client.HTTPClient().GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func registerModels(t *testing.T, models []map[string]interface{}) {
	t.Helper()
	httpmock.RegisterResponder("GET", "/v1beta/models",
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"models": models,
			})
		},
	)
}

func TestResolveModel(t *testing.T) {
	var tests = []struct {
		name          string
		models        []map[string]interface{}
		expectedModel string
		expectedErr   error
	}{
		{
			"first preference available",
			[]map[string]interface{}{
				{"name": "models/gemini-2.5-flash", "supportedGenerationMethods": []string{"generateContent"}},
				{"name": "models/gemini-2.0-flash", "supportedGenerationMethods": []string{"generateContent"}},
			},
			"models/gemini-2.5-flash",
			nil,
		},
		{
			"first preference lacks generation support",
			[]map[string]interface{}{
				{"name": "models/gemini-2.5-flash", "supportedGenerationMethods": []string{"embedContent"}},
				{"name": "models/gemini-2.0-flash", "supportedGenerationMethods": []string{"generateContent"}},
			},
			"models/gemini-2.0-flash",
			nil,
		},
		{
			"no preferred model available",
			[]map[string]interface{}{
				{"name": "models/gemini-exotic", "supportedGenerationMethods": []string{"generateContent"}},
			},
			"",
			ErrNoModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t)
			registerModels(t, tt.models)

			model, err := client.ResolveModel(context.Background())
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedModel, model)
		})
	}
}

func TestResolveModelIsCached(t *testing.T) {
	client := newTestClient(t)
	registerModels(t, []map[string]interface{}{
		{"name": "models/gemini-2.5-flash", "supportedGenerationMethods": []string{"generateContent"}},
	})

	_, err := client.ResolveModel(context.Background())
	require.NoError(t, err)
	_, err = client.ResolveModel(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestGenerateText(t *testing.T) {
	var tests = []struct {
		statusCode   int
		expectedText string
		hasErr       bool
	}{
		{http.StatusOK, "반팔 티셔츠를 추천해요", false},
		{http.StatusBadRequest, "", true},
		{http.StatusInternalServerError, "", true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.statusCode), func(t *testing.T) {
			client := newTestClient(t)
			registerModels(t, []map[string]interface{}{
				{"name": "models/gemini-2.5-flash", "supportedGenerationMethods": []string{"generateContent"}},
			})
			httpmock.RegisterResponder("POST", "/v1beta/models/gemini-2.5-flash:generateContent",
				func(req *http.Request) (*http.Response, error) {
					if tt.statusCode != http.StatusOK {
						return httpmock.NewJsonResponse(tt.statusCode, map[string]interface{}{
							"error": map[string]interface{}{"code": tt.statusCode, "message": "boom"},
						})
					}
					return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
						"candidates": []map[string]interface{}{
							{"content": map[string]interface{}{
								"role":  "model",
								"parts": []map[string]interface{}{{"text": tt.expectedText}},
							}},
						},
					})
				},
			)

			text, err := client.GenerateText(context.Background(), "prompt", nil)
			if tt.hasErr {
				require.Error(t, err)
				var apiErr *APIError
				assert.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.statusCode, apiErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedText, text)
		})
	}
}

func TestGenerateContentFunctionCalls(t *testing.T) {
	client := newTestClient(t)
	registerModels(t, []map[string]interface{}{
		{"name": "models/gemini-2.5-flash", "supportedGenerationMethods": []string{"generateContent"}},
	})
	httpmock.RegisterResponder("POST", "/v1beta/models/gemini-2.5-flash:generateContent",
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"candidates": []map[string]interface{}{
					{"content": map[string]interface{}{
						"role": "model",
						"parts": []map[string]interface{}{
							{"functionCall": map[string]interface{}{
								"name": "search_and_create_place_block",
								"args": map[string]interface{}{"query": "명동 맛집", "timeTableId": 3},
							}},
						},
					}},
				},
			})
		},
	)

	response, err := client.GenerateContent(context.Background(), GenerateContentRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: "명동 맛집 추가해줘"}}}},
	})
	require.NoError(t, err)

	calls := response.FunctionCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "search_and_create_place_block", calls[0].Name)
	assert.Equal(t, "명동 맛집", calls[0].Args["query"])
}

func TestGenerateContentWithoutKey(t *testing.T) {
	client := NewClient(Options{})
	_, err := client.GenerateContent(context.Background(), GenerateContentRequest{})
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestExtendGenerationConfig(t *testing.T) {
	defaults := DefaultChatGenerationConfig()

	extended := ExtendGenerationConfig(defaults, GenerationConfig{Temperature: float64Ptr(0.2)})
	assert.Equal(t, 0.2, *extended.Temperature)
	assert.Equal(t, 0.95, *extended.TopP)
	assert.Equal(t, 40, *extended.TopK)
	assert.Equal(t, 8192, *extended.MaxOutputTokens)

	// the defaults must be left untouched
	assert.Equal(t, 0.7, *defaults.Temperature)
}
