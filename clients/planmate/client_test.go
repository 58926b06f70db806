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

package planmate

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/planmate/planmate-ai/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, options Options) *Client {
	t.Helper()
	client := NewClient(options)
	httpmock.ActivateNonDefault(client.HTTPClient().GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func TestInfo(t *testing.T) {
	client := newTestClient(t, Options{})

	httpmock.RegisterResponder("GET", "/",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{
			"message":      "This is the PlanMate AI API",
			"version":      "1.0.0",
			"version_hash": "abcdef",
		}),
	)

	info, err := client.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "This is the PlanMate AI API", info.Message)
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "abcdef", info.VersionHash)
}

func TestAuthTokenHeader(t *testing.T) {
	client := newTestClient(t, Options{AuthToken: "my-token"})

	httpmock.RegisterResponder("GET", "/",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer my-token", req.Header.Get("Authorization"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"message": "This is the PlanMate AI API",
			})
		},
	)

	_, err := client.Info(context.Background())
	require.NoError(t, err)
}

func TestRecommend(t *testing.T) {
	client := newTestClient(t, Options{})

	httpmock.RegisterResponder("POST", "/recommendations",
		func(req *http.Request) (*http.Response, error) {
			var request api.WeatherRecommendationRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&request))
			assert.Equal(t, "서울", request.City)
			assert.Equal(t, "2026-09-01", request.StartDate)
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"weather": []map[string]interface{}{
					{
						"date":        "2026-09-01",
						"description": "맑음",
						"temp_min":    18.0,
						"temp_max":    26.0,
						"feels_like":  24.0,
					},
				},
				"recommendation": "가벼운 긴팔을 추천합니다.",
			})
		},
	)

	recommendation, err := client.Recommend(context.Background(), api.WeatherRecommendationRequest{
		City:      "서울",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-01",
	})
	require.NoError(t, err)
	require.Len(t, recommendation.Weather, 1)
	assert.Equal(t, "맑음", recommendation.Weather[0].Description)
	assert.Equal(t, "가벼운 긴팔을 추천합니다.", recommendation.Recommendation)
}

func TestGenerateChat(t *testing.T) {
	client := newTestClient(t, Options{})

	httpmock.RegisterResponder("POST", "/api/chatbot/generate",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{
			"userMessage": "플랜에 명동교자를 추가했습니다.",
			"hasAction":   true,
			"actions": []map[string]interface{}{
				{
					"action":     "create",
					"targetName": "timeTablePlaceBlock",
					"target":     map[string]interface{}{"placeName": "명동교자"},
				},
			},
		}),
	)

	reply, err := client.GenerateChat(context.Background(), api.ChatRequest{
		PlanID:  42,
		Message: "명동교자 추가해줘",
	})
	require.NoError(t, err)
	assert.True(t, reply.HasAction)
	require.Len(t, reply.Actions, 1)
	assert.Equal(t, "create", reply.Actions[0].Action)
	assert.Equal(t, "timeTablePlaceBlock", reply.Actions[0].TargetName)
	assert.Equal(t, "플랜에 명동교자를 추가했습니다.", reply.UserMessage)
}

func TestPredictPrice(t *testing.T) {
	client := newTestClient(t, Options{})

	httpmock.RegisterResponder("POST", "/price",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{
			"dailyCosts": []map[string]interface{}{},
			"tripSummary": map[string]interface{}{
				"totalFoodCost":  30000,
				"perPersonCost":  map[string]interface{}{"min": 15000, "max": 15000},
				"groupTotalCost": map[string]interface{}{"min": 30000, "max": 30000},
			},
		}),
	)

	prediction, err := client.PredictPrice(context.Background(), api.PricePredictionRequest{
		Headcount: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30000), prediction.TripSummary.TotalFoodCost)
	assert.Equal(t, int64(15000), prediction.TripSummary.PerPersonCost.Min)
}

func TestErrorMessageSurfaced(t *testing.T) {
	client := newTestClient(t, Options{})

	httpmock.RegisterResponder("POST", "/recommendations",
		httpmock.NewJsonResponderOrPanic(http.StatusBadRequest, map[string]interface{}{
			"message": "여행 기간은 1일에서 16일 사이여야 합니다. (요청: 20일)",
		}),
	)

	_, err := client.Recommend(context.Background(), api.WeatherRecommendationRequest{
		City:      "서울",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-20",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "여행 기간은")
}

func TestErrorFallbackOnUnknownBody(t *testing.T) {
	client := newTestClient(t, Options{})

	httpmock.RegisterResponder("GET", "/",
		httpmock.NewStringResponder(http.StatusBadGateway, "<html>bad gateway</html>"),
	)

	_, err := client.Info(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response from the server")
}
