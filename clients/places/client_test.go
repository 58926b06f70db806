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

package places

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

func registerSearch(t *testing.T, status string, names ...string) {
	t.Helper()
	results := make([]map[string]interface{}, 0, len(names))
	for i, name := range names {
		results = append(results, map[string]interface{}{
			"place_id":          name + "-id",
			"name":              name,
			"rating":            4.0 + float64(i)/10,
			"formatted_address": "서울특별시 어딘가 " + name,
			"geometry": map[string]interface{}{
				"location": map[string]interface{}{"lat": 37.5 + float64(i), "lng": 127.0 + float64(i)},
			},
		})
	}
	httpmock.RegisterResponder("GET", "/maps/api/place/textsearch/json",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "ko", req.URL.Query().Get("language"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"status":  status,
				"results": results,
			})
		},
	)
}

func TestTextSearch(t *testing.T) {
	client := newTestClient(t)
	registerSearch(t, "OK", "경복궁", "창덕궁")

	places, err := client.TextSearch(context.Background(), "서울 관광지")
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "경복궁", places[0].Name)
	assert.Equal(t, "경복궁-id", places[0].ID)
	assert.Equal(t, "https://www.google.com/maps/place/?q=place_id:경복궁-id", places[0].Link)
	assert.Equal(t, 127.0, places[0].Longitude)
	assert.Equal(t, 37.5, places[0].Latitude)
}

func TestTextSearchNoResults(t *testing.T) {
	var tests = []struct {
		name   string
		status string
	}{
		{"zero results status", "ZERO_RESULTS"},
		{"ok status without hits", "OK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t)
			registerSearch(t, tt.status)

			_, err := client.TextSearch(context.Background(), "아무데나")
			assert.ErrorIs(t, err, ErrNoResults)
		})
	}
}

func TestSearchResultIndex(t *testing.T) {
	var tests = []struct {
		name         string
		resultIndex  int
		expectedName string
	}{
		{"first result", 0, "경복궁"},
		{"second result", 1, "창덕궁"},
		{"index clamped to last", 5, "창덕궁"},
		{"negative index clamped to first", -1, "경복궁"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t)
			registerSearch(t, "OK", "경복궁", "창덕궁")

			place, err := client.Search(context.Background(), "서울 관광지", tt.resultIndex)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedName, place.Name)
		})
	}
}

func TestSearchWithoutKey(t *testing.T) {
	client := NewClient(Options{})
	_, err := client.Search(context.Background(), "서울 관광지", 0)
	assert.ErrorIs(t, err, ErrMissingKey)
}
