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

package openweather

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.August, 3, 10, 0, 0, 0, time.Local)

func newTestClient(t *testing.T, apiKey string) *Client {
	t.Helper()
	client := NewClient(Options{APIKey: apiKey})
	client.now = func() time.Time { return testNow }
	httpmock.ActivateNonDefault(client.HTTPClient().GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func forecastSlot(day time.Time, hour int, temp float64, feelsLike float64, description string, humidity int, wind float64) map[string]interface{} {
	return map[string]interface{}{
		"dt": time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.Local).Unix(),
		"main": map[string]interface{}{
			"temp":       temp,
			"feels_like": feelsLike,
			"humidity":   humidity,
		},
		"weather": []map[string]interface{}{{"description": description}},
		"wind":    map[string]interface{}{"speed": wind},
	}
}

func TestTranslateCityName(t *testing.T) {
	assert.Equal(t, "Seoul", TranslateCityName("서울"))
	assert.Equal(t, "Ho Chi Minh City", TranslateCityName("호치민"))
	assert.Equal(t, "Reykjavik", TranslateCityName("Reykjavik"))
}

func TestForecastAggregation(t *testing.T) {
	client := newTestClient(t, "test-key")
	targetDay := testNow.AddDate(0, 0, 1)
	otherDay := testNow.AddDate(0, 0, 2)

	httpmock.RegisterResponder("GET", "/data/2.5/forecast",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Seoul", req.URL.Query().Get("q"))
			assert.Equal(t, "metric", req.URL.Query().Get("units"))
			assert.Equal(t, "kr", req.URL.Query().Get("lang"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"list": []map[string]interface{}{
					forecastSlot(targetDay, 9, 21.4, 20.9, "맑음", 50, 3.2),
					forecastSlot(targetDay, 12, 24.6, 24.1, "구름조금", 45, 4.0),
					forecastSlot(targetDay, 15, 23.0, 22.4, "맑음", 55, 2.5),
					forecastSlot(otherDay, 9, 10.0, 9.0, "비", 90, 8.0),
				},
			})
		},
	)

	forecast, err := client.Forecast(context.Background(), "Seoul", targetDay)
	require.NoError(t, err)

	require.Len(t, forecast.Slots, 3)
	assert.Equal(t, 21, forecast.Slots[0].Temp)
	assert.Equal(t, 25, forecast.Slots[1].Temp)

	assert.Equal(t, 23, forecast.Summary.Temp)
	assert.Equal(t, 22, forecast.Summary.FeelsLike)
	assert.Equal(t, 50, forecast.Summary.Humidity)
	assert.Equal(t, "맑음", forecast.Summary.Description)
	assert.Equal(t, 3.2, forecast.Summary.WindSpeed)
}

func TestForecastErrors(t *testing.T) {
	var tests = []struct {
		name       string
		apiKey     string
		daysAhead  int
		statusCode int
		check      func(t *testing.T, err error)
	}{
		{
			"past date", "test-key", -1, http.StatusOK,
			func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrPastDate)
			},
		},
		{
			"beyond forecast range", "test-key", 10, http.StatusOK,
			func(t *testing.T, err error) {
				var rangeErr *ForecastRangeError
				require.ErrorAs(t, err, &rangeErr)
				assert.Equal(t, 10, rangeErr.DaysAhead)
			},
		},
		{
			"missing key", "", 1, http.StatusOK,
			func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMissingKey)
			},
		},
		{
			"unknown city", "test-key", 1, http.StatusNotFound,
			func(t *testing.T, err error) {
				var notFoundErr *CityNotFoundError
				require.ErrorAs(t, err, &notFoundErr)
				assert.Equal(t, "Atlantis", notFoundErr.City)
			},
		},
		{
			"server error", "test-key", 1, http.StatusTooManyRequests,
			func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
			},
		},
		{
			"no slots for the day", "test-key", 1, http.StatusOK,
			func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNoForecast)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.apiKey)
			httpmock.RegisterResponder("GET", "/data/2.5/forecast",
				func(req *http.Request) (*http.Response, error) {
					if tt.statusCode != http.StatusOK {
						return httpmock.NewStringResponse(tt.statusCode, "{}"), nil
					}
					return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
						"list": []map[string]interface{}{},
					})
				},
			)

			_, err := client.Forecast(context.Background(), "Atlantis", testNow.AddDate(0, 0, tt.daysAhead))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}
