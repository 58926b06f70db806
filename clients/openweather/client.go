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

// Package openweather wraps the OpenWeatherMap 5 day / 3 hour forecast API.
package openweather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultBaseURL is the production OpenWeatherMap endpoint.
	DefaultBaseURL = "http://api.openweathermap.org"

	// MaxForecastDays is how far ahead the free forecast API reaches.
	MaxForecastDays = 4
)

// ErrMissingKey is returned when no API key is configured.
var ErrMissingKey = errors.New("OPENWEATHER_API_KEY가 설정되지 않았습니다")

// ErrPastDate is returned when a forecast is requested for a date in the past.
var ErrPastDate = errors.New("과거 날짜의 날씨는 조회할 수 없습니다")

// ErrNoForecast is returned when the API response holds no slot for the
// requested date.
var ErrNoForecast = errors.New("해당 날짜의 예보를 찾을 수 없습니다")

// ForecastRangeError is returned when the requested date lies beyond the free
// API horizon. Callers are expected to fall back to seasonal averages.
type ForecastRangeError struct {
	DaysAhead int
}

func (e *ForecastRangeError) Error() string {
	return fmt.Sprintf("무료 API는 5일 이내 예보만 제공합니다 (요청: %d일 후)", e.DaysAhead)
}

// CityNotFoundError is returned when OpenWeatherMap doesn't know the city.
type CityNotFoundError struct {
	City string
}

func (e *CityNotFoundError) Error() string {
	return fmt.Sprintf("도시를 찾을 수 없습니다: %s", e.City)
}

// APIError is returned for any other non-200 response.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API 오류: %d", e.StatusCode)
}

// ForecastSlot is a single 3 hour forecast window.
type ForecastSlot struct {
	Time        string  `json:"time"`
	Temp        int     `json:"temp"`
	FeelsLike   int     `json:"feels_like"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

// DailySummary aggregates the slots of one day.
type DailySummary struct {
	Temp        int     `json:"temp"`
	FeelsLike   int     `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
}

// DailyForecast is the forecast for one calendar day.
type DailyForecast struct {
	Slots   []ForecastSlot `json:"forecasts"`
	Summary DailySummary   `json:"summary"`
}

type forecastResponse struct {
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	Dt      int64         `json:"dt"`
	Main    mainInfo      `json:"main"`
	Weather []weatherInfo `json:"weather"`
	Wind    windInfo      `json:"wind"`
}

type mainInfo struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type weatherInfo struct {
	Description string `json:"description"`
}

type windInfo struct {
	Speed float64 `json:"speed"`
}

// Options are the options for the OpenWeatherMap client.
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultOptions are the default options for the OpenWeatherMap client.
var DefaultOptions = Options{
	APIKey:  "",
	BaseURL: DefaultBaseURL,
	Timeout: 10 * time.Second,
}

// Client talks to the OpenWeatherMap forecast API.
type Client struct {
	http   *resty.Client
	apiKey string
	now    func() time.Time
}

// NewClient creates an OpenWeatherMap client from the given options.
func NewClient(options Options) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultOptions.BaseURL
	}
	timeout := options.Timeout
	if timeout == 0 {
		timeout = DefaultOptions.Timeout
	}
	return &Client{
		http:   resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		apiKey: options.APIKey,
		now:    time.Now,
	}
}

// HTTPClient exposes the underlying resty client, mostly for tests.
func (c *Client) HTTPClient() *resty.Client {
	return c.http
}

// Available returns true when the client holds an API key.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// Forecast fetches and aggregates the forecast slots of the given day. The
// city is queried as given, so Korean names should be translated first.
func (c *Client) Forecast(ctx context.Context, city string, targetDate time.Time) (*DailyForecast, error) {
	daysAhead := daysBetween(c.now(), targetDate)
	if daysAhead < 0 {
		return nil, ErrPastDate
	}
	if daysAhead > MaxForecastDays {
		return nil, &ForecastRangeError{DaysAhead: daysAhead}
	}
	if c.apiKey == "" {
		return nil, ErrMissingKey
	}

	var result forecastResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     city,
			"appid": c.apiKey,
			"units": "metric",
			"lang":  "kr",
		}).
		SetResult(&result).
		Get("/data/2.5/forecast")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, &CityNotFoundError{City: city}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode()}
	}

	targetDay := targetDate.Format("2006-01-02")
	var slots []ForecastSlot
	for _, item := range result.List {
		slotTime := time.Unix(item.Dt, 0)
		if slotTime.Format("2006-01-02") != targetDay {
			continue
		}
		description := ""
		if len(item.Weather) > 0 {
			description = item.Weather[0].Description
		}
		slots = append(slots, ForecastSlot{
			Time:        slotTime.Format("15:04"),
			Temp:        roundToInt(item.Main.Temp),
			FeelsLike:   roundToInt(item.Main.FeelsLike),
			Description: description,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
		})
	}
	if len(slots) == 0 {
		return nil, ErrNoForecast
	}

	return &DailyForecast{
		Slots:   slots,
		Summary: summarize(slots),
	}, nil
}

// summarize averages the day's slots. The description is the one appearing
// most often, ties resolved in slot order. Wind is taken from the first slot.
func summarize(slots []ForecastSlot) DailySummary {
	var tempSum, feelsLikeSum, humiditySum int
	counts := map[string]int{}
	mainDescription := slots[0].Description
	for _, slot := range slots {
		tempSum += slot.Temp
		feelsLikeSum += slot.FeelsLike
		humiditySum += slot.Humidity
		counts[slot.Description]++
		if counts[slot.Description] > counts[mainDescription] {
			mainDescription = slot.Description
		}
	}
	count := len(slots)
	return DailySummary{
		Temp:        roundToInt(float64(tempSum) / float64(count)),
		FeelsLike:   roundToInt(float64(feelsLikeSum) / float64(count)),
		Humidity:    roundToInt(float64(humiditySum) / float64(count)),
		Description: mainDescription,
		WindSpeed:   slots[0].WindSpeed,
	}
}

func roundToInt(value float64) int {
	return int(math.Round(value))
}

// daysBetween returns the whole calendar days separating the two dates,
// ignoring the time of day of both.
func daysBetween(from time.Time, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}
