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

// Package recommendation turns a trip's weather into outfit advice.
package recommendation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"github.com/planmate/planmate-ai/api"
	"github.com/planmate/planmate-ai/clients/gemini"
	"github.com/planmate/planmate-ai/clients/openweather"
)

var log = logrus.WithField("component", "recommendation")

// MaxTripDays bounds the accepted trip length.
const MaxTripDays = 16

// InvalidRequestError reports a request the caller can fix. The message is
// in Korean because it travels to the end user unchanged.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string {
	return e.Message
}

// Service generates per-day weather and outfit recommendations.
type Service struct {
	weather *openweather.Client
	gemini  *gemini.Client
}

// NewService creates a recommendation service backed by the given clients.
func NewService(weatherClient *openweather.Client, geminiClient *gemini.Client) *Service {
	return &Service{weather: weatherClient, gemini: geminiClient}
}

// daySummary is one day of weather, normalized over the forecast and the
// seasonal fallback.
type daySummary struct {
	Description string
	Temp        float64
	TempMin     float64
	TempMax     float64
	FeelsLike   float64
	Humidity    int
}

// Generate fetches the weather of every trip day and produces the outfit
// recommendation, preferring Gemini and falling back to the temperature
// rules when it is unavailable or fails.
func (s *Service) Generate(ctx context.Context, request *api.WeatherRecommendationRequest) (*api.WeatherRecommendationResponse, error) {
	startDate, startErr := time.Parse("2006-01-02", request.StartDate)
	endDate, endErr := time.Parse("2006-01-02", request.EndDate)
	if startErr != nil || endErr != nil {
		parseErr := startErr
		if parseErr == nil {
			parseErr = endErr
		}
		return nil, &InvalidRequestError{
			Message: fmt.Sprintf("잘못된 날짜 형식입니다: %s. 'YYYY-MM-DD' 형식을 사용해야 합니다.", parseErr),
		}
	}

	duration := int(endDate.Sub(startDate).Hours()/24) + 1
	if duration <= 0 || duration > MaxTripDays {
		return nil, &InvalidRequestError{
			Message: fmt.Sprintf("여행 기간은 1일에서 %d일 사이여야 합니다. (요청: %d일)", MaxTripDays, duration),
		}
	}

	destination := openweather.TranslateCityName(request.City)

	var dailyWeather []api.SimpleWeatherInfo
	var summaries []daySummary
	var report strings.Builder
	fmt.Fprintf(&report, "여행지: %s\n여행 기간: %s ~ %s\n날씨 예보:\n",
		destination, request.StartDate, request.EndDate)

	for offset := 0; offset < duration; offset++ {
		targetDate := startDate.AddDate(0, 0, offset)
		dateStr := targetDate.Format("2006-01-02")

		summary, err := s.daySummary(ctx, destination, targetDate)
		if err != nil {
			return nil, fmt.Errorf("%s 날씨 정보를 가져올 수 없습니다: %w", dateStr, err)
		}
		summaries = append(summaries, *summary)

		info := api.SimpleWeatherInfo{
			Date:        dateStr,
			Description: summary.Description,
			TempMin:     summary.TempMin,
			TempMax:     summary.TempMax,
			FeelsLike:   summary.FeelsLike,
		}
		dailyWeather = append(dailyWeather, info)

		fmt.Fprintf(&report, "- %s: %s, 기온 %.1f°C ~ %.1f°C, 체감 %.1f°C\n",
			dateStr, info.Description, info.TempMin, info.TempMax, info.FeelsLike)
	}

	recommendationText := ""
	if s.gemini.Available() {
		text, err := s.gemini.GenerateText(ctx, outfitPrompt(report.String()), nil)
		if err != nil {
			log.WithField("error", err).Warn("outfit generation failed, falling back to rules")
		} else {
			recommendationText = strings.TrimSpace(text)
		}
	}
	if recommendationText == "" {
		first := summaries[0]
		recommendationText = ruleBasedOutfit((first.TempMin+first.TempMax)/2, first.Description, first.Humidity)
	}

	return &api.WeatherRecommendationResponse{
		Weather:        dailyWeather,
		Recommendation: recommendationText,
	}, nil
}

// daySummary resolves one day of weather. Days beyond the forecast horizon
// get seasonal averages instead of an error.
func (s *Service) daySummary(ctx context.Context, destination string, targetDate time.Time) (*daySummary, error) {
	forecast, err := s.weather.Forecast(ctx, destination, targetDate)
	if err != nil {
		var rangeErr *openweather.ForecastRangeError
		if errors.As(err, &rangeErr) {
			summary := seasonalSummary(targetDate.Month())
			log.WithFields(logrus.Fields{
				"date":        targetDate.Format("2006-01-02"),
				"description": summary.Description,
			}).Debug("beyond forecast horizon, using seasonal averages")
			return summary, nil
		}
		return nil, err
	}

	temp := float64(forecast.Summary.Temp)
	return &daySummary{
		Description: forecast.Summary.Description,
		Temp:        temp,
		TempMin:     temp - 3,
		TempMax:     temp + 3,
		FeelsLike:   float64(forecast.Summary.FeelsLike),
		Humidity:    forecast.Summary.Humidity,
	}, nil
}

func seasonalSummary(month time.Month) *daySummary {
	var temp float64
	var description string
	switch month {
	case time.June, time.July, time.August:
		temp, description = 28, "더운 여름 날씨"
	case time.March, time.April, time.May:
		temp, description = 18, "따뜻한 봄 날씨"
	case time.September, time.October, time.November:
		temp, description = 15, "선선한 가을 날씨"
	default:
		temp, description = 5, "추운 겨울 날씨"
	}
	return &daySummary{
		Description: description,
		Temp:        temp,
		TempMin:     temp,
		TempMax:     temp,
		FeelsLike:   temp,
		Humidity:    60,
	}
}
