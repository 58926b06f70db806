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

package api

//nolint:lll
type WeatherRecommendationRequest struct {
	City      string `json:"city" validate:"required" description:"Destination city, Korean or English name"`
	StartDate string `json:"start_date" validate:"required" description:"First day of the trip, YYYY-MM-DD"`
	EndDate   string `json:"end_date" validate:"required" description:"Last day of the trip, YYYY-MM-DD"`
}

type SimpleWeatherInfo struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	FeelsLike   float64 `json:"feels_like"`
}

type WeatherRecommendationResponse struct {
	Weather        []SimpleWeatherInfo `json:"weather" description:"Per-day weather of the trip"`
	Recommendation string              `json:"recommendation" description:"Outfit recommendation text"`
}
