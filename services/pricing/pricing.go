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

// Package pricing estimates what a travel plan will cost.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/planmate/planmate-ai/api"
	"github.com/planmate/planmate-ai/clients/gemini"
)

var log = logrus.WithField("component", "pricing")

// Fallback prices (KRW) used when no estimate can be produced.
const (
	DefaultFoodPrice        = 15000
	DefaultAccommodationMin = 50000
	DefaultAccommodationMax = 100000
	DefaultRoomType         = "기본 객실"
)

// InvalidRequestError reports a request the caller can fix. The message is
// in Korean because it travels to the end user unchanged.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string {
	return e.Message
}

// Service estimates per-day and whole-trip costs of a plan.
type Service struct {
	gemini *gemini.Client
}

// NewService creates a pricing service backed by the given Gemini client.
func NewService(geminiClient *gemini.Client) *Service {
	return &Service{gemini: geminiClient}
}

// Predict groups the plan's blocks by day and estimates food and
// accommodation costs, aggregating them into daily summaries and trip
// totals. Estimates come from Gemini when available, fixed fallbacks
// otherwise.
func (s *Service) Predict(ctx context.Context, request *api.PricePredictionRequest) (*api.PricePredictionResponse, error) {
	if request.Headcount < 1 {
		return nil, &InvalidRequestError{
			Message: fmt.Sprintf("인원수는 1명 이상이어야 합니다. (요청: %d명)", request.Headcount),
		}
	}
	headcount := int64(request.Headcount)

	timetableDates := map[int64]api.CalendarDate{}
	for _, timeTable := range request.TimeTables {
		timetableDates[timeTable.TimeTableID] = timeTable.Date
	}

	dateSet := map[api.CalendarDate]struct{}{}
	for _, date := range timetableDates {
		dateSet[date] = struct{}{}
	}
	sortedDates := make([]api.CalendarDate, 0, len(dateSet))
	for date := range dateSet {
		sortedDates = append(sortedDates, date)
	}
	sort.Slice(sortedDates, func(i, j int) bool { return sortedDates[i] < sortedDates[j] })

	groupedBlocks := map[api.CalendarDate][]api.PricePlaceBlock{}
	for _, block := range request.PlaceBlocks {
		date, ok := timetableDates[block.TimeTableID]
		if !ok {
			log.WithFields(logrus.Fields{
				"block_id":      block.BlockID,
				"time_table_id": block.TimeTableID,
			}).Warn("block references an unknown time table, skipping")
			continue
		}
		groupedBlocks[date] = append(groupedBlocks[date], block)
	}

	dailyCosts := make([]api.DailyCostSummary, 0, len(sortedDates))
	var tripFoodTotal, tripAccommodationMin, tripAccommodationMax int64

	for idx, date := range sortedDates {
		daily := api.DailyCostSummary{
			Date:                 date.String(),
			DayNumber:            idx + 1,
			FoodDetails:          []api.FoodCostDetail{},
			AccommodationDetails: []api.AccommodationCostDetail{},
		}

		for _, block := range groupedBlocks[date] {
			switch block.PlaceCategory {
			case api.PlaceCategoryFood:
				detail := s.estimateFood(ctx, block, headcount)
				daily.FoodDetails = append(daily.FoodDetails, detail)
				daily.DailyTotalFood += detail.TotalPrice
			case api.PlaceCategoryLodging:
				detail := s.estimateAccommodation(ctx, block, headcount)
				daily.AccommodationDetails = append(daily.AccommodationDetails, detail)
				daily.DailyTotalAccommodationMin += detail.PriceRange.Min
				daily.DailyTotalAccommodationMax += detail.PriceRange.Max
			}
		}

		daily.DailyTotalMin = daily.DailyTotalFood + daily.DailyTotalAccommodationMin
		daily.DailyTotalMax = daily.DailyTotalFood + daily.DailyTotalAccommodationMax
		dailyCosts = append(dailyCosts, daily)

		tripFoodTotal += daily.DailyTotalFood
		tripAccommodationMin += daily.DailyTotalAccommodationMin
		tripAccommodationMax += daily.DailyTotalAccommodationMax
	}

	return &api.PricePredictionResponse{
		DailyCosts: dailyCosts,
		TripSummary: api.TripTotalSummary{
			TotalFoodCost:         tripFoodTotal,
			TotalAccommodationMin: tripAccommodationMin,
			TotalAccommodationMax: tripAccommodationMax,
			PerPersonCost: api.CostRange{
				Min: (tripFoodTotal + tripAccommodationMin) / headcount,
				Max: (tripFoodTotal + tripAccommodationMax) / headcount,
			},
			GroupTotalCost: api.CostRange{
				Min: tripFoodTotal + tripAccommodationMin,
				Max: tripFoodTotal + tripAccommodationMax,
			},
		},
	}, nil
}

type foodEstimate struct {
	EstimatedPrice int64    `json:"estimatedPrice"`
	MenuExamples   []string `json:"menuExamples"`
}

func (s *Service) estimateFood(ctx context.Context, block api.PricePlaceBlock, headcount int64) api.FoodCostDetail {
	estimate := foodEstimate{EstimatedPrice: DefaultFoodPrice}
	if s.gemini.Available() {
		prompt := fmt.Sprintf(`식당명: %s, 주소: %s, 평점: %g
위 정보를 바탕으로 1인당 예상 식사 비용을 추론해.
반드시 JSON만 출력: {"estimatedPrice": 숫자, "menuExamples": ["메뉴1"]}`,
			block.PlaceName, block.PlaceAddress, block.PlaceRating)

		text, err := s.gemini.GenerateText(ctx, prompt, gemini.JSONGenerationConfig())
		if err != nil {
			log.WithFields(logrus.Fields{"place": block.PlaceName, "error": err}).Warn("food estimation failed")
		} else if parseErr := json.Unmarshal([]byte(gemini.StripFences(text)), &estimate); parseErr != nil {
			log.WithFields(logrus.Fields{"place": block.PlaceName, "error": parseErr}).Warn("unparseable food estimate")
			estimate = foodEstimate{EstimatedPrice: DefaultFoodPrice}
		}
	}
	if estimate.MenuExamples == nil {
		estimate.MenuExamples = []string{}
	}

	return api.FoodCostDetail{
		PlaceName:      block.PlaceName,
		PricePerPerson: estimate.EstimatedPrice,
		TotalPrice:     estimate.EstimatedPrice * headcount,
		MenuExamples:   estimate.MenuExamples,
	}
}

type roomOption struct {
	Type       string  `json:"type"`
	PriceRange []int64 `json:"priceRange"`
}

type accommodationEstimate struct {
	RecommendedRoomTypeForHeadcount string       `json:"recommendedRoomTypeForHeadcount"`
	RoomTypes                       []roomOption `json:"roomTypes"`
}

func (s *Service) estimateAccommodation(ctx context.Context, block api.PricePlaceBlock, headcount int64) api.AccommodationCostDetail {
	var estimate accommodationEstimate
	if s.gemini.Available() {
		prompt := fmt.Sprintf(`숙소명: %s, 주소: %s, 평점: %g, 인원: %d
위 정보를 바탕으로 적절한 객실과 가격 범위를 추론해.
반드시 JSON만 출력:
{
    "recommendedRoomTypeForHeadcount": "타입명",
    "roomTypes": [{"type": "타입명", "priceRange": [최소, 최대]}]
}`,
			block.PlaceName, block.PlaceAddress, block.PlaceRating, headcount)

		text, err := s.gemini.GenerateText(ctx, prompt, gemini.JSONGenerationConfig())
		if err != nil {
			log.WithFields(logrus.Fields{"place": block.PlaceName, "error": err}).Warn("accommodation estimation failed")
		} else if parseErr := json.Unmarshal([]byte(gemini.StripFences(text)), &estimate); parseErr != nil {
			log.WithFields(logrus.Fields{"place": block.PlaceName, "error": parseErr}).Warn("unparseable accommodation estimate")
			estimate = accommodationEstimate{}
		}
	}

	roomType := estimate.RecommendedRoomTypeForHeadcount
	if roomType == "" {
		roomType = DefaultRoomType
	}
	var selected *roomOption
	for i := range estimate.RoomTypes {
		if estimate.RoomTypes[i].Type == roomType {
			selected = &estimate.RoomTypes[i]
			break
		}
	}
	if selected == nil && len(estimate.RoomTypes) > 0 {
		selected = &estimate.RoomTypes[0]
		roomType = selected.Type
	}

	priceMin, priceMax := int64(DefaultAccommodationMin), int64(DefaultAccommodationMax)
	if selected != nil && len(selected.PriceRange) >= 2 {
		priceMin, priceMax = selected.PriceRange[0], selected.PriceRange[1]
	}

	return api.AccommodationCostDetail{
		PlaceName:  block.PlaceName,
		RoomType:   roomType,
		PriceRange: api.CostRange{Min: priceMin, Max: priceMax},
		PricePerPerson: api.CostRange{
			Min: priceMin / headcount,
			Max: priceMax / headcount,
		},
	}
}
