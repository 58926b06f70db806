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

// The price prediction payloads use their own block and time table shapes,
// the upstream server sends camelCase keys here (note the lowercase
// "timetableId" on PriceTimeTable).

type PriceTimeTable struct {
	TimeTableID int64        `json:"timetableId"`
	Date        CalendarDate `json:"date"`
}

type PricePlaceBlock struct {
	BlockID       int64   `json:"blockId"`
	PlaceName     string  `json:"placeName"`
	PlaceAddress  string  `json:"placeAddress"`
	PlaceRating   float64 `json:"placeRating"`
	PlaceCategory int     `json:"placeCategory"`
	TimeTableID   int64   `json:"timeTableId"`
}

//nolint:lll
type PricePredictionRequest struct {
	Headcount   int               `json:"headcount" validate:"required" description:"Number of travellers"`
	TimeTables  []PriceTimeTable  `json:"timeTables" description:"Time tables of the plan"`
	PlaceBlocks []PricePlaceBlock `json:"placeBlocks" description:"Place blocks of the plan"`
}

type CostRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type FoodCostDetail struct {
	PlaceName      string   `json:"placeName"`
	PricePerPerson int64    `json:"pricePerPerson"`
	TotalPrice     int64    `json:"totalPrice"`
	MenuExamples   []string `json:"menuExamples"`
}

type AccommodationCostDetail struct {
	PlaceName      string    `json:"placeName"`
	RoomType       string    `json:"roomType"`
	PriceRange     CostRange `json:"priceRange"`
	PricePerPerson CostRange `json:"pricePerPerson"`
}

type DailyCostSummary struct {
	Date                       string                    `json:"date"`
	DayNumber                  int                       `json:"dayNumber"`
	FoodDetails                []FoodCostDetail          `json:"foodDetails"`
	AccommodationDetails       []AccommodationCostDetail `json:"accommodationDetails"`
	DailyTotalFood             int64                     `json:"dailyTotalFood"`
	DailyTotalAccommodationMin int64                     `json:"dailyTotalAccommodationMin"`
	DailyTotalAccommodationMax int64                     `json:"dailyTotalAccommodationMax"`
	DailyTotalMin              int64                     `json:"dailyTotalMin"`
	DailyTotalMax              int64                     `json:"dailyTotalMax"`
}

type TripTotalSummary struct {
	TotalFoodCost         int64     `json:"totalFoodCost"`
	TotalAccommodationMin int64     `json:"totalAccommodationMin"`
	TotalAccommodationMax int64     `json:"totalAccommodationMax"`
	PerPersonCost         CostRange `json:"perPersonCost"`
	GroupTotalCost        CostRange `json:"groupTotalCost"`
}

//nolint:lll
type PricePredictionResponse struct {
	DailyCosts  []DailyCostSummary `json:"dailyCosts" description:"Per-day cost breakdown"`
	TripSummary TripTotalSummary   `json:"tripSummary" description:"Whole-trip totals"`
}
