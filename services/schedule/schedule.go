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

// Package schedule places blocks into trip days without overlaps and builds
// whole itineraries from place searches.
package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/planmate/planmate-ai/api"
)

// The window blocks are placed into.
var (
	DayStart = api.NewClockTime(9, 0, 0)
	DayEnd   = api.NewClockTime(21, 0, 0)
)

// DefaultBlockDuration is how long a visit lasts unless the caller says
// otherwise.
const DefaultBlockDuration = 90 * time.Minute

// Fallback slot used when a day is too full to fit another block.
var (
	fallbackStart = api.NewClockTime(19, 0, 0)
	fallbackEnd   = api.NewClockTime(20, 30, 0)
)

var lodgingKeywords = []string{"숙소", "호텔", "게스트하우스", "모텔", "펜션", "stay"}

var foodKeywords = []string{"맛집", "식당", "카페", "음식", "저녁", "점심", "회집", "회 "}

// DetectPlaceCategory infers the place category from a search query.
func DetectPlaceCategory(query string) int {
	q := strings.ToLower(query)
	for _, keyword := range lodgingKeywords {
		if strings.Contains(q, keyword) {
			return api.PlaceCategoryLodging
		}
	}
	for _, keyword := range foodKeywords {
		if strings.Contains(q, keyword) {
			return api.PlaceCategoryFood
		}
	}
	return api.PlaceCategoryAttraction
}

// BlocksForDate returns the blocks scheduled on the given day.
func BlocksForDate(blocks []api.PlaceBlock, date api.CalendarDate) []api.PlaceBlock {
	var dateBlocks []api.PlaceBlock
	for _, block := range blocks {
		if block.Date != "" && block.Date == date {
			dateBlocks = append(dateBlocks, block)
		}
	}
	return dateBlocks
}

// HasConflict returns true when [start, end) overlaps any of the blocks.
// Two ranges overlap when each one starts before the other ends.
func HasConflict(blocks []api.PlaceBlock, start api.ClockTime, end api.ClockTime) bool {
	for _, block := range blocks {
		if start.Before(block.BlockEndTime) && block.BlockStartTime.Before(end) {
			return true
		}
	}
	return false
}

// FindFreeSlot finds a slot of the given duration among the blocks of one
// time table. It takes the first gap from the start of the day, then the
// stretch after the last block when that still ends inside the day, and
// falls back to the evening slot when the day is full.
func FindFreeSlot(blocks []api.PlaceBlock, timeTableID int64, duration time.Duration) (api.ClockTime, api.ClockTime) {
	if duration <= 0 {
		duration = DefaultBlockDuration
	}

	type timeRange struct {
		start api.ClockTime
		end   api.ClockTime
	}
	var used []timeRange
	for _, block := range blocks {
		if block.TimeTableID != timeTableID {
			continue
		}
		used = append(used, timeRange{start: block.BlockStartTime, end: block.BlockEndTime})
	}
	sort.Slice(used, func(i, j int) bool {
		return used[i].start.Before(used[j].start)
	})

	candidate := DayStart
	for _, u := range used {
		if end := candidate.Add(duration); !u.start.Before(end) {
			return candidate, end
		}
		if candidate.Before(u.end) {
			candidate = u.end
		}
	}

	if end := candidate.Add(duration); !DayEnd.Before(end) {
		return candidate, end
	}

	return fallbackStart, fallbackEnd
}
