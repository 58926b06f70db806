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

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/planmate/planmate-ai/api"
)

func block(timeTableID int64, start string, end string) api.PlaceBlock {
	startTime, err := api.ParseClockTime(start)
	if err != nil {
		panic(err)
	}
	endTime, err := api.ParseClockTime(end)
	if err != nil {
		panic(err)
	}
	return api.PlaceBlock{TimeTableID: timeTableID, BlockStartTime: startTime, BlockEndTime: endTime}
}

func TestDetectPlaceCategory(t *testing.T) {
	var tests = []struct {
		query            string
		expectedCategory int
	}{
		{"서울 호텔", api.PlaceCategoryLodging},
		{"제주 게스트하우스", api.PlaceCategoryLodging},
		{"Hongdae STAY", api.PlaceCategoryLodging},
		{"명동 맛집", api.PlaceCategoryFood},
		{"부산 회 맛집", api.PlaceCategoryFood},
		{"성수동 카페", api.PlaceCategoryFood},
		{"경복궁", api.PlaceCategoryAttraction},
		{"부산 관광지", api.PlaceCategoryAttraction},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expectedCategory, DetectPlaceCategory(tt.query))
		})
	}
}

func TestHasConflict(t *testing.T) {
	blocks := []api.PlaceBlock{block(1, "12:00:00", "14:00:00")}

	var tests = []struct {
		name     string
		start    string
		end      string
		conflict bool
	}{
		{"overlapping", "13:00:00", "15:00:00", true},
		{"contained", "12:30:00", "13:30:00", true},
		{"covering", "11:00:00", "15:00:00", true},
		{"before", "09:00:00", "11:00:00", false},
		{"after", "14:30:00", "16:00:00", false},
		{"touching end to start", "10:00:00", "12:00:00", false},
		{"touching start to end", "14:00:00", "16:00:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := api.ParseClockTime(tt.start)
			end, _ := api.ParseClockTime(tt.end)
			assert.Equal(t, tt.conflict, HasConflict(blocks, start, end))
		})
	}
}

func TestBlocksForDate(t *testing.T) {
	blocks := []api.PlaceBlock{
		{PlaceName: "첫날", Date: "2026-09-01"},
		{PlaceName: "둘째날", Date: "2026-09-02"},
		{PlaceName: "날짜없음"},
	}

	dayBlocks := BlocksForDate(blocks, "2026-09-01")
	assert.Len(t, dayBlocks, 1)
	assert.Equal(t, "첫날", dayBlocks[0].PlaceName)

	assert.Empty(t, BlocksForDate(blocks, "2026-09-03"))
}

func TestFindFreeSlot(t *testing.T) {
	var tests = []struct {
		name          string
		blocks        []api.PlaceBlock
		timeTableID   int64
		duration      time.Duration
		expectedStart string
		expectedEnd   string
	}{
		{
			"empty day starts at day start",
			nil, 1, 90 * time.Minute,
			"09:00:00", "10:30:00",
		},
		{
			"gap before the first block",
			[]api.PlaceBlock{block(1, "10:30:00", "12:00:00")},
			1, 90 * time.Minute,
			"09:00:00", "10:30:00",
		},
		{
			"pushed after a morning block",
			[]api.PlaceBlock{block(1, "09:00:00", "11:00:00")},
			1, 90 * time.Minute,
			"11:00:00", "12:30:00",
		},
		{
			"gap between two blocks",
			[]api.PlaceBlock{block(1, "09:00:00", "10:00:00"), block(1, "12:00:00", "14:00:00")},
			1, 90 * time.Minute,
			"10:00:00", "11:30:00",
		},
		{
			"other time tables are ignored",
			[]api.PlaceBlock{block(2, "09:00:00", "21:00:00")},
			1, 90 * time.Minute,
			"09:00:00", "10:30:00",
		},
		{
			"full day falls back to the evening slot",
			[]api.PlaceBlock{block(1, "09:00:00", "20:00:00")},
			1, 90 * time.Minute,
			"19:00:00", "20:30:00",
		},
		{
			"zero duration defaults to 90 minutes",
			nil, 1, 0,
			"09:00:00", "10:30:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := FindFreeSlot(tt.blocks, tt.timeTableID, tt.duration)
			assert.Equal(t, tt.expectedStart, start.String())
			assert.Equal(t, tt.expectedEnd, end.String())
		})
	}
}
