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

import (
	"encoding/json"
	"fmt"
	"time"
)

// PlanContext is the travel plan as serialized by the upstream server.
// The upstream serializer emits PascalCase keys for the context fields and
// camelCase keys inside the nested values, both are part of the contract.
type PlanContext struct {
	TravelName  string       `json:"TravelName,omitempty"`
	TimeTables  []TimeTable  `json:"TimeTables,omitempty"`
	PlaceBlocks []PlaceBlock `json:"TimeTablePlaceBlocks,omitempty"`
}

type TimeTable struct {
	TimeTableID int64        `json:"timeTableId,omitempty"`
	Date        CalendarDate `json:"date,omitempty"`
}

type PlaceBlock struct {
	BlockID         int64        `json:"blockId"`
	PlaceName       string       `json:"placeName"`
	PlaceTheme      string       `json:"placeTheme"`
	PlaceRating     float64      `json:"placeRating"`
	PlaceAddress    string       `json:"placeAddress"`
	PlaceLink       string       `json:"placeLink"`
	BlockStartTime  ClockTime    `json:"blockStartTime"`
	BlockEndTime    ClockTime    `json:"blockEndTime"`
	XLocation       float64      `json:"xLocation"`
	YLocation       float64      `json:"yLocation"`
	PlaceID         string       `json:"placeId"`
	PlaceCategoryID int          `json:"placeCategoryId"`
	TimeTableID     int64        `json:"timeTableId"`
	Date            CalendarDate `json:"date,omitempty"`
}

// Place categories used by the upstream server.
const (
	PlaceCategoryAttraction = 0
	PlaceCategoryLodging    = 1
	PlaceCategoryFood       = 2
)

// Action is a plan mutation the upstream server applies on behalf of the
// assistant.
type Action struct {
	Action     string      `json:"action"`
	TargetName string      `json:"targetName"`
	Target     interface{} `json:"target"`
}

const (
	ActionCreate              = "create"
	TargetTimeTable           = "timeTable"
	TargetTimeTablePlaceBlock = "timeTablePlaceBlock"
)

// ClockTime is a time of day. The upstream serializer emits Java LocalTime
// values either as "HH:MM:SS"/"HH:MM" strings or as [h, m], [h, m, s] or
// [h, m, s, ns] arrays, all are accepted; it always marshals as "HH:MM:SS".
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

func NewClockTime(hour int, minute int, second int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute, Second: second}
}

// ParseClockTime parses "HH:MM:SS" or "HH:MM".
func ParseClockTime(value string) (ClockTime, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return ClockTime{Hour: parsed.Hour(), Minute: parsed.Minute(), Second: parsed.Second()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("unable to parse time value %q, expected \"HH:MM:SS\" or \"HH:MM\"", value)
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// SecondOfDay is the number of seconds elapsed since midnight.
func (t ClockTime) SecondOfDay() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

func (t ClockTime) Before(other ClockTime) bool {
	return t.SecondOfDay() < other.SecondOfDay()
}

func (t ClockTime) IsZero() bool {
	return t.Hour == 0 && t.Minute == 0 && t.Second == 0
}

// Add returns the clock time shifted by the given duration, capped to the
// same day.
func (t ClockTime) Add(d time.Duration) ClockTime {
	total := t.SecondOfDay() + int(d.Seconds())
	if total > 24*3600-1 {
		total = 24*3600 - 1
	}
	return ClockTime{Hour: total / 3600, Minute: (total % 3600) / 60, Second: total % 60}
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	switch typedValue := value.(type) {
	case string:
		parsed, err := ParseClockTime(typedValue)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []interface{}:
		if len(typedValue) < 2 {
			return fmt.Errorf("unable to parse time array %v, expected at least [h, m]", typedValue)
		}
		components := make([]int, 0, 3)
		for idx, raw := range typedValue {
			if idx >= 3 {
				// trailing nanoseconds are ignored
				break
			}
			number, ok := raw.(float64)
			if !ok {
				return fmt.Errorf("unable to parse time array %v, component %d is not a number", typedValue, idx)
			}
			components = append(components, int(number))
		}
		for len(components) < 3 {
			components = append(components, 0)
		}
		*t = ClockTime{Hour: components[0], Minute: components[1], Second: components[2]}
		return nil
	case nil:
		*t = ClockTime{}
		return nil
	}
	return fmt.Errorf("unable to parse time value %v", value)
}

// CalendarDate is a "YYYY-MM-DD" day. Java LocalDate values serialized as
// [y, m, d] arrays are normalized to the string form on decoding.
type CalendarDate string

func (d CalendarDate) String() string {
	return string(d)
}

func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	switch typedValue := value.(type) {
	case string:
		*d = CalendarDate(typedValue)
		return nil
	case []interface{}:
		if len(typedValue) != 3 {
			return fmt.Errorf("unable to parse date array %v, expected [y, m, d]", typedValue)
		}
		components := make([]int, 0, 3)
		for idx, raw := range typedValue {
			number, ok := raw.(float64)
			if !ok {
				return fmt.Errorf("unable to parse date array %v, component %d is not a number", typedValue, idx)
			}
			components = append(components, int(number))
		}
		*d = CalendarDate(fmt.Sprintf("%04d-%02d-%02d", components[0], components[1], components[2]))
		return nil
	case nil:
		*d = ""
		return nil
	}
	return fmt.Errorf("unable to parse date value %v", value)
}
