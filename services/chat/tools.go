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

package chat

import "github.com/planmate/planmate-ai/clients/gemini"

const (
	toolSearchPlace    = "search_and_create_place_block"
	toolSearchMultiple = "search_multiple_place_blocks"
	toolAutoSchedule   = "create_auto_schedule"
)

// chatTools are the function declarations offered to the model. The plan
// context is deliberately not a parameter, the service injects its own copy
// when executing a call.
var chatTools = []gemini.Tool{
	{
		FunctionDeclarations: []gemini.FunctionDeclaration{
			{
				Name: toolSearchPlace,
				Description: "단일 장소를 Google Places API로 검색하고 일정에 추가할 블록을 생성합니다. " +
					"사용자가 \"명동 맛집 추가해줘\", \"경복궁 일정에 넣어줘\" 같은 요청을 할 때 사용하세요.",
				Parameters: &gemini.Schema{
					Type: gemini.TypeObject,
					Properties: map[string]*gemini.Schema{
						"query":            {Type: gemini.TypeString, Description: "검색할 장소 이름 (예: \"명동 맛집\", \"경복궁\")"},
						"timeTableId":      {Type: gemini.TypeInteger, Description: "추가할 타임테이블 ID"},
						"duration_minutes": {Type: gemini.TypeInteger, Description: "방문 시간 (분, 기본 90분)"},
					},
					Required: []string{"query", "timeTableId"},
				},
			},
			{
				Name: toolSearchMultiple,
				Description: "여러 장소를 한 번에 Google Places API로 검색하고 시간이 겹치지 않게 순차적으로 배치합니다. " +
					"사용자가 \"명동 맛집 3곳 추가해줘\", \"서울 관광지 5개 찾아줘\" 같은 요청을 할 때 사용하세요.",
				Parameters: &gemini.Schema{
					Type: gemini.TypeObject,
					Properties: map[string]*gemini.Schema{
						"queries": {
							Type:        gemini.TypeArray,
							Description: "검색할 장소 이름 리스트 (예: [\"명동 맛집1\", \"명동 맛집2\"])",
							Items:       &gemini.Schema{Type: gemini.TypeString},
						},
						"timeTableId":      {Type: gemini.TypeInteger, Description: "추가할 타임테이블 ID"},
						"duration_minutes": {Type: gemini.TypeInteger, Description: "각 장소 방문 시간 (분, 기본 90분)"},
					},
					Required: []string{"queries", "timeTableId"},
				},
			},
			{
				Name: toolAutoSchedule,
				Description: "여행 일정 전체를 자동으로 생성합니다. 하루 단위로 관광지, 맛집, 숙소 블록을 채웁니다. " +
					"사용자가 \"3일 일정 자동으로 만들어줘\" 같은 요청을 할 때 사용하세요.",
				Parameters: &gemini.Schema{
					Type: gemini.TypeObject,
					Properties: map[string]*gemini.Schema{
						"days":        {Type: gemini.TypeInteger, Description: "여행 일수"},
						"start_date":  {Type: gemini.TypeString, Description: "여행 시작일 (YYYY-MM-DD)"},
						"destination": {Type: gemini.TypeString, Description: "여행지 이름 (예: \"부산\")"},
					},
					Required: []string{"days", "start_date", "destination"},
				},
			},
		},
	},
}

func stringArg(args map[string]interface{}, key string) string {
	value, _ := args[key].(string)
	return value
}

// intArg reads a numeric argument. Tool call arguments arrive as JSON, so
// every number is a float.
func intArg(args map[string]interface{}, key string, fallback int64) int64 {
	if value, ok := args[key].(float64); ok {
		return int64(value)
	}
	return fallback
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, entry := range raw {
		if text, ok := entry.(string); ok {
			values = append(values, text)
		}
	}
	return values
}
