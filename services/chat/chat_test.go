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

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planmate/planmate-ai/api"
	"github.com/planmate/planmate-ai/clients/gemini"
	"github.com/planmate/planmate-ai/clients/places"
)

func newTestService(t *testing.T, geminiKey string) *Service {
	t.Helper()
	geminiClient := gemini.NewClient(gemini.Options{APIKey: geminiKey})
	placesClient := places.NewClient(places.Options{APIKey: "places-key"})
	httpmock.ActivateNonDefault(geminiClient.HTTPClient().GetClient())
	httpmock.ActivateNonDefault(placesClient.HTTPClient().GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewService(geminiClient, placesClient, gemini.DefaultChatGenerationConfig())
}

func registerModels(t *testing.T) {
	t.Helper()
	httpmock.RegisterResponder("GET", "/v1beta/models",
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"models": []map[string]interface{}{
					{"name": "models/gemini-2.5-flash", "supportedGenerationMethods": []string{"generateContent"}},
				},
			})
		},
	)
}

func registerFunctionCall(t *testing.T, name string, args map[string]interface{}) {
	t.Helper()
	registerModels(t)
	httpmock.RegisterResponder("POST", "/v1beta/models/gemini-2.5-flash:generateContent",
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"candidates": []map[string]interface{}{
					{"content": map[string]interface{}{
						"role": "model",
						"parts": []map[string]interface{}{
							{"functionCall": map[string]interface{}{"name": name, "args": args}},
						},
					}},
				},
			})
		},
	)
}

func registerTextReply(t *testing.T, text string) {
	t.Helper()
	registerModels(t)
	httpmock.RegisterResponder("POST", "/v1beta/models/gemini-2.5-flash:generateContent",
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"candidates": []map[string]interface{}{
					{"content": map[string]interface{}{
						"role":  "model",
						"parts": []map[string]interface{}{{"text": text}},
					}},
				},
			})
		},
	)
}

// registerPlaces answers each text search with a single hit named after the
// query, the listed queries fail with ZERO_RESULTS instead.
func registerPlaces(t *testing.T, failing ...string) {
	t.Helper()
	httpmock.RegisterResponder("GET", "/maps/api/place/textsearch/json",
		func(req *http.Request) (*http.Response, error) {
			query := req.URL.Query().Get("query")
			for _, failed := range failing {
				if query == failed {
					return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
						"status":  "ZERO_RESULTS",
						"results": []interface{}{},
					})
				}
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"status": "OK",
				"results": []map[string]interface{}{
					{
						"place_id":          "id-" + query,
						"name":              query,
						"rating":            4.5,
						"formatted_address": "주소 " + query,
						"geometry": map[string]interface{}{
							"location": map[string]interface{}{"lat": 37.5, "lng": 127.0},
						},
					},
				},
			})
		},
	)
}

func TestGenerateWithoutGemini(t *testing.T) {
	service := newTestService(t, "")

	response, err := service.Generate(context.Background(), &api.ChatRequest{Message: "안녕"})
	require.NoError(t, err)

	assert.Equal(t, geminiUnavailableMessage, response.UserMessage)
	assert.False(t, response.HasAction)
	assert.Empty(t, response.Actions)
}

func TestGeneratePromptAssembly(t *testing.T) {
	service := newTestService(t, "gemini-key")
	registerModels(t)

	var captured gemini.GenerateContentRequest
	httpmock.RegisterResponder("POST", "/v1beta/models/gemini-2.5-flash:generateContent",
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&captured))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"candidates": []map[string]interface{}{
					{"content": map[string]interface{}{
						"role":  "model",
						"parts": []map[string]interface{}{{"text": "안녕하세요!"}},
					}},
				},
			})
		},
	)

	planContext := json.RawMessage(`{"TravelName":"서울 여행","TimeTables":[` +
		`{"timeTableId":144,"date":"2026-09-01"},{"timeTableId":153,"date":"2026-09-02"}]}`)
	response, err := service.Generate(context.Background(), &api.ChatRequest{
		PlanID:              7,
		Message:             "2일차에 명동 맛집 추가해줘",
		SystemPromptContext: "너는 여행 플래너야.",
		PlanContext:         planContext,
		PreviousPrompts:     []api.PromptExchange{{User: "안녕", AI: "반가워요"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "안녕하세요!", response.UserMessage)
	assert.False(t, response.HasAction)

	require.Len(t, captured.Contents, 1)
	prompt := captured.Contents[0].Parts[0].Text
	assert.True(t, strings.HasPrefix(prompt, "너는 여행 플래너야.\n\n"))
	assert.Contains(t, prompt, "### 이전 대화\nUser: 안녕\nAI: 반가워요\n")
	assert.Contains(t, prompt, "현재 계획 정보:\n"+string(planContext))
	assert.Contains(t, prompt, "힌트: 사용자가 '2일차'를 언급했습니다. 해당 timeTableId는 153입니다.")
	assert.True(t, strings.HasSuffix(prompt, "사용자 메시지: 2일차에 명동 맛집 추가해줘\n"))

	require.Len(t, captured.Tools, 1)
	names := []string{}
	for _, declaration := range captured.Tools[0].FunctionDeclarations {
		names = append(names, declaration.Name)
	}
	assert.Equal(t, []string{toolSearchPlace, toolSearchMultiple, toolAutoSchedule}, names)

	require.NotNil(t, captured.GenerationConfig)
	assert.Equal(t, 0.7, *captured.GenerationConfig.Temperature)
	assert.Equal(t, 8192, *captured.GenerationConfig.MaxOutputTokens)
}

func TestGenerateSingleSearch(t *testing.T) {
	service := newTestService(t, "gemini-key")
	registerFunctionCall(t, toolSearchPlace, map[string]interface{}{
		"query":       "명동 맛집",
		"timeTableId": 144.0,
	})
	registerPlaces(t)

	planContext := json.RawMessage(`{"TimeTablePlaceBlocks":[` +
		`{"blockId":1,"placeName":"경복궁","blockStartTime":"09:00:00","blockEndTime":"10:30:00","timeTableId":144}]}`)
	response, err := service.Generate(context.Background(), &api.ChatRequest{
		Message:     "명동 맛집 추가해줘",
		PlanContext: planContext,
	})
	require.NoError(t, err)

	assert.True(t, response.HasAction)
	require.Len(t, response.Actions, 1)
	assert.Equal(t, api.ActionCreate, response.Actions[0].Action)
	assert.Equal(t, api.TargetTimeTablePlaceBlock, response.Actions[0].TargetName)

	block, ok := response.Actions[0].Target.(api.PlaceBlock)
	require.True(t, ok)
	assert.Equal(t, "명동 맛집", block.PlaceName)
	assert.Equal(t, int64(-1), block.BlockID)
	assert.Equal(t, int64(144), block.TimeTableID)
	// placed right after the existing 09:00-10:30 block
	assert.Equal(t, "10:30:00", block.BlockStartTime.String())
	assert.Equal(t, "12:00:00", block.BlockEndTime.String())
	assert.Equal(t, api.PlaceCategoryFood, block.PlaceCategoryID)
	assert.Empty(t, block.Date)

	assert.Equal(t, "명동 맛집 일정을 추가했어요!", response.UserMessage)
}

func TestGenerateSingleSearchNoPlace(t *testing.T) {
	service := newTestService(t, "gemini-key")
	registerFunctionCall(t, toolSearchPlace, map[string]interface{}{
		"query":       "아무데나",
		"timeTableId": 1.0,
	})
	registerPlaces(t, "아무데나")

	response, err := service.Generate(context.Background(), &api.ChatRequest{Message: "아무데나 추가해줘"})
	require.NoError(t, err)

	assert.Equal(t, noPlaceMessage, response.UserMessage)
	assert.False(t, response.HasAction)
	assert.Empty(t, response.Actions)
}

func TestGenerateMultiSearch(t *testing.T) {
	service := newTestService(t, "gemini-key")
	registerFunctionCall(t, toolSearchMultiple, map[string]interface{}{
		"queries":     []interface{}{"명동 맛집1", "명동 맛집2", "없는 식당"},
		"timeTableId": 144.0,
	})
	registerPlaces(t, "없는 식당")

	response, err := service.Generate(context.Background(), &api.ChatRequest{Message: "명동 맛집 3곳 추가해줘"})
	require.NoError(t, err)

	assert.True(t, response.HasAction)
	require.Len(t, response.Actions, 2)

	first, ok := response.Actions[0].Target.(api.PlaceBlock)
	require.True(t, ok)
	second, ok := response.Actions[1].Target.(api.PlaceBlock)
	require.True(t, ok)
	assert.Equal(t, "09:00:00", first.BlockStartTime.String())
	assert.Equal(t, "10:30:00", first.BlockEndTime.String())
	assert.Equal(t, "10:30:00", second.BlockStartTime.String())
	assert.Equal(t, "12:00:00", second.BlockEndTime.String())

	assert.Equal(t, "명동 맛집1, 명동 맛집2 일정을 추가했어요!", response.UserMessage)
}

func TestGenerateMultiSearchStopsAtDayEnd(t *testing.T) {
	service := newTestService(t, "gemini-key")
	registerFunctionCall(t, toolSearchMultiple, map[string]interface{}{
		"queries":     []interface{}{"카페1", "카페2"},
		"timeTableId": 144.0,
	})
	registerPlaces(t)

	planContext := json.RawMessage(`{"TimeTablePlaceBlocks":[` +
		`{"blockId":1,"placeName":"투어","blockStartTime":"09:00:00","blockEndTime":"19:30:00","timeTableId":144}]}`)
	response, err := service.Generate(context.Background(), &api.ChatRequest{
		Message:     "카페 2곳 추가해줘",
		PlanContext: planContext,
	})
	require.NoError(t, err)

	// only the first one fits before 21:00
	require.Len(t, response.Actions, 1)
	block, ok := response.Actions[0].Target.(api.PlaceBlock)
	require.True(t, ok)
	assert.Equal(t, "카페1", block.PlaceName)
	assert.Equal(t, "19:30:00", block.BlockStartTime.String())
	assert.Equal(t, "21:00:00", block.BlockEndTime.String())
}

func TestGenerateMultiSearchNothingFound(t *testing.T) {
	service := newTestService(t, "gemini-key")
	registerFunctionCall(t, toolSearchMultiple, map[string]interface{}{
		"queries":     []interface{}{"없는곳1", "없는곳2"},
		"timeTableId": 144.0,
	})
	registerPlaces(t, "없는곳1", "없는곳2")

	response, err := service.Generate(context.Background(), &api.ChatRequest{Message: "추가해줘"})
	require.NoError(t, err)

	assert.Equal(t, noPlaceMessage, response.UserMessage)
	assert.False(t, response.HasAction)
}

func TestGenerateAutoSchedule(t *testing.T) {
	service := newTestService(t, "gemini-key")
	registerFunctionCall(t, toolAutoSchedule, map[string]interface{}{
		"days":        2.0,
		"start_date":  "2026-09-01",
		"destination": "부산",
	})
	registerPlaces(t)

	response, err := service.Generate(context.Background(), &api.ChatRequest{Message: "부산 2일 일정 자동으로 만들어줘"})
	require.NoError(t, err)

	assert.True(t, response.HasAction)
	require.Len(t, response.Actions, 9)

	assert.Equal(t, api.TargetTimeTable, response.Actions[0].TargetName)
	assert.Equal(t, api.TargetTimeTable, response.Actions[1].TargetName)
	timeTable, ok := response.Actions[0].Target.(api.TimeTable)
	require.True(t, ok)
	assert.Equal(t, api.CalendarDate("2026-09-01"), timeTable.Date)

	blockNames := []string{}
	for _, action := range response.Actions[2:] {
		assert.Equal(t, api.TargetTimeTablePlaceBlock, action.TargetName)
		block, ok := action.Target.(api.PlaceBlock)
		require.True(t, ok)
		blockNames = append(blockNames, block.PlaceName)
	}
	assert.Equal(t, []string{
		"부산 관광지", "부산 맛집", "부산 고기 맛집", "부산 호텔",
		"부산 관광지", "부산 맛집", "부산 회 맛집",
	}, blockNames)

	assert.Equal(t, "부산 관광지, 부산 맛집, 부산 고기 맛집... 일정을 추가했어요!", response.UserMessage)
}

func TestGenerateAutoScheduleInvalidArgs(t *testing.T) {
	service := newTestService(t, "gemini-key")
	registerFunctionCall(t, toolAutoSchedule, map[string]interface{}{
		"days":        0.0,
		"start_date":  "2026-09-01",
		"destination": "부산",
	})

	response, err := service.Generate(context.Background(), &api.ChatRequest{Message: "0일 일정 만들어줘"})
	require.NoError(t, err)

	assert.Equal(t, processingErrorMessage, response.UserMessage)
	assert.False(t, response.HasAction)
}

func TestGenerateJSONReply(t *testing.T) {
	service := newTestService(t, "gemini-key")
	registerTextReply(t, "```json\n{\"userMessage\": \"3일차 일정이 비어 있어요.\", \"hasAction\": false}\n```")

	response, err := service.Generate(context.Background(), &api.ChatRequest{Message: "3일차 어때?"})
	require.NoError(t, err)

	assert.Equal(t, "3일차 일정이 비어 있어요.", response.UserMessage)
	assert.False(t, response.HasAction)
}

func TestGeneratePlainTextReply(t *testing.T) {
	service := newTestService(t, "gemini-key")
	registerTextReply(t, "서울의 9월은 선선해서 걷기 좋아요.")

	response, err := service.Generate(context.Background(), &api.ChatRequest{Message: "9월 서울 어때?"})
	require.NoError(t, err)

	assert.Equal(t, "서울의 9월은 선선해서 걷기 좋아요.", response.UserMessage)
	assert.False(t, response.HasAction)
}

func TestGenerateEmptyReply(t *testing.T) {
	service := newTestService(t, "gemini-key")
	registerModels(t)
	httpmock.RegisterResponder("POST", "/v1beta/models/gemini-2.5-flash:generateContent",
		httpmock.NewStringResponder(http.StatusOK, `{"candidates": []}`))

	response, err := service.Generate(context.Background(), &api.ChatRequest{Message: "안녕"})
	require.NoError(t, err)

	assert.Equal(t, processingErrorMessage, response.UserMessage)
	assert.False(t, response.HasAction)
}

func TestGenerateGeminiFailure(t *testing.T) {
	service := newTestService(t, "gemini-key")
	registerModels(t)
	httpmock.RegisterResponder("POST", "/v1beta/models/gemini-2.5-flash:generateContent",
		httpmock.NewStringResponder(http.StatusInternalServerError, `{"error": {"message": "boom"}}`))

	response, err := service.Generate(context.Background(), &api.ChatRequest{Message: "안녕"})
	require.NoError(t, err)

	assert.Contains(t, response.UserMessage, "AI 챗봇 서비스 호출 중 오류 발생")
	assert.False(t, response.HasAction)
}
