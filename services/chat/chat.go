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

// Package chat implements the plan chatbot. The model either calls one of
// the declared tools, which mutate the plan through create actions, or
// answers with plain text or a JSON action payload of its own.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/planmate/planmate-ai/api"
	"github.com/planmate/planmate-ai/clients/gemini"
	"github.com/planmate/planmate-ai/clients/places"
	"github.com/planmate/planmate-ai/services/schedule"
)

var log = logrus.WithField("component", "chat")

// User-facing messages, in Korean like the rest of the product surface.
const (
	geminiUnavailableMessage = "Gemini 모델이 설정되지 않았습니다. AI 서비스를 사용할 수 없습니다."
	noPlaceMessage           = "죄송합니다. 요청하신 장소를 찾을 수 없어요. Google Places API 오류가 발생했거나 검색 결과가 없습니다."
	processingErrorMessage   = "죄송합니다. 요청을 처리하는 중 오류가 발생했습니다."
)

var dayPattern = regexp.MustCompile(`(\d+)일차`)

// Service is the plan chatbot.
type Service struct {
	gemini  *gemini.Client
	places  *places.Client
	builder *schedule.Builder
	config  gemini.GenerationConfig
}

// NewService creates a chat service backed by the given Gemini and Places
// clients. The generation config applies to every chat completion.
func NewService(geminiClient *gemini.Client, placesClient *places.Client, config gemini.GenerationConfig) *Service {
	return &Service{
		gemini:  geminiClient,
		places:  placesClient,
		builder: schedule.NewBuilder(placesClient),
		config:  config,
	}
}

// Generate runs one chatbot turn. Tool calls made by the model are executed
// server side and turned into plan actions for the upstream server, any
// other reply is passed through as a message.
func (s *Service) Generate(ctx context.Context, request *api.ChatRequest) (*api.ChatActionResponse, error) {
	if !s.gemini.Available() {
		return simpleMessage(geminiUnavailableMessage), nil
	}

	var planCtx api.PlanContext
	if len(request.PlanContext) > 0 {
		if err := json.Unmarshal(request.PlanContext, &planCtx); err != nil {
			log.WithFields(logrus.Fields{"plan_id": request.PlanID, "error": err}).Warn("unparseable plan context")
		}
	}

	config := s.config
	response, err := s.gemini.GenerateContent(ctx, gemini.GenerateContentRequest{
		Contents: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: s.buildPrompt(request, planCtx)}}},
		},
		Tools:            chatTools,
		GenerationConfig: &config,
	})
	if err != nil {
		log.WithFields(logrus.Fields{"plan_id": request.PlanID, "error": err}).Warn("chat completion failed")
		return simpleMessage(fmt.Sprintf("AI 챗봇 서비스 호출 중 오류 발생: %s", err)), nil
	}

	actions := []api.Action{}
	for _, call := range response.FunctionCalls() {
		// the model routinely sends integers as floats
		timeTableID := intArg(call.Args, "timeTableId", 0)
		duration := time.Duration(intArg(call.Args, "duration_minutes", 90)) * time.Minute
		if duration <= 0 {
			duration = schedule.DefaultBlockDuration
		}

		switch call.Name {
		case toolSearchPlace:
			query := stringArg(call.Args, "query")
			place, err := s.places.Search(ctx, query, 0)
			if err != nil {
				log.WithFields(logrus.Fields{"query": query, "error": err}).Warn("place search failed")
				return simpleMessage(noPlaceMessage), nil
			}
			start, end := schedule.FindFreeSlot(planCtx.PlaceBlocks, timeTableID, duration)
			block := schedule.NewPlaceBlock(place, schedule.DetectPlaceCategory(query), start, end, "", timeTableID)
			actions = append(actions, api.Action{
				Action:     api.ActionCreate,
				TargetName: api.TargetTimeTablePlaceBlock,
				Target:     block,
			})

		case toolSearchMultiple:
			blocks := s.searchMultiple(ctx, stringSliceArg(call.Args, "queries"), timeTableID, duration, planCtx)
			if len(blocks) == 0 {
				return simpleMessage(noPlaceMessage), nil
			}
			for _, block := range blocks {
				actions = append(actions, api.Action{
					Action:     api.ActionCreate,
					TargetName: api.TargetTimeTablePlaceBlock,
					Target:     block,
				})
			}

		case toolAutoSchedule:
			days := int(intArg(call.Args, "days", 0))
			startDate := stringArg(call.Args, "start_date")
			destination := stringArg(call.Args, "destination")
			itinerary, err := s.builder.Build(ctx, days, startDate, planCtx, destination)
			if err != nil {
				log.WithFields(logrus.Fields{"days": days, "start_date": startDate, "error": err}).
					Warn("auto schedule failed")
				continue
			}
			actions = append(actions, itinerary.TimeTables...)
			actions = append(actions, itinerary.PlaceBlocks...)

		default:
			log.WithField("name", call.Name).Warn("model called an unknown tool")
		}
	}

	if len(actions) > 0 {
		return &api.ChatActionResponse{
			UserMessage: successMessage(actions),
			HasAction:   true,
			Actions:     actions,
		}, nil
	}

	// no tool call, the model answered directly
	text := strings.TrimSpace(response.Text())
	if text == "" {
		return simpleMessage(processingErrorMessage), nil
	}
	if parsed := parseActionResponse(text); parsed != nil {
		return parsed, nil
	}
	return simpleMessage(text), nil
}

// buildPrompt assembles the full model prompt: system context, prior turns,
// the serialized plan, an optional day hint and the user message.
func (s *Service) buildPrompt(request *api.ChatRequest, planCtx api.PlanContext) string {
	var prompt strings.Builder
	prompt.WriteString(request.SystemPromptContext)
	prompt.WriteString("\n\n")

	if len(request.PreviousPrompts) > 0 {
		prompt.WriteString("### 이전 대화\n")
		for _, exchange := range request.PreviousPrompts {
			fmt.Fprintf(&prompt, "User: %s\nAI: %s\n", exchange.User, exchange.AI)
		}
		prompt.WriteString("\n")
	}

	planContextJSON := "{}"
	if len(request.PlanContext) > 0 {
		planContextJSON = string(request.PlanContext)
	}
	fmt.Fprintf(&prompt, "현재 계획 정보:\n%s\n\n", planContextJSON)

	// "N일차" in the message resolves to a time table id hint
	if match := dayPattern.FindStringSubmatch(request.Message); match != nil {
		dayNumber, err := strconv.Atoi(match[1])
		if err == nil && dayNumber > 0 && dayNumber <= len(planCtx.TimeTables) {
			fmt.Fprintf(&prompt, "힌트: 사용자가 '%d일차'를 언급했습니다. 해당 timeTableId는 %d입니다.\n\n",
				dayNumber, planCtx.TimeTables[dayNumber-1].TimeTableID)
		}
	}

	fmt.Fprintf(&prompt, "사용자 메시지: %s\n", request.Message)
	return prompt.String()
}

// searchMultiple places the queried places back to back starting at the
// first free gap of the time table, dropping whatever does not fit before
// the end of the day.
func (s *Service) searchMultiple(
	ctx context.Context,
	queries []string,
	timeTableID int64,
	duration time.Duration,
	planCtx api.PlanContext,
) []api.PlaceBlock {
	current, _ := schedule.FindFreeSlot(planCtx.PlaceBlocks, timeTableID, duration)

	blocks := []api.PlaceBlock{}
	for _, query := range queries {
		place, err := s.places.Search(ctx, query, 0)
		if err != nil {
			log.WithFields(logrus.Fields{"query": query, "error": err}).Debug("place search failed, skipping")
			continue
		}
		end := current.Add(duration)
		if schedule.DayEnd.Before(end) {
			break
		}
		blocks = append(blocks, schedule.NewPlaceBlock(place, schedule.DetectPlaceCategory(query), current, end, "", timeTableID))
		current = end
	}
	return blocks
}

func successMessage(actions []api.Action) string {
	names := []string{}
	for _, action := range actions {
		if block, ok := action.Target.(api.PlaceBlock); ok && block.PlaceName != "" {
			names = append(names, block.PlaceName)
		}
	}
	if len(names) == 0 {
		return "요청하신 장소들을 일정에 추가했어요."
	}
	suffix := ""
	if len(names) > 3 {
		names = names[:3]
		suffix = "..."
	}
	return fmt.Sprintf("%s%s 일정을 추가했어요!", strings.Join(names, ", "), suffix)
}

func simpleMessage(message string) *api.ChatActionResponse {
	return &api.ChatActionResponse{UserMessage: message, HasAction: false, Actions: []api.Action{}}
}
