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

import "encoding/json"

//nolint:lll
type ChatRequest struct {
	PlanID              int64            `json:"planId" description:"Identifier of the plan the conversation is about"`
	Message             string           `json:"message" validate:"required" description:"User message"`
	SystemPromptContext string           `json:"systemPromptContext" description:"System prompt prepared by the upstream server"`
	PlanContext         json.RawMessage  `json:"planContext,omitempty" description:"Serialized travel plan"`
	PreviousPrompts     []PromptExchange `json:"previousPrompts,omitempty" description:"Prior conversation turns"`
}

type PromptExchange struct {
	User string `json:"user"`
	AI   string `json:"ai"`
}

//nolint:lll
type ChatActionResponse struct {
	UserMessage string   `json:"userMessage" description:"Assistant reply shown to the user"`
	HasAction   bool     `json:"hasAction" description:"Whether the reply carries plan mutations"`
	Actions     []Action `json:"actions" description:"Plan mutations for the upstream server to apply"`
}
