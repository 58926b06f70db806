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

package gemini

import (
	"strings"

	"github.com/imdario/mergo"
	"github.com/jinzhu/copier"
)

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }

// DefaultChatGenerationConfig returns the generation parameters of the plan
// chatbot.
func DefaultChatGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     float64Ptr(0.7),
		TopP:            float64Ptr(0.95),
		TopK:            intPtr(40),
		MaxOutputTokens: intPtr(8192),
	}
}

// JSONGenerationConfig returns the generation parameters of the features
// expecting a structured JSON reply.
func JSONGenerationConfig() *GenerationConfig {
	return &GenerationConfig{
		ResponseMIMEType: "application/json",
	}
}

// ExtendGenerationConfig extends the given defaults with the given overrides
//
// both inputs are left untouched.
func ExtendGenerationConfig(defaults GenerationConfig, overrides GenerationConfig) GenerationConfig {
	extendedConfig := GenerationConfig{}
	_ = copier.Copy(&extendedConfig, &overrides)
	_ = mergo.Merge(&extendedConfig, defaults)
	return extendedConfig
}

// StripFences removes a surrounding markdown code fence from a model reply.
// Models regularly wrap JSON answers in ```json blocks even when asked not
// to.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	}
	if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}
	return strings.TrimSpace(text)
}
