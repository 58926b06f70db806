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
	"encoding/json"
	"strings"

	"github.com/planmate/planmate-ai/api"
	"github.com/planmate/planmate-ai/clients/gemini"
)

// parseActionResponse interprets a model text reply as a JSON action
// payload `{userMessage, hasAction, actions}`. It returns nil when the text
// is not a JSON object, the caller then falls back to a plain message.
func parseActionResponse(text string) *api.ChatActionResponse {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(gemini.StripFences(text)), &data); err != nil || data == nil {
		return nil
	}

	userMessage, _ := data["userMessage"].(string)
	hasAction, _ := data["hasAction"].(bool)

	rawActions, ok := data["actions"]
	if !ok {
		// singular key used by older model replies
		rawActions = data["action"]
	}
	actions := normalizeActions(rawActions)
	if len(actions) == 0 {
		hasAction = false
	}

	if !hasAction {
		return simpleMessage(userMessage)
	}
	return &api.ChatActionResponse{UserMessage: userMessage, HasAction: true, Actions: actions}
}

// normalizeActions coerces whatever the model produced under actions into a
// list of well-formed actions. The model output is unreliable here: single
// objects instead of lists, nested lists, stringified JSON targets and
// scattered target* fields all occur in practice.
func normalizeActions(raw interface{}) []api.Action {
	if raw == nil {
		return []api.Action{}
	}
	entries, ok := raw.([]interface{})
	if !ok {
		entries = []interface{}{raw}
	}

	normalized := []api.Action{}
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if list, ok := entry.([]interface{}); ok {
			if len(list) == 0 {
				continue
			}
			entry = list[0]
		}
		object, ok := entry.(map[string]interface{})
		if !ok {
			log.WithField("entry", entry).Warn("ignoring action entry, not an object")
			continue
		}

		action := api.Action{}
		action.Action, _ = object["action"].(string)
		action.TargetName, _ = object["targetName"].(string)

		target := object["target"]
		if target == nil {
			if _, named := object["targetName"]; named {
				target = collectTargetFields(object)
			}
		}
		action.Target = normalizeTarget(target)
		normalized = append(normalized, action)
	}
	return normalized
}

// collectTargetFields rebuilds a missing target from sibling keys carrying
// the target prefix, e.g. {"targetPlaceName": …} becomes the target object.
func collectTargetFields(object map[string]interface{}) map[string]interface{} {
	payload := map[string]interface{}{}
	for key, value := range object {
		if strings.HasPrefix(key, "target") && key != "target" && key != "targetName" {
			payload[key] = value
		}
	}
	return payload
}

func normalizeTarget(target interface{}) map[string]interface{} {
	switch typed := target.(type) {
	case map[string]interface{}:
		return typed
	case []interface{}:
		if len(typed) == 0 {
			return map[string]interface{}{}
		}
		if object, ok := typed[0].(map[string]interface{}); ok {
			return object
		}
		if text, ok := typed[0].(string); ok {
			return parseTargetString(text)
		}
		return map[string]interface{}{"list_data": typed}
	case string:
		return parseTargetString(typed)
	case float64:
		return map[string]interface{}{"value": typed}
	case bool:
		return map[string]interface{}{"value": typed}
	}
	return map[string]interface{}{}
}

// parseTargetString gives a stringified target one JSON parse attempt.
func parseTargetString(text string) map[string]interface{} {
	var parsed interface{}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return map[string]interface{}{"raw_string_data": text}
	}
	if object, ok := parsed.(map[string]interface{}); ok {
		return object
	}
	return map[string]interface{}{"raw_string_data": parsed}
}
