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

package client

import (
	"context"
	"errors"
	"fmt"
	"os"

	jsonEncoding "encoding/json"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/planmate/planmate-ai/api"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// chatViper represents the configuration of the `planmate client chat` command
var chatViper = viper.New()

const (
	chatMessageKey     = "message"
	chatPlanIDKey      = "plan_id"
	chatPlanContextKey = "plan_context"
)

func init() {
	chatViper.SetDefault(chatMessageKey, "")
	chatCmd.Flags().String(
		chatMessageKey,
		chatViper.GetString(chatMessageKey),
		"Message sent to the assistant",
	)

	chatViper.SetDefault(chatPlanIDKey, 0)
	chatCmd.Flags().Int64(
		chatPlanIDKey,
		chatViper.GetInt64(chatPlanIDKey),
		"Identifier of the plan the conversation is about",
	)

	chatViper.SetDefault(chatPlanContextKey, "")
	chatCmd.Flags().String(
		chatPlanContextKey,
		chatViper.GetString(chatPlanContextKey),
		"Path to a JSON file holding the serialized travel plan",
	)

	// Don't sort alphabetically, keep insertion order
	chatCmd.Flags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = chatViper.BindPFlags(chatCmd.Flags())
}

// describeActionTarget extracts a human hint from an action payload.
func describeActionTarget(target interface{}) string {
	fields, ok := target.(map[string]interface{})
	if !ok {
		return ""
	}
	if name, ok := fields["placeName"].(string); ok && name != "" {
		return name
	}
	if date, ok := fields["date"].(string); ok {
		return date
	}
	return ""
}

// chatCmd represents the `planmate client chat` command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run one assistant turn against a plan",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		consoleOutputFormat, err := retrieveConsoleOutputFormat()
		if err != nil {
			return err
		}

		message := chatViper.GetString(chatMessageKey)
		if message == "" {
			return fmt.Errorf("missing required argument \"--%s\"", chatMessageKey)
		}

		request := api.ChatRequest{
			PlanID:  chatViper.GetInt64(chatPlanIDKey),
			Message: message,
		}

		if path := chatViper.GetString(chatPlanContextKey); path != "" {
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("unable to read the plan context file, %w", err)
			}
			if !jsonEncoding.Valid(content) {
				return fmt.Errorf("invalid plan context file %q, expected JSON", path)
			}
			request.PlanContext = content
		}

		client := newServiceClient()

		ctx, cancel := context.WithTimeout(context.Background(), clientViper.GetDuration(clientTimeoutKey))
		defer cancel()
		reply, err := client.GenerateChat(ctx, request)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("timeout (%v) exceeded", clientViper.GetDuration(clientTimeoutKey))
			}
			return err
		}

		switch consoleOutputFormat {
		case text:
			fmt.Println(color.CyanString("%s", reply.UserMessage))

			if reply.HasAction {
				fmt.Println()
				table := tablewriter.NewWriter(os.Stdout)
				table.SetBorder(false)
				table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)
				table.SetHeader([]string{
					"#",
					"action",
					"target",
					"detail",
				})
				for idx, action := range reply.Actions {
					table.Append([]string{
						fmt.Sprintf("%d", idx+1),
						action.Action,
						action.TargetName,
						describeActionTarget(action.Target),
					})
				}
				table.SetCaption(true, fmt.Sprintf(
					"%d plan changes suggested",
					len(reply.Actions),
				))

				table.Render()
			}
		case json:
			err := renderJSON(reply)
			if err != nil {
				return err
			}
		}
		return nil
	},
}
