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

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/planmate/planmate-ai/api"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// priceViper represents the configuration of the `planmate client price` command
var priceViper = viper.New()

const priceRequestKey = "request"

func init() {
	priceViper.SetDefault(priceRequestKey, "")
	priceCmd.Flags().String(
		priceRequestKey,
		priceViper.GetString(priceRequestKey),
		"Path to a JSON file holding the plan time tables, place blocks and headcount",
	)

	// Don't sort alphabetically, keep insertion order
	priceCmd.Flags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = priceViper.BindPFlags(priceCmd.Flags())
}

// priceCmd represents the `planmate client price` command
var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Predict the cost of a plan",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		consoleOutputFormat, err := retrieveConsoleOutputFormat()
		if err != nil {
			return err
		}

		path := priceViper.GetString(priceRequestKey)
		if path == "" {
			return fmt.Errorf("missing required argument \"--%s\"", priceRequestKey)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read the request file, %w", err)
		}

		var request api.PricePredictionRequest
		if err := jsonEncoding.Unmarshal(content, &request); err != nil {
			return fmt.Errorf("invalid request file %q, %w", path, err)
		}

		client := newServiceClient()

		ctx, cancel := context.WithTimeout(context.Background(), clientViper.GetDuration(clientTimeoutKey))
		defer cancel()
		prediction, err := client.PredictPrice(ctx, request)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("timeout (%v) exceeded", clientViper.GetDuration(clientTimeoutKey))
			}
			return err
		}

		switch consoleOutputFormat {
		case text:
			table := tablewriter.NewWriter(os.Stdout)
			table.SetBorder(false)
			table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)
			table.SetHeader([]string{
				"day",
				"date",
				"food",
				"lodging min",
				"lodging max",
				"total min",
				"total max",
			})
			for _, daily := range prediction.DailyCosts {
				table.Append([]string{
					fmt.Sprintf("%d", daily.DayNumber),
					daily.Date,
					humanize.Comma(daily.DailyTotalFood),
					humanize.Comma(daily.DailyTotalAccommodationMin),
					humanize.Comma(daily.DailyTotalAccommodationMax),
					humanize.Comma(daily.DailyTotalMin),
					humanize.Comma(daily.DailyTotalMax),
				})
			}
			table.SetCaption(true, fmt.Sprintf(
				"per person %s ~ %s KRW, group total %s ~ %s KRW",
				humanize.Comma(prediction.TripSummary.PerPersonCost.Min),
				humanize.Comma(prediction.TripSummary.PerPersonCost.Max),
				humanize.Comma(prediction.TripSummary.GroupTotalCost.Min),
				humanize.Comma(prediction.TripSummary.GroupTotalCost.Max),
			))

			table.Render()
		case json:
			err := renderJSON(prediction)
			if err != nil {
				return err
			}
		}
		return nil
	},
}
