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

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/planmate/planmate-ai/api"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// recommendViper represents the configuration of the `planmate client recommend` command
var recommendViper = viper.New()

const (
	recommendCityKey      = "city"
	recommendStartDateKey = "start_date"
	recommendEndDateKey   = "end_date"
)

func init() {
	recommendViper.SetDefault(recommendCityKey, "")
	recommendCmd.Flags().String(
		recommendCityKey,
		recommendViper.GetString(recommendCityKey),
		"Destination city, Korean or English name",
	)

	recommendViper.SetDefault(recommendStartDateKey, "")
	recommendCmd.Flags().String(
		recommendStartDateKey,
		recommendViper.GetString(recommendStartDateKey),
		"First day of the trip (YYYY-MM-DD)",
	)

	recommendViper.SetDefault(recommendEndDateKey, "")
	recommendCmd.Flags().String(
		recommendEndDateKey,
		recommendViper.GetString(recommendEndDateKey),
		"Last day of the trip (YYYY-MM-DD), defaults to the start date",
	)

	// Don't sort alphabetically, keep insertion order
	recommendCmd.Flags().SortFlags = false

	// Bind "cobra" flags defined in the CLI with viper
	_ = recommendViper.BindPFlags(recommendCmd.Flags())
}

// recommendCmd represents the `planmate client recommend` command
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Retrieve the weather and outfit recommendation of a trip",
	Args:  cobra.NoArgs,
	RunE: func(_cmd *cobra.Command, _args []string) error {
		consoleOutputFormat, err := retrieveConsoleOutputFormat()
		if err != nil {
			return err
		}

		city := recommendViper.GetString(recommendCityKey)
		if city == "" {
			return fmt.Errorf("missing required argument \"--%s\"", recommendCityKey)
		}

		startDate := recommendViper.GetString(recommendStartDateKey)
		if startDate == "" {
			return fmt.Errorf("missing required argument \"--%s\"", recommendStartDateKey)
		}

		endDate := recommendViper.GetString(recommendEndDateKey)
		if endDate == "" {
			endDate = startDate
		}

		client := newServiceClient()

		ctx, cancel := context.WithTimeout(context.Background(), clientViper.GetDuration(clientTimeoutKey))
		defer cancel()
		recommendation, err := client.Recommend(ctx, api.WeatherRecommendationRequest{
			City:      city,
			StartDate: startDate,
			EndDate:   endDate,
		})
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
				"weather",
				"min °c",
				"max °c",
				"feels like",
			})
			for day, weather := range recommendation.Weather {
				table.Append([]string{
					fmt.Sprintf("%d", day+1),
					weather.Date,
					weather.Description,
					fmt.Sprintf("%.1f", weather.TempMin),
					fmt.Sprintf("%.1f", weather.TempMax),
					fmt.Sprintf("%.1f", weather.FeelsLike),
				})
			}
			table.SetCaption(true, fmt.Sprintf(
				"%d day trip to %s, %s ~ %s",
				len(recommendation.Weather),
				city,
				startDate,
				endDate,
			))

			table.Render()

			fmt.Println()
			fmt.Println(color.CyanString("%s", recommendation.Recommendation))
		case json:
			err := renderJSON(recommendation)
			if err != nil {
				return err
			}
		}
		return nil
	},
}
