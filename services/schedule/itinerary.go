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

package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/planmate/planmate-ai/api"
	"github.com/planmate/planmate-ai/clients/places"
)

var log = logrus.WithField("component", "schedule")

// Lodging occupies the end of every day but the last.
var (
	lodgingStart = api.NewClockTime(21, 0, 0)
	lodgingEnd   = api.NewClockTime(23, 59, 0)
)

// PlaceSearcher finds a place for an itinerary slot.
type PlaceSearcher interface {
	Search(ctx context.Context, query string, resultIndex int) (*places.Place, error)
}

// Builder generates N day itineraries backed by place searches.
type Builder struct {
	places PlaceSearcher
}

// NewBuilder creates an itinerary builder using the given place searcher.
func NewBuilder(placeSearcher PlaceSearcher) *Builder {
	return &Builder{places: placeSearcher}
}

// Itinerary is the outcome of an auto scheduling run: create actions for the
// time table of each day plus create actions for the scheduled blocks. Block
// targets reference their day through temporary negative time table ids; the
// upstream server replaces them once the real time tables exist.
type Itinerary struct {
	TimeTables  []api.Action
	PlaceBlocks []api.Action
}

// NewPlaceBlock builds the block the upstream server is asked to create for
// a place.
func NewPlaceBlock(place *places.Place, category int, start api.ClockTime, end api.ClockTime, date api.CalendarDate, timeTableID int64) api.PlaceBlock {
	return api.PlaceBlock{
		BlockID:         -1,
		PlaceName:       place.Name,
		PlaceTheme:      "",
		PlaceRating:     place.Rating,
		PlaceAddress:    place.Address,
		PlaceLink:       place.Link,
		BlockStartTime:  start,
		BlockEndTime:    end,
		XLocation:       place.Longitude,
		YLocation:       place.Latitude,
		PlaceID:         place.ID,
		PlaceCategoryID: category,
		TimeTableID:     timeTableID,
		Date:            date,
	}
}

// Build generates a full itinerary of the given length. Each day gets an
// attraction in the morning, restaurants for lunch and dinner and, on every
// day but the last, the trip's lodging in the evening. Slots conflicting
// with blocks already planned on that date are left alone.
func (b *Builder) Build(ctx context.Context, days int, startDate string, planCtx api.PlanContext, destination string) (*Itinerary, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("unable to parse start date %q: %w", startDate, err)
	}
	if days < 1 {
		return nil, fmt.Errorf("invalid trip length %d", days)
	}

	var lodging *places.Place
	if days > 1 {
		lodging = b.resolveLodging(ctx, planCtx, api.CalendarDate(start.Format("2006-01-02")), destination)
	}

	itinerary := &Itinerary{}
	for day := 0; day < days; day++ {
		date := api.CalendarDate(start.AddDate(0, 0, day).Format("2006-01-02"))

		itinerary.TimeTables = append(itinerary.TimeTables, api.Action{
			Action:     api.ActionCreate,
			TargetName: api.TargetTimeTable,
			Target:     api.TimeTable{Date: date},
		})

		// Real ids are assigned upstream once the time tables exist.
		tempTimeTableID := int64(-(day + 1))

		itinerary.PlaceBlocks = append(itinerary.PlaceBlocks, b.buildDay(
			ctx, day+1, date, tempTimeTableID, destination, day == days-1, lodging, planCtx,
		)...)
	}
	return itinerary, nil
}

// resolveLodging picks the lodging used for the whole trip: a block already
// occupying the first evening when there is one, otherwise a hotel search.
func (b *Builder) resolveLodging(ctx context.Context, planCtx api.PlanContext, firstDate api.CalendarDate, destination string) *places.Place {
	for _, block := range BlocksForDate(planCtx.PlaceBlocks, firstDate) {
		if block.BlockStartTime.Before(lodgingEnd) && lodgingStart.Before(block.BlockEndTime) {
			log.WithField("place", block.PlaceName).Debug("reusing first day lodging")
			return &places.Place{
				ID:        block.PlaceID,
				Name:      block.PlaceName,
				Rating:    block.PlaceRating,
				Address:   block.PlaceAddress,
				Link:      block.PlaceLink,
				Longitude: block.XLocation,
				Latitude:  block.YLocation,
			}
		}
	}

	place, err := b.places.Search(ctx, destination+" 호텔", 0)
	if err != nil {
		log.WithField("error", err).Debug("no lodging found")
		return nil
	}
	log.WithField("place", place.Name).Debug("selected lodging")
	return place
}

func (b *Builder) buildDay(ctx context.Context, dayNumber int, date api.CalendarDate, timeTableID int64, destination string, lastDay bool, lodging *places.Place, planCtx api.PlanContext) []api.Action {
	existing := BlocksForDate(planCtx.PlaceBlocks, date)

	dinnerQuery := destination + " 고기 맛집"
	if dayNumber%2 == 0 {
		dinnerQuery = destination + " 회 맛집"
	}
	slots := []struct {
		start api.ClockTime
		end   api.ClockTime
		query string
	}{
		{api.NewClockTime(9, 0, 0), api.NewClockTime(11, 0, 0), destination + " 관광지"},
		{api.NewClockTime(12, 0, 0), api.NewClockTime(14, 0, 0), destination + " 맛집"},
		{api.NewClockTime(18, 0, 0), api.NewClockTime(20, 0, 0), dinnerQuery},
	}

	// The free slots of the day are searched in parallel, a failed search
	// only loses its own slot.
	found := make([]*places.Place, len(slots))
	group, groupCtx := errgroup.WithContext(ctx)
	for slotIndex, slot := range slots {
		if HasConflict(existing, slot.start, slot.end) {
			log.WithFields(logrus.Fields{"date": date, "slot": slot.start.String()}).Debug("slot already planned, skipping")
			continue
		}
		slotIndex, slot := slotIndex, slot
		group.Go(func() error {
			// A different result for each day keeps the itinerary varied.
			place, err := b.places.Search(groupCtx, slot.query, dayNumber-1)
			if err != nil {
				log.WithFields(logrus.Fields{"query": slot.query, "error": err}).Debug("place search failed, skipping slot")
				return nil
			}
			found[slotIndex] = place
			return nil
		})
	}
	_ = group.Wait()

	var actions []api.Action
	for slotIndex, slot := range slots {
		place := found[slotIndex]
		if place == nil {
			continue
		}
		actions = append(actions, api.Action{
			Action:     api.ActionCreate,
			TargetName: api.TargetTimeTablePlaceBlock,
			Target:     NewPlaceBlock(place, DetectPlaceCategory(slot.query), slot.start, slot.end, date, timeTableID),
		})
	}

	if !lastDay && lodging != nil {
		if HasConflict(existing, lodgingStart, lodgingEnd) {
			log.WithField("date", date).Debug("lodging slot already planned, skipping")
		} else {
			actions = append(actions, api.Action{
				Action:     api.ActionCreate,
				TargetName: api.TargetTimeTablePlaceBlock,
				Target:     NewPlaceBlock(lodging, api.PlaceCategoryLodging, lodgingStart, lodgingEnd, date, timeTableID),
			})
		}
	}
	return actions
}
