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

// Package places wraps the Google Places Text Search API.
package places

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "places")

// DefaultBaseURL is the production Google Maps endpoint.
const DefaultBaseURL = "https://maps.googleapis.com"

// ErrMissingKey is returned when no API key is configured.
var ErrMissingKey = errors.New("GOOGLE_PLACES_API_KEY가 설정되지 않았습니다")

// ErrNoResults is returned when the text search matches nothing.
var ErrNoResults = errors.New("검색 결과가 없습니다")

// Place is one text search hit, reduced to the fields plans carry.
type Place struct {
	ID        string  `json:"placeId"`
	Name      string  `json:"placeName"`
	Rating    float64 `json:"placeRating"`
	Address   string  `json:"placeAddress"`
	Link      string  `json:"placeLink"`
	Longitude float64 `json:"xLocation"`
	Latitude  float64 `json:"yLocation"`
}

type textSearchResponse struct {
	Status  string             `json:"status"`
	Results []textSearchResult `json:"results"`
}

type textSearchResult struct {
	PlaceID          string  `json:"place_id"`
	Name             string  `json:"name"`
	Rating           float64 `json:"rating"`
	FormattedAddress string  `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// Options are the options for the Google Places client.
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultOptions are the default options for the Google Places client.
var DefaultOptions = Options{
	APIKey:  "",
	BaseURL: DefaultBaseURL,
	Timeout: 5 * time.Second,
}

// Client talks to the Google Places Text Search API.
type Client struct {
	http   *resty.Client
	apiKey string
}

// NewClient creates a Google Places client from the given options.
func NewClient(options Options) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultOptions.BaseURL
	}
	timeout := options.Timeout
	if timeout == 0 {
		timeout = DefaultOptions.Timeout
	}
	return &Client{
		http:   resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		apiKey: options.APIKey,
	}
}

// HTTPClient exposes the underlying resty client, mostly for tests.
func (c *Client) HTTPClient() *resty.Client {
	return c.http
}

// Available returns true when the client holds an API key.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// TextSearch runs a Korean language text search and returns every hit.
func (c *Client) TextSearch(ctx context.Context, query string) ([]Place, error) {
	if c.apiKey == "" {
		return nil, ErrMissingKey
	}

	var result textSearchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":    query,
			"key":      c.apiKey,
			"language": "ko",
		}).
		SetResult(&result).
		Get("/maps/api/place/textsearch/json")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("places API returned status %d", resp.StatusCode())
	}
	if result.Status != "OK" || len(result.Results) == 0 {
		return nil, ErrNoResults
	}

	places := make([]Place, 0, len(result.Results))
	for _, item := range result.Results {
		places = append(places, Place{
			ID:        item.PlaceID,
			Name:      item.Name,
			Rating:    item.Rating,
			Address:   item.FormattedAddress,
			Link:      fmt.Sprintf("https://www.google.com/maps/place/?q=place_id:%s", item.PlaceID),
			Longitude: item.Geometry.Location.Lng,
			Latitude:  item.Geometry.Location.Lat,
		})
	}
	return places, nil
}

// Search returns the hit at resultIndex, letting callers pick a different
// place for each day of a trip. An index past the end falls back to the last
// hit rather than failing.
func (c *Client) Search(ctx context.Context, query string, resultIndex int) (*Place, error) {
	places, err := c.TextSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	if resultIndex < 0 {
		resultIndex = 0
	}
	if resultIndex >= len(places) {
		resultIndex = len(places) - 1
	}
	place := places[resultIndex]
	log.WithField("place", place.Name).Debug("found place")
	return &place, nil
}
