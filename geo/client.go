// Package geo wraps the data.geopf.fr geocoding and routing services. Both
// endpoints are rate limited upstream and may fail; failures degrade to an
// empty or error payload instead of surfacing as a fault to the caller.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/insaroule/insaroule/pkg/logger"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Suggestion is one ranked autocompletion result.
type Suggestion struct {
	Fulltext  string  `json:"fulltext"`
	Value     string  `json:"value"` // "lat/lng", what the ride form posts back
	Street    string  `json:"street"`
	City      string  `json:"city"`
	Zipcode   string  `json:"zipcode"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type completionResponse struct {
	Results []struct {
		Fulltext string  `json:"fulltext"`
		Street   string  `json:"street"`
		City     string  `json:"city"`
		Zipcode  string  `json:"zipcode"`
		X        float64 `json:"x"` // longitude
		Y        float64 `json:"y"` // latitude
	} `json:"results"`
}

// Autocomplete returns suggestions for a free-text query. Any upstream
// problem returns an empty slice.
func (c *Client) Autocomplete(ctx context.Context, query string) []Suggestion {
	u := fmt.Sprintf("%s/geocodage/completion/?text=%s&terr=METROPOLE&type=StreetAddress",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil
	}
	res, err := c.http.Do(req)
	if err != nil {
		logger.L().Warnw("geocoding request failed", "err", err)
		return nil
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		logger.L().Warnw("geocoding non-200", "status", res.StatusCode)
		return nil
	}

	var payload completionResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil
	}

	out := make([]Suggestion, 0, len(payload.Results))
	for _, r := range payload.Results {
		out = append(out, Suggestion{
			Fulltext:  r.Fulltext,
			Value:     fmt.Sprintf("%g/%g", r.Y, r.X),
			Street:    r.Street,
			City:      r.City,
			Zipcode:   r.Zipcode,
			Latitude:  r.Y,
			Longitude: r.X,
		})
	}
	return out
}

// RouteError is the degraded payload returned when routing is unavailable.
type RouteError struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
}

// Route asks for an itinerary between "lng,lat" coordinate pairs and passes
// the upstream document through untouched. A failure returns a RouteError
// payload, never a Go error the handler would turn into a 5xx.
func (c *Client) Route(ctx context.Context, start, end string) (json.RawMessage, *RouteError) {
	u := fmt.Sprintf("%s/navigation/itineraire?resource=bdtopo-osrm&start=%s&end=%s"+
		"&profile=car&optimization=fastest&geometryFormat=geojson&getSteps=true"+
		"&getBbox=true&distanceUnit=kilometer&timeUnit=hour&crs=EPSG%%3A4326",
		c.baseURL, url.QueryEscape(start), url.QueryEscape(end))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &RouteError{Error: "failed to build routing request"}
	}
	res, err := c.http.Do(req)
	if err != nil {
		logger.L().Warnw("routing request failed", "err", err)
		return nil, &RouteError{Error: "failed to fetch routing information"}
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, &RouteError{
			Error:      "failed to fetch routing information",
			StatusCode: res.StatusCode,
		}
	}

	var doc json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, &RouteError{Error: "invalid routing response"}
	}
	return doc, nil
}
