package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"ulascansenturk/city-explorer/internal/db/citydata"
)

type Geocoder interface {
	Geocode(ctx context.Context, query string) (citydata.Location, error)
}

type googleGeocoder struct {
	apiKey  string
	baseURL string
	client  *client
}

func NewGeocoder(apiKey, baseURL string, httpClient *http.Client) Geocoder {
	return &googleGeocoder{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  newClient("geocode", httpClient),
	}
}

type GeocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves the free-text query to its best match only.
func (g *googleGeocoder) Geocode(ctx context.Context, query string) (citydata.Location, error) {
	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.apiKey)

	body, err := g.client.get(ctx, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return citydata.Location{}, err
	}

	var apiResp GeocodeResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return citydata.Location{}, fmt.Errorf("geocode returned malformed JSON: %w: %v", ErrMalformed, err)
	}

	switch apiResp.Status {
	case "", "OK":
	case "ZERO_RESULTS":
		return citydata.Location{}, fmt.Errorf("geocode %q: %w", query, ErrNoResults)
	default:
		return citydata.Location{}, fmt.Errorf("geocode error: %s (status %s): %w",
			apiResp.ErrorMessage, apiResp.Status, ErrUnexpectedStatus)
	}

	if len(apiResp.Results) == 0 {
		return citydata.Location{}, fmt.Errorf("geocode %q: %w", query, ErrNoResults)
	}

	best := apiResp.Results[0]

	return citydata.Location{
		SearchQuery:    query,
		FormattedQuery: best.FormattedAddress,
		Latitude:       best.Geometry.Location.Lat,
		Longitude:      best.Geometry.Location.Lng,
	}, nil
}
