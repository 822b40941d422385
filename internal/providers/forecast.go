package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ulascansenturk/city-explorer/internal/db/citydata"
)

// DayLayout is how day-level timestamps are rendered to clients.
const DayLayout = "Mon Jan 02 2006"

type ForecastProvider interface {
	Forecast(ctx context.Context, location citydata.Location) ([]citydata.Weather, error)
}

type darkSkyProvider struct {
	apiKey  string
	baseURL string
	client  *client
}

func NewForecastProvider(apiKey, baseURL string, httpClient *http.Client) ForecastProvider {
	return &darkSkyProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  newClient("weather", httpClient),
	}
}

type ForecastResponse struct {
	Daily struct {
		Data []struct {
			Summary string `json:"summary"`
			Time    int64  `json:"time"`
		} `json:"data"`
	} `json:"daily"`
}

func (p *darkSkyProvider) Forecast(ctx context.Context, location citydata.Location) ([]citydata.Weather, error) {
	url := fmt.Sprintf("%s/%s/%s,%s",
		p.baseURL,
		p.apiKey,
		strconv.FormatFloat(location.Latitude, 'f', -1, 64),
		strconv.FormatFloat(location.Longitude, 'f', -1, 64),
	)

	body, err := p.client.get(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	var apiResp ForecastResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("weather returned malformed JSON: %w: %v", ErrMalformed, err)
	}

	weathers := make([]citydata.Weather, 0, len(apiResp.Daily.Data))
	for _, day := range apiResp.Daily.Data {
		weathers = append(weathers, citydata.Weather{
			Forecast: day.Summary,
			Time:     time.Unix(day.Time, 0).UTC().Format(DayLayout),
		})
	}

	return weathers, nil
}
