package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
	"ulascansenturk/city-explorer/internal/db/citydata"
)

type BusinessProvider interface {
	Businesses(ctx context.Context, location citydata.Location) ([]citydata.Business, error)
}

type yelpProvider struct {
	apiKey  string
	baseURL string
	client  *client
}

func NewBusinessProvider(apiKey, baseURL string, httpClient *http.Client) BusinessProvider {
	return &yelpProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  newClient("yelp", httpClient),
	}
}

func (p *yelpProvider) Businesses(ctx context.Context, location citydata.Location) ([]citydata.Business, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(location.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(location.Longitude, 'f', -1, 64))

	header := http.Header{}
	header.Set("Authorization", "Bearer "+p.apiKey)

	body, err := p.client.get(ctx, p.baseURL+"?"+params.Encode(), header)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yelp returned malformed JSON: %w", ErrMalformed)
	}

	results := gjson.GetBytes(body, "businesses").Array()

	businesses := make([]citydata.Business, 0, len(results))
	for _, biz := range results {
		businesses = append(businesses, citydata.Business{
			Name:     biz.Get("name").String(),
			ImageURL: biz.Get("image_url").String(),
			Price:    biz.Get("price").String(),
			Rating:   biz.Get("rating").Float(),
			URL:      biz.Get("url").String(),
		})
	}

	return businesses, nil
}
