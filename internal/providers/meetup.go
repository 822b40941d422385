package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"ulascansenturk/city-explorer/internal/db/citydata"
)

// MaxEvents is the most events a single lookup ever returns.
const MaxEvents = 5

type EventProvider interface {
	Events(ctx context.Context, location citydata.Location) ([]citydata.Meetup, error)
}

type meetupProvider struct {
	apiKey  string
	baseURL string
	limit   int
	client  *client
}

func NewEventProvider(apiKey, baseURL string, limit int, httpClient *http.Client) EventProvider {
	if limit <= 0 || limit > MaxEvents {
		limit = MaxEvents
	}

	return &meetupProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		limit:   limit,
		client:  newClient("meetup", httpClient),
	}
}

// Events never returns more than the configured limit, whatever the
// provider sends back.
func (p *meetupProvider) Events(ctx context.Context, location citydata.Location) ([]citydata.Meetup, error) {
	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("lat", strconv.FormatFloat(location.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(location.Longitude, 'f', -1, 64))
	params.Set("page", strconv.Itoa(p.limit))

	body, err := p.client.get(ctx, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("meetup returned malformed JSON: %w", ErrMalformed)
	}

	// older endpoints answer with a bare array, newer ones wrap it
	events := gjson.ParseBytes(body)
	if !events.IsArray() {
		events = events.Get("events")
	}

	meetups := make([]citydata.Meetup, 0, p.limit)
	events.ForEach(func(_, event gjson.Result) bool {
		if len(meetups) >= p.limit {
			return false
		}
		meetups = append(meetups, citydata.Meetup{
			Link:         event.Get("link").String(),
			Name:         event.Get("name").String(),
			CreationDate: time.UnixMilli(event.Get("created").Int()).UTC().Format(DayLayout),
			Host:         event.Get("group.name").String(),
		})
		return true
	})

	return meetups, nil
}
