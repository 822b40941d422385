package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"ulascansenturk/city-explorer/internal/db/citydata"
	"ulascansenturk/city-explorer/internal/inmemorycache"
	"ulascansenturk/city-explorer/internal/providers"
	"ulascansenturk/city-explorer/internal/telemetry"
)

const locationKind = "location"

type LocationService interface {
	GetLocation(ctx context.Context, query string) (citydata.Location, error)
	// GetLocationByID reads a stored location straight from the database.
	GetLocationByID(ctx context.Context, id uint) (citydata.Location, error)
}

type locationService struct {
	geocoder   providers.Geocoder
	repo       citydata.LocationRepository
	cache      inmemorycache.Cache
	cacheTTL   time.Duration
	aggregator RequestAggregator[citydata.Location]
}

// NewLocationService builds the location cache-or-fetch path. Locations never
// go stale; cache may be nil to skip the in-process layer.
func NewLocationService(
	geocoder providers.Geocoder,
	repo citydata.LocationRepository,
	cache inmemorycache.Cache,
	cacheTTL time.Duration,
	aggregator RequestAggregator[citydata.Location],
) LocationService {
	return &locationService{
		geocoder:   geocoder,
		repo:       repo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		aggregator: aggregator,
	}
}

func (s *locationService) GetLocation(ctx context.Context, query string) (citydata.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return citydata.Location{}, ErrEmptyQuery
	}

	if s.cache != nil {
		cached, found, err := s.cache.Get(query)
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("failed to read location from memory cache")
		} else if found {
			telemetry.CacheLookups.WithLabelValues(locationKind, telemetry.OutcomeMemory).Inc()
			return *cached, nil
		}
	}

	stored, err := s.repo.FindByQuery(ctx, query)
	if err == nil {
		log.Debug().Str("query", query).Uint("location_id", stored.ID).Msg("location served from store")
		telemetry.CacheLookups.WithLabelValues(locationKind, telemetry.OutcomeHit).Inc()
		s.remember(query, stored)
		return *stored, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return citydata.Location{}, fmt.Errorf("failed to look up location %q: %w", query, err)
	}

	telemetry.CacheLookups.WithLabelValues(locationKind, telemetry.OutcomeMiss).Inc()

	responseChan := s.aggregator.AddRequest(ctx, query, func(fetchCtx context.Context) (citydata.Location, error) {
		return s.fetchAndStore(fetchCtx, query)
	})

	return await(ctx, responseChan)
}

func (s *locationService) GetLocationByID(ctx context.Context, id uint) (citydata.Location, error) {
	if id == 0 {
		return citydata.Location{}, ErrInvalidLocation
	}

	stored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return citydata.Location{}, fmt.Errorf("%w: id %d", ErrLocationNotFound, id)
		}
		return citydata.Location{}, fmt.Errorf("failed to look up location %d: %w", id, err)
	}

	return *stored, nil
}

// fetchAndStore persists synchronously: callers need the row id for every
// follow-up request.
func (s *locationService) fetchAndStore(ctx context.Context, query string) (citydata.Location, error) {
	location, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		if errors.Is(err, providers.ErrNoResults) {
			log.Info().Str("query", query).Msg("geocoder found no match")
			return citydata.Location{}, fmt.Errorf("%w: %q", ErrLocationNotFound, query)
		}
		log.Error().Err(err).Str("query", query).Msg("failed to geocode location")
		return citydata.Location{}, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	location.SearchQuery = query

	if err := s.repo.Create(ctx, &location); err != nil {
		log.Error().Err(err).Str("query", query).Msg("failed to store location")
		return citydata.Location{}, fmt.Errorf("failed to store location %q: %w", query, err)
	}

	if location.ID == 0 {
		// lost an insert race against another instance
		stored, err := s.repo.FindByQuery(ctx, query)
		if err != nil {
			return citydata.Location{}, fmt.Errorf("failed to reload location %q: %w", query, err)
		}
		location = *stored
	}

	log.Info().Str("query", query).Uint("location_id", location.ID).Msg("location fetched from geocoder")
	s.remember(query, &location)

	return location, nil
}

func (s *locationService) remember(query string, location *citydata.Location) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(query, location, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("query", query).Msg("failed to cache location in memory")
	}
}
