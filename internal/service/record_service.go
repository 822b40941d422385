package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"ulascansenturk/city-explorer/internal/db/citydata"
	"ulascansenturk/city-explorer/internal/providers"
	"ulascansenturk/city-explorer/internal/telemetry"
)

const (
	weatherKind  = "weather"
	meetupKind   = "meetups"
	businessKind = "businesses"
)

// RecordService resolves the records of one kind for a stored location,
// serving them from the database while they are fresh.
type RecordService[E any] interface {
	Get(ctx context.Context, location citydata.Location) ([]E, error)
	// WaitForWrites blocks until every background persist has finished.
	WaitForWrites()
}

type fetchRecords[E any] func(ctx context.Context, location citydata.Location) ([]E, error)

type recordService[E any, P interface {
	*E
	citydata.Scoped
}] struct {
	kind       string
	repo       citydata.RecordRepository[E]
	fetch      fetchRecords[E]
	ttl        time.Duration
	aggregator RequestAggregator[[]E]
	pending    sync.WaitGroup
	// limit caps what a store hit returns; zero means uncapped.
	limit int
}

func newRecordService[E any, P interface {
	*E
	citydata.Scoped
}](
	kind string,
	repo citydata.RecordRepository[E],
	fetch fetchRecords[E],
	ttl time.Duration,
	aggregator RequestAggregator[[]E],
) *recordService[E, P] {
	return &recordService[E, P]{
		kind:       kind,
		repo:       repo,
		fetch:      fetch,
		ttl:        ttl,
		aggregator: aggregator,
	}
}

func NewWeatherService(
	provider providers.ForecastProvider,
	repo citydata.RecordRepository[citydata.Weather],
	ttl time.Duration,
	aggregator RequestAggregator[[]citydata.Weather],
) RecordService[citydata.Weather] {
	return newRecordService[citydata.Weather](weatherKind, repo, provider.Forecast, ttl, aggregator)
}

// NewMeetupService never serves more than limit meetups, including rows
// stored under a larger limit.
func NewMeetupService(
	provider providers.EventProvider,
	repo citydata.RecordRepository[citydata.Meetup],
	limit int,
	ttl time.Duration,
	aggregator RequestAggregator[[]citydata.Meetup],
) RecordService[citydata.Meetup] {
	s := newRecordService[citydata.Meetup](meetupKind, repo, provider.Events, ttl, aggregator)
	s.limit = limit
	if limit <= 0 || limit > providers.MaxEvents {
		s.limit = providers.MaxEvents
	}
	return s
}

func NewBusinessService(
	provider providers.BusinessProvider,
	repo citydata.RecordRepository[citydata.Business],
	ttl time.Duration,
	aggregator RequestAggregator[[]citydata.Business],
) RecordService[citydata.Business] {
	return newRecordService[citydata.Business](businessKind, repo, provider.Businesses, ttl, aggregator)
}

func (s *recordService[E, P]) Get(ctx context.Context, location citydata.Location) ([]E, error) {
	if location.ID == 0 {
		return nil, ErrInvalidLocation
	}

	logger := log.With().Str("kind", s.kind).Uint("location_id", location.ID).Logger()

	records, err := s.repo.FindByLocation(ctx, location.ID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read cached records, fetching from provider")
		records = nil
	}

	if len(records) > 0 {
		if s.fresh(records) {
			telemetry.CacheLookups.WithLabelValues(s.kind, telemetry.OutcomeHit).Inc()
			if s.limit > 0 && len(records) > s.limit {
				records = records[:s.limit]
			}
			logger.Debug().Int("count", len(records)).Msg("records served from store")
			return records, nil
		}

		telemetry.CacheLookups.WithLabelValues(s.kind, telemetry.OutcomeStale).Inc()
		deleted, err := s.repo.DeleteByLocation(ctx, location.ID)
		if err != nil {
			logger.Error().Err(err).Msg("failed to delete stale records")
		} else {
			logger.Debug().Int64("deleted", deleted).Msg("stale records deleted")
		}
	} else {
		telemetry.CacheLookups.WithLabelValues(s.kind, telemetry.OutcomeMiss).Inc()
	}

	key := s.kind + ":" + strconv.FormatUint(uint64(location.ID), 10)
	responseChan := s.aggregator.AddRequest(ctx, key, func(fetchCtx context.Context) ([]E, error) {
		return s.fetchAndPersist(fetchCtx, location)
	})

	return await(ctx, responseChan)
}

func (s *recordService[E, P]) fetchAndPersist(ctx context.Context, location citydata.Location) ([]E, error) {
	logger := log.With().Str("kind", s.kind).Uint("location_id", location.ID).Logger()

	records, err := s.fetch(ctx, location)
	if err != nil {
		if errors.Is(err, providers.ErrNoResults) {
			return []E{}, nil
		}
		logger.Error().Err(err).Msg("provider fetch failed")
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	if len(records) == 0 {
		logger.Info().Msg("provider returned no records")
		return []E{}, nil
	}

	// postgres keeps microseconds, so truncate to read back the same value
	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	for i := range records {
		P(&records[i]).Stamp(location.ID, createdAt)
	}

	s.persist(location.ID, slices.Clone(records), logger.With().Int("count", len(records)).Logger())

	return records, nil
}

// persist replaces whatever is stored for the location, so a fetch that raced
// another one for the same location never leaves two batches behind.
func (s *recordService[E, P]) persist(locationID uint, batch []E, logger zerolog.Logger) {
	gauge := telemetry.PendingWrites.WithLabelValues(s.kind)
	gauge.Inc()
	s.pending.Add(1)

	go func() {
		defer s.pending.Done()
		defer gauge.Dec()

		if err := s.repo.ReplaceForLocation(context.Background(), locationID, batch); err != nil {
			logger.Error().Err(err).Msg("failed to persist fetched records")
			return
		}
		logger.Debug().Msg("fetched records persisted")
	}()
}

// fresh reports whether the oldest row is still within the ttl.
func (s *recordService[E, P]) fresh(records []E) bool {
	oldest := P(&records[0]).Created()
	for i := 1; i < len(records); i++ {
		if created := P(&records[i]).Created(); created.Before(oldest) {
			oldest = created
		}
	}
	return time.Since(oldest) <= s.ttl
}

func (s *recordService[E, P]) WaitForWrites() {
	s.pending.Wait()
}
