package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
	"ulascansenturk/city-explorer/internal/telemetry"
)

const sweepTimeout = 30 * time.Second

// Purger deletes cached rows created before cutoff.
type Purger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Target struct {
	Table  string
	Purger Purger
}

// Sweeper periodically drops cached records older than the retention window
// so rows for locations nobody asks about again don't pile up.
type Sweeper struct {
	scheduler *gocron.Scheduler
	targets   []Target
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

func NewSweeper(interval, retention time.Duration, targets ...Target) *Sweeper {
	return &Sweeper{
		scheduler: gocron.NewScheduler(time.UTC),
		targets:   targets,
		interval:  interval,
		retention: retention,
		now:       time.Now,
	}
}

func (s *Sweeper) Start() error {
	if len(s.targets) == 0 || s.interval <= 0 {
		log.Info().Msg("retention sweeper disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Info().Dur("interval", s.interval).Dur("retention", s.retention).Msg("retention sweeper started")

	return nil
}

// RunOnce sweeps every target and returns the total number of deleted rows.
// A failing table is logged and does not stop the others.
func (s *Sweeper) RunOnce(ctx context.Context) int64 {
	cutoff := s.now().Add(-s.retention)

	var total int64
	for _, target := range s.targets {
		deleted, err := target.Purger.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			log.Error().Err(err).Str("table", target.Table).Msg("failed to sweep expired records")
			continue
		}
		if deleted > 0 {
			telemetry.SweptRows.WithLabelValues(target.Table).Add(float64(deleted))
			log.Info().Str("table", target.Table).Int64("deleted", deleted).Msg("swept expired records")
		}
		total += deleted
	}

	return total
}

func (s *Sweeper) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
