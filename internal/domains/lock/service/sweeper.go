package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"atrium/config"
)

// Sweeper periodically deletes expired lock rows so the table does not
// accumulate dead holds. It is housekeeping: correctness never depends on it
// because every query already treats expired rows as absent.
type Sweeper struct {
	service  Lock
	interval time.Duration
	enabled  bool
}

func NewSweeper(service Lock, cfg *config.Config) *Sweeper {
	return &Sweeper{
		service:  service,
		interval: time.Duration(cfg.Lock.Sweep.IntervalSeconds) * time.Second,
		enabled:  cfg.Lock.Sweep.Enable && cfg.Lock.Sweep.IntervalSeconds > 0,
	}
}

// Run blocks until ctx is cancelled. Call it from a goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	if !s.enabled {
		log.Info().Msg("Lock sweeper disabled")

		return
	}

	log.Info().Dur("interval", s.interval).Msg("Lock sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Lock sweeper stopped")

			return
		case <-ticker.C:
			purged, err := s.service.PurgeExpired(ctx)
			if err != nil {
				log.Error().Err(err).Msg("lock sweep failed")

				continue
			}

			if purged > 0 {
				log.Info().Int64("purged", purged).Msg("swept expired venue locks")
			}
		}
	}
}
