package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper periodically evicts stale registry entries.
//
// Invariant: an entry is evicted at the first tick where its age exceeds ttl,
// so no entry outlives ttl + interval. Groups are never touched.
type Sweeper struct {
	registry *Registry
	interval time.Duration
	ttl      time.Duration
	rec      Recorder
	log      zerolog.Logger
}

// NewSweeper returns a sweeper for registry. A nil recorder or logger is allowed.
//
// Precondition: interval > 0 and ttl > interval.
func NewSweeper(registry *Registry, interval, ttl time.Duration, rec Recorder, logger *zerolog.Logger) *Sweeper {
	if interval <= 0 {
		panic("core.NewSweeper: interval must be > 0")
	}
	if ttl <= interval {
		panic("core.NewSweeper: ttl must exceed interval")
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Sweeper{
		registry: registry,
		interval: interval,
		ttl:      ttl,
		rec:      rec,
		log:      componentLogger(logger, "sweeper"),
	}
}

// Start launches the sweep loop and returns immediately. The loop runs until
// ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Tick(s.registry.Now())
			}
		}
	}()
}

// Tick runs one sweep at the given time.
func (s *Sweeper) Tick(now time.Time) []Eviction {
	evicted := s.registry.Sweep(now, s.ttl)
	live := s.registry.Len()
	if len(evicted) > 0 {
		s.rec.RoomsEvicted(len(evicted))
	}
	s.rec.LiveRooms(live)
	s.log.Debug().Int("evicted", len(evicted)).Int("live", live).Msg("sweep complete")
	return evicted
}
