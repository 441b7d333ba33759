package core

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Eviction describes a registry entry removed by a sweep.
type Eviction struct {
	Code string
	Age  time.Duration
}

// Registry maps live room codes to their creation time.
// It owns code uniqueness and expiry. All methods are safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]time.Time
	now   func() time.Time
	log   zerolog.Logger
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithClock overrides the time source used to stamp reservations.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *zerolog.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		rooms: make(map[string]time.Time),
		now:   time.Now,
		log:   componentLogger(logger, "registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reserve inserts code stamped with the current time iff it is absent.
// Reports whether the insertion happened; concurrent callers for the same
// code see exactly one true.
func (r *Registry) Reserve(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[code]; exists {
		return false
	}
	r.rooms[code] = r.now()
	return true
}

// Exists reports whether code is a live entry.
func (r *Registry) Exists(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rooms[code]
	return ok
}

// CreatedAt returns the reservation time of code.
func (r *Registry) CreatedAt(code string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rooms[code]
	return t, ok
}

// Sweep removes every entry with now - createdAt > ttl and logs each eviction.
// Entries exactly ttl old survive. Evictions are returned sorted by code.
func (r *Registry) Sweep(now time.Time, ttl time.Duration) []Eviction {
	r.mu.Lock()
	var evicted []Eviction
	for code, createdAt := range r.rooms {
		age := now.Sub(createdAt)
		if age <= ttl {
			continue
		}
		delete(r.rooms, code)
		evicted = append(evicted, Eviction{Code: code, Age: age})
	}
	r.mu.Unlock()

	slices.SortFunc(evicted, func(a, b Eviction) int { return cmp.Compare(a.Code, b.Code) })
	for _, ev := range evicted {
		r.log.Info().Str("code", ev.Code).Dur("age", ev.Age).Msg("room code evicted")
	}
	return evicted
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

// Now returns the registry's current time.
func (r *Registry) Now() time.Time {
	return r.now()
}

func componentLogger(logger *zerolog.Logger, component string) zerolog.Logger {
	if logger == nil {
		return zerolog.Nop()
	}
	return logger.With().Str("component", component).Logger()
}
