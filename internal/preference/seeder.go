package preference

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

const (
	outcomeSeeded = "seeded"
	outcomeKept   = "kept"
)

var seedCounter = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "vncprefs_seed_keys_total",
		Help: "Number of preference keys visited by the seeder, by outcome.",
	},
	[]string{"key", "outcome"},
)

// Report lists what a seeding run did with each key.
type Report struct {
	Origin string `json:"origin,omitempty"`
	Seeded []Key  `json:"seeded"`
	Kept   []Key  `json:"kept"`
}

// Seeder writes the defaults of missing preferences into a store.
type Seeder struct {
	store  Store
	origin string
}

// NewSeeder returns a seeder for store. origin only labels the log line.
// A nil pointer wrapped in store is caught by stores that guard their
// receiver, such as MemoryStore; others may panic.
func NewSeeder(store Store, origin string) *Seeder {
	return &Seeder{store: store, origin: origin}
}

// Seed fills every absent preference with its default, in Defaults order.
// Present values are left as they are. A store fault stops the run; keys
// written before the fault stay written.
func (s *Seeder) Seed(ctx context.Context) (*Report, error) {
	if s == nil || s.store == nil {
		return nil, ErrNilStore
	}

	report := &Report{
		Origin: s.origin,
		Seeded: make([]Key, 0, len(defaults)),
		Kept:   make([]Key, 0, len(defaults)),
	}

	for _, e := range defaults {
		written, err := s.fill(ctx, e)
		if err != nil {
			return report, fmt.Errorf("%w: key %s: %w", ErrStore, e.Key, err)
		}

		if written {
			report.Seeded = append(report.Seeded, e.Key)
			seedCounter.WithLabelValues(string(e.Key), outcomeSeeded).Inc()

			continue
		}

		report.Kept = append(report.Kept, e.Key)
		seedCounter.WithLabelValues(string(e.Key), outcomeKept).Inc()
	}

	log.Info().
		Str("origin", s.origin).
		Strs("seeded", keyStrings(report.Seeded)).
		Strs("kept", keyStrings(report.Kept)).
		Msg("viewer preference defaults loaded")

	return report, nil
}

func (s *Seeder) fill(ctx context.Context, e Entry) (bool, error) {
	if as, ok := s.store.(AbsentSetter); ok {
		return as.SetIfAbsent(ctx, string(e.Key), e.Default)
	}

	_, found, err := s.store.Get(ctx, string(e.Key))
	if err != nil {
		return false, err
	}

	if found {
		return false, nil
	}

	if err = s.store.Set(ctx, string(e.Key), e.Default); err != nil {
		return false, err
	}

	return true, nil
}

// Seed is shorthand for NewSeeder(store, origin).Seed(ctx).
func Seed(ctx context.Context, store Store, origin string) (*Report, error) {
	return NewSeeder(store, origin).Seed(ctx)
}

func keyStrings(keys []Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}

	return out
}
