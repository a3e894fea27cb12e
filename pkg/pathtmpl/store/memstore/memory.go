package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/pathtmpl/pkg/pathtmpl/internalerr"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu   sync.RWMutex
	byID map[string]store.Observation
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{byID: make(map[string]store.Observation)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// Record implements store.Store.
func (s *Store) Record(ctx context.Context, o store.Observation) error {
	if o.ID == "" || o.RawURL == "" {
		return fmt.Errorf("%w: observation requires id and raw url", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[o.ID]; ok {
		return fmt.Errorf("observation %s already recorded", o.ID)
	}
	s.byID[o.ID] = o
	return nil
}

// Observation implements store.Store.
func (s *Store) Observation(ctx context.Context, id string) (store.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.byID[id]
	if !ok {
		return store.Observation{}, fmt.Errorf("observation %s: %w", id, internalerr.ErrNotFound)
	}
	return o, nil
}

// Templates implements store.Store.
func (s *Store) Templates(ctx context.Context, limit int) ([]store.TemplateStat, error) {
	s.mu.RLock()
	obs := make([]store.Observation, 0, len(s.byID))
	for _, o := range s.byID {
		obs = append(obs, o)
	}
	s.mu.RUnlock()

	// earliest first, so the first observation of a template is its example
	sort.Slice(obs, func(i, j int) bool {
		if !obs[i].SeenAt.Equal(obs[j].SeenAt) {
			return obs[i].SeenAt.Before(obs[j].SeenAt)
		}
		return obs[i].ID < obs[j].ID
	})

	index := make(map[string]int)
	var stats []store.TemplateStat
	for _, o := range obs {
		i, ok := index[o.Template]
		if !ok {
			index[o.Template] = len(stats)
			stats = append(stats, store.TemplateStat{
				Template:  o.Template,
				Example:   o.RawURL,
				FirstSeen: o.SeenAt,
			})
			i = len(stats) - 1
		}
		stats[i].Count++
		stats[i].LastSeen = o.SeenAt
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Template < stats[j].Template
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}
