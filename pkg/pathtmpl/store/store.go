package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store persists which template each observed URL produced
type Store interface {
	Close() error

	Record(ctx context.Context, o Observation) error
	Observation(ctx context.Context, id string) (Observation, error)

	// Templates lists templates by descending observation count, then by
	// template text. limit <= 0 returns all.
	Templates(ctx context.Context, limit int) ([]TemplateStat, error)
}

// Observation is one URL seen in traffic and the template it produced
type Observation struct {
	ID       string
	RawURL   string
	Template string
	SeenAt   time.Time
}

// TemplateStat summarizes the observations of one template. Identical
// templates are counted together; distinct templates are never merged.
type TemplateStat struct {
	Template  string
	Count     int64
	Example   string // earliest raw URL
	FirstSeen time.Time
	LastSeen  time.Time
}

// IDs generates lexically sortable observation IDs
type IDs struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDs creates a new ID generator
func NewIDs() *IDs {
	return &IDs{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// New returns an ID for an observation seen at t. Safe for concurrent use.
func (g *IDs) New(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}
