package board

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTTL is how long an untouched board is kept.
const DefaultIdleTTL = 30 * time.Minute

// Store keeps one Board per page load, keyed by a random ID.
type Store struct {
	api  ActivityService
	opts Options
	ttl  time.Duration

	mu     sync.RWMutex
	boards map[string]*Board
}

// NewStore creates a store whose boards use api and opts.
func NewStore(api ActivityService, opts Options, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	if opts.Validator == nil {
		opts.Validator = NewValidator()
	}
	return &Store{
		api:    api,
		opts:   opts,
		ttl:    ttl,
		boards: make(map[string]*Board),
	}
}

// Create makes a new board and loads its activities. A failed load is kept
// on the board and shown in its view; it is not an error here.
func (s *Store) Create(ctx context.Context) *Board {
	b := New(uuid.NewString(), s.api, s.opts)
	_ = b.LoadActivities(ctx)

	s.mu.Lock()
	s.boards[b.ID()] = b
	s.mu.Unlock()

	slog.Debug("Board created", "board_id", b.ID(), "boards", s.Len())
	return b
}

// Get returns the board with the given ID and marks it as recently used.
func (s *Store) Get(id string) (*Board, bool) {
	s.mu.RLock()
	b, ok := s.boards[id]
	s.mu.RUnlock()

	if ok {
		b.touch(time.Now())
	}
	return b, ok
}

// Has reports whether id names a live board without touching it.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.boards[id]
	return ok
}

// Len returns the number of live boards.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.boards)
}

// Evict removes boards idle since before now minus the TTL and returns how
// many were removed.
func (s *Store) Evict(now time.Time) int {
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	var evicted []*Board
	for id, b := range s.boards {
		if b.idleSince().Before(cutoff) {
			evicted = append(evicted, b)
			delete(s.boards, id)
		}
	}
	s.mu.Unlock()

	for _, b := range evicted {
		b.Close()
	}
	return len(evicted)
}

// Run evicts idle boards every interval until ctx is canceled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.Evict(now); n > 0 {
				slog.Info("Evicted idle boards", "count", n, "remaining", s.Len())
			}
		}
	}
}

// Close stops every board's timers and empties the store.
func (s *Store) Close() {
	s.mu.Lock()
	boards := s.boards
	s.boards = make(map[string]*Board)
	s.mu.Unlock()

	for _, b := range boards {
		b.Close()
	}
}
