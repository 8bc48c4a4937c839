package booking

import (
	"context"
	"sync"
	"time"

	"innoviahub/models"
)

// PendingState is the envelope stored per user between proposal and
// resolution. Action and Booking are always set and cleared together.
type PendingState struct {
	Action  models.PendingAction   `json:"action"`
	Booking *models.PendingBooking `json:"booking,omitempty"`
}

// PendingStore holds at most one unresolved proposal per user.
//
// Propose overwrites unconditionally (last-proposal-wins, no queueing).
// Take atomically reads and clears, so two near-simultaneous confirms for
// the same user cannot both observe the proposal. Implementations expire
// proposals after their TTL; an expired proposal reads as absent.
type PendingStore interface {
	Propose(ctx context.Context, userID string, state PendingState) error
	Peek(ctx context.Context, userID string) (*PendingState, error)
	Take(ctx context.Context, userID string) (*PendingState, error)
	Resolve(ctx context.Context, userID string) error
}

// MemoryPendingStore is the in-memory PendingStore for single-instance
// deployments. A coarse single lock is fine at interactive traffic rates.
type MemoryPendingStore struct {
	mu      sync.Mutex
	entries map[string]PendingState
	ttl     time.Duration
}

// NewMemoryPendingStore constructs an in-memory store. A zero ttl disables
// expiry.
func NewMemoryPendingStore(ttl time.Duration) *MemoryPendingStore {
	return &MemoryPendingStore{
		entries: make(map[string]PendingState),
		ttl:     ttl,
	}
}

func (s *MemoryPendingStore) expired(state PendingState) bool {
	return s.ttl > 0 && time.Since(state.Action.CreatedAt) > s.ttl
}

func (s *MemoryPendingStore) Propose(ctx context.Context, userID string, state PendingState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state.Action.CreatedAt.IsZero() {
		state.Action.CreatedAt = time.Now()
	}
	s.entries[userID] = state
	return nil
}

func (s *MemoryPendingStore) Peek(ctx context.Context, userID string) (*PendingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.entries[userID]
	if !ok {
		return nil, nil
	}
	if s.expired(state) {
		delete(s.entries, userID)
		return nil, nil
	}
	return &state, nil
}

func (s *MemoryPendingStore) Take(ctx context.Context, userID string) (*PendingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.entries[userID]
	if !ok {
		return nil, nil
	}
	delete(s.entries, userID)
	if s.expired(state) {
		return nil, nil
	}
	return &state, nil
}

func (s *MemoryPendingStore) Resolve(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}
