package booking

import (
	"context"
	"encoding/json"
	"time"

	"innoviahub/utils"

	"github.com/go-redis/redis/v8"
)

// RedisPendingStore backs the pending-action store with Redis so multiple
// instances share proposal state. The key TTL doubles as the staleness
// bound on unresolved proposals.
type RedisPendingStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPendingStore(client *redis.Client, ttl time.Duration) *RedisPendingStore {
	return &RedisPendingStore{client: client, ttl: ttl}
}

func (s *RedisPendingStore) key(userID string) string {
	return utils.PendingCachePrefix + userID
}

func (s *RedisPendingStore) Propose(ctx context.Context, userID string, state PendingState) error {
	if state.Action.CreatedAt.IsZero() {
		state.Action.CreatedAt = time.Now()
	}
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(userID), b, s.ttl).Err()
}

func (s *RedisPendingStore) Peek(ctx context.Context, userID string) (*PendingState, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state PendingState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Take removes and returns the proposal in one round trip; GETDEL keeps the
// read-and-clear atomic across instances.
func (s *RedisPendingStore) Take(ctx context.Context, userID string) (*PendingState, error) {
	data, err := s.client.GetDel(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state PendingState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisPendingStore) Resolve(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}
