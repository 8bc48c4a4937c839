// File: services/assistant/history.go
package assistant

import (
	"context"
	"encoding/json"
	"time"

	"innoviahub/models"
	"innoviahub/utils"

	"github.com/go-redis/redis/v8"
)

// RedisHistoryStore keeps the per-user conversation history in Redis so
// replies can reference prior context across requests and instances.
type RedisHistoryStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisHistoryStore(client *redis.Client, ttl time.Duration) *RedisHistoryStore {
	return &RedisHistoryStore{client: client, ttl: ttl}
}

func (s *RedisHistoryStore) key(userID string) string {
	return utils.HistoryCachePrefix + userID
}

func (s *RedisHistoryStore) Get(ctx context.Context, userID string) (*models.Conversation, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return &models.Conversation{}, nil
	}
	if err != nil {
		return nil, err
	}
	var conv models.Conversation
	if err := json.Unmarshal([]byte(data), &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *RedisHistoryStore) Save(ctx context.Context, userID string, conv *models.Conversation) error {
	b, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(userID), b, s.ttl).Err()
}

func (s *RedisHistoryStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}
