package forms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps drafts in Redis with a TTL so abandoned drafts expire
// on their own.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, TTL: ttl}
}

func draftKey(ownerID int64, entityType EntityType) string {
	return fmt.Sprintf("draft:%s:%d", entityType, ownerID)
}

func (s *RedisStore) Save(ctx context.Context, draft Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.Client.Set(ctx, draftKey(draft.OwnerID, draft.EntityType), payload, s.TTL).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, ownerID int64, entityType EntityType) (Draft, error) {
	payload, err := s.Client.Get(ctx, draftKey(ownerID, entityType)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Draft{}, ErrDraftNotFound
	}
	if err != nil {
		return Draft{}, fmt.Errorf("load draft: %w", err)
	}
	var draft Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return Draft{}, fmt.Errorf("decode draft: %w", err)
	}
	if draft.Fields == nil {
		draft.Fields = map[string]string{}
	}
	return draft, nil
}

func (s *RedisStore) Delete(ctx context.Context, ownerID int64, entityType EntityType) error {
	if err := s.Client.Del(ctx, draftKey(ownerID, entityType)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
