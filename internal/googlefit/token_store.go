package googlefit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

// ErrNoTokens is returned when a user never connected a Google Fit account
// or the stored record was lost.
var ErrNoTokens = errors.New("no google fit tokens found for user")

// TokenRecord holds the Google OAuth tokens of one connected user. Tokens
// never leave the service, the record is keyed by the OAuth state value the
// web app uses as the user identifier.
type TokenRecord struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// TokenStore keeps at most one token record per user. A later Set replaces
// the whole record, there is no delete and no expiry.
type TokenStore interface {
	Get(ctx context.Context, userID string) (TokenRecord, error)
	Set(ctx context.Context, record TokenRecord) error
}

type InMemoryTokenStore struct {
	mu      sync.RWMutex
	records map[string]TokenRecord
}

func NewInMemoryTokenStore() *InMemoryTokenStore {
	return &InMemoryTokenStore{
		records: make(map[string]TokenRecord),
	}
}

func (s *InMemoryTokenStore) Get(_ context.Context, userID string) (TokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[userID]
	if !ok {
		return TokenRecord{}, ErrNoTokens
	}
	return record, nil
}

func (s *InMemoryTokenStore) Set(_ context.Context, record TokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.UserID] = record
	return nil
}

const redisKeyPrefix = "googlefit-tokens||"

// RedisTokenStore persists token records across restarts as JSON values
// under a prefixed key, no TTL.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Get(ctx context.Context, userID string) (TokenRecord, error) {
	recordJson, err := s.client.Get(ctx, redisKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return TokenRecord{}, ErrNoTokens
	}
	if err != nil {
		return TokenRecord{}, fmt.Errorf("get token record: %w", err)
	}

	var record TokenRecord
	if err := json.Unmarshal([]byte(recordJson), &record); err != nil {
		return TokenRecord{}, fmt.Errorf("unmarshal token record: %w", err)
	}
	return record, nil
}

func (s *RedisTokenStore) Set(ctx context.Context, record TokenRecord) error {
	recordJson, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal token record: %w", err)
	}

	if err := s.client.Set(ctx, redisKeyPrefix+record.UserID, recordJson, 0).Err(); err != nil {
		return fmt.Errorf("set token record: %w", err)
	}
	return nil
}
