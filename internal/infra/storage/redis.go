package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/go-redis/redis/v8"
	config "github.com/inference-gateway/envkeys/config"
	domain "github.com/inference-gateway/envkeys/internal/domain"
)

// journalKey is the Redis list holding journal entries, newest at the head
const journalKey = "envkeys:journal"

// RedisStorage implements JournalStorage using a capped Redis list
type RedisStorage struct {
	client *redis.Client
	maxLen int64
}

// NewRedisStorage connects to Redis
func NewRedisStorage(cfg config.RedisConfig) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:       cfg.Database,
		Password: cfg.Password,
		Username: cfg.Username,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStorage{
		client: client,
		maxLen: cfg.MaxLen,
	}, nil
}

// Append pushes one entry and trims the list to its maximum length
func (s *RedisStorage) Append(ctx context.Context, entry domain.JournalEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, journalKey, data)
	if s.maxLen > 0 {
		pipe.LTrim(ctx, journalKey, 0, s.maxLen-1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first
func (s *RedisStorage) List(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	values, err := s.client.LRange(ctx, journalKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal entries: %w", err)
	}

	entries := make([]domain.JournalEntry, 0, len(values))
	for _, value := range values {
		var entry domain.JournalEntry
		if err := json.Unmarshal([]byte(value), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Close closes the Redis client
func (s *RedisStorage) Close() error {
	return s.client.Close()
}

// Health pings Redis
func (s *RedisStorage) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
