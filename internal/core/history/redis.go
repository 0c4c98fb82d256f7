package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sadopc/qtrack/internal/core/record"
)

// DefaultRedisKey is the list key used when none is configured.
const DefaultRedisKey = "qtrack:queries"

// RedisOptions configures the redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisStore keeps the log as a redis list, oldest first.
type RedisStore struct {
	client *redis.Client
	key    string
	limit  int
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, key string, limit int) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key, limit: normalizeLimit(limit)}
}

// DialRedis connects to redis and verifies the connection.
func DialRedis(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis %s: %w", opts.Addr, err)
	}
	return client, nil
}

func (s *RedisStore) Load(ctx context.Context) ([]record.QueryRecord, error) {
	vals, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return emptyLog(), fmt.Errorf("reading redis log %s: %w", s.key, err)
	}

	log := make([]record.QueryRecord, 0, len(vals))
	malformed := 0
	for _, v := range vals {
		var rec record.QueryRecord
		if err := record.Decode([]byte(v), &rec); err != nil {
			malformed++
			continue
		}
		log = append(log, rec)
	}
	if malformed > 0 {
		return log, fmt.Errorf("%w: %d malformed entries in %s", ErrCorrupt, malformed, s.key)
	}
	return log, nil
}

func (s *RedisStore) Append(ctx context.Context, rec record.QueryRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling query: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, s.key, data)
		pipe.LTrim(ctx, s.key, int64(-s.limit), -1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("appending to redis log %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clearing redis log %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
