package store

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis connection for a RedisStore.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// Namespace prefixes every key so multiple applications can share one
	// Redis instance. Defaults to "relay".
	Namespace string

	// TLS configuration for secure connections (optional).
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment.
	ConnectTimeout time.Duration
}

// RedisStore implements Store using go-redis/v9. Objects are stored as JSON
// values at {namespace}:{nodeType}:{localID}.
//
// Thread-safe for concurrent use.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore creates a Redis-backed store with the given options and
// verifies connectivity with a ping.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.Namespace == "" {
		opts.Namespace = "relay"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("store: parse Redis URL: %w", err)
	}
	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("store: connect to Redis: %w", err)
	}

	return &RedisStore{client: client, namespace: opts.Namespace}, nil
}

// NewRedisStoreFromClient wraps an existing Redis client. Useful for tests
// and callers that manage their own connection pool.
func NewRedisStoreFromClient(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "relay"
	}
	return &RedisStore{client: client, namespace: namespace}
}

func (r *RedisStore) key(nodeType, localID string) string {
	return fmt.Sprintf("%s:%s:%s", r.namespace, nodeType, localID)
}

// Get returns the object stored for the given type and local identifier.
func (r *RedisStore) Get(ctx context.Context, nodeType, localID string) (map[string]any, error) {
	data, err := r.client.Get(ctx, r.key(nodeType, localID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, nodeType, localID)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s %s: %w", nodeType, localID, err)
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("store: decode %s %s: %w", nodeType, localID, err)
	}
	return obj, nil
}

// Put stores an object under an existing local identifier.
func (r *RedisStore) Put(ctx context.Context, nodeType, localID string, obj map[string]any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("%w: marshal %s %s: %v", ErrInvalidObject, nodeType, localID, err)
	}

	if err := r.client.Set(ctx, r.key(nodeType, localID), data, 0).Err(); err != nil {
		return fmt.Errorf("store: put %s %s: %w", nodeType, localID, err)
	}
	return nil
}

// Create stores a new object, minting a fresh UUID local identifier for it.
func (r *RedisStore) Create(ctx context.Context, nodeType string, obj map[string]any) (string, error) {
	localID := uuid.NewString()
	if err := r.Put(ctx, nodeType, localID, obj); err != nil {
		return "", err
	}
	return localID, nil
}

// Delete removes the object. Deleting a missing object is a no-op.
func (r *RedisStore) Delete(ctx context.Context, nodeType, localID string) error {
	if err := r.client.Del(ctx, r.key(nodeType, localID)).Err(); err != nil {
		return fmt.Errorf("store: delete %s %s: %w", nodeType, localID, err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
