// Package localstore keeps small per-session string values, the server-side
// counterpart of a browser's local storage.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys used by the storefront
const (
	KeyCart         = "cart"
	KeyWishlist     = "wishlist"
	KeyComparison   = "comparison"
	KeyOrderDetails = "orderDetails"
)

var (
	// ErrNotFound is returned when a key has no value for the session
	ErrNotFound = errors.New("local storage key not found")
	// ErrCorrupt is returned when a stored value cannot be decoded
	ErrCorrupt = errors.New("local storage value corrupt")
)

// Store is a Redis-backed key/value store namespaced by session
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a store whose values expire after ttl of inactivity
func New(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func storageKey(sessionID, key string) string {
	return fmt.Sprintf("storage:%s:%s", sessionID, key)
}

// GetItem returns the raw value stored under key
func (s *Store) GetItem(ctx context.Context, sessionID, key string) (string, error) {
	val, err := s.rdb.Get(ctx, storageKey(sessionID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return val, nil
}

// SetItem stores value under key with the default TTL
func (s *Store) SetItem(ctx context.Context, sessionID, key, value string) error {
	return s.SetItemTTL(ctx, sessionID, key, value, s.ttl)
}

// SetItemTTL stores value under key with an explicit TTL
func (s *Store) SetItemTTL(ctx context.Context, sessionID, key, value string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, storageKey(sessionID, key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key; removing an absent key is not an error
func (s *Store) RemoveItem(ctx context.Context, sessionID, key string) error {
	if err := s.rdb.Del(ctx, storageKey(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// GetJSON decodes the value under key into dest
func (s *Store) GetJSON(ctx context.Context, sessionID, key string, dest any) error {
	val, err := s.GetItem(ctx, sessionID, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCorrupt, key, err)
	}
	return nil
}

// SetJSON encodes value and stores it under key with the default TTL
func (s *Store) SetJSON(ctx context.Context, sessionID, key string, value any) error {
	return s.SetJSONTTL(ctx, sessionID, key, value, s.ttl)
}

// SetJSONTTL encodes value and stores it under key with an explicit TTL
func (s *Store) SetJSONTTL(ctx context.Context, sessionID, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.SetItemTTL(ctx, sessionID, key, string(data), ttl)
}
