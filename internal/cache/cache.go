package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrNotFound is returned by a Store when a key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

// Store is the shared key-value store digests are cached in. Implementations
// are not transactional; concurrent writers for the same key are accepted
// because digest values are derived deterministically from (type, date).
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Key builds the deterministic cache key for one digest type on one calendar
// date in the service's timezone.
func Key(digestType string, date time.Time) string {
	return fmt.Sprintf("digest:%s:%s", digestType, date.Format("2006-01-02"))
}

// GetOrCompute returns the cached value for key, or computes, stores and
// returns a fresh one. A value that fails to deserialize counts as a miss.
// A failed write is logged and ignored: caching is advisory, the computed
// digest is still returned.
func GetOrCompute[T any](ctx context.Context, store Store, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	var value T

	cached, err := store.Get(ctx, key)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal([]byte(cached), &value); jsonErr == nil {
			slog.Debug("cache hit", "key", key)
			return value, nil
		}
		slog.Warn("cache entry is corrupt, recomputing", "key", key)
	case errors.Is(err, ErrNotFound):
		slog.Debug("cache miss", "key", key)
	default:
		slog.Warn("cache read failed, recomputing", "key", key, "error", err.Error())
	}

	value, err = compute()
	if err != nil {
		return value, err
	}

	serialized, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache serialization failed", "key", key, "error", err.Error())
		return value, nil
	}
	if err := store.Set(ctx, key, string(serialized), ttl); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err.Error())
	}
	return value, nil
}
