package kv

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// FillFunc produces the value for a key on a read-through miss.
type FillFunc func(ctx context.Context) ([]byte, error)

// Loader is a read-through helper over a Store: Load returns the stored
// value when present and otherwise runs the fill, stores its result, and
// returns it. Concurrent loads for the same key are collapsed into a single
// fill; every waiter receives the same outcome.
type Loader struct {
	store Store
	group singleflight.Group // prevents thundering herd on cold keys
}

// NewLoader creates a loader over the given store.
func NewLoader(store Store) (*Loader, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	return &Loader{store: store}, nil
}

// Load returns the value for key, filling the store on a miss.
//
// Errors from fill are returned to every collapsed caller and are never
// stored. A failed Set after a successful fill is swallowed: the caller gets
// the filled value either way, and the next Load will simply fill again.
func (l *Loader) Load(ctx context.Context, key string, fill FillFunc, ttl time.Duration) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	if value, ok, err := l.store.Get(ctx, key); err != nil {
		return nil, err
	} else if ok {
		return value, nil
	}

	value, err, _ := l.group.Do(key, func() (any, error) {
		// Re-check under the flight: another caller may have filled the key
		// between our miss and winning the flight.
		if value, ok, err := l.store.Get(ctx, key); err == nil && ok {
			return value, nil
		}

		value, err := fill(ctx)
		if err != nil {
			return nil, err
		}

		_ = l.store.Set(ctx, key, value, ttl)
		return value, nil
	})
	if err != nil {
		return nil, err
	}

	return value.([]byte), nil
}

// Invalidate removes key from the underlying store.
func (l *Loader) Invalidate(ctx context.Context, key string) error {
	return l.store.Delete(ctx, key)
}
