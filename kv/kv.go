package kv

import (
	"context"
	"strings"
	"time"
	"unicode"
)

// MaxKeyLength is the maximum allowed length for a store key.
const MaxKeyLength = 512

// Store is the interface for key-value storage backends.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods should honor cancellation/deadlines where applicable.
// - Misses: Get returns (nil, false, nil) on miss; a miss is not an error.
// - TTL: ttl <= 0 means the entry never expires.
type Store interface {
	// Get retrieves a value. Returns (nil, false, nil) on miss or expiry.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error

	// Clear removes all values.
	Clear(ctx context.Context) error

	// Close releases backend resources. The store is unusable afterwards.
	Close() error
}

// ValidateKey checks if a key is valid for storage.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys containing control characters
	for _, r := range key {
		if unicode.IsControl(r) {
			return ErrInvalidKey
		}
	}
	return nil
}
