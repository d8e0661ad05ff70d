package kv

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// BenchmarkMemoryStore_Get measures warm reads.
func BenchmarkMemoryStore_Get(b *testing.B) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Set(ctx, "key", []byte("value"), time.Hour)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = s.Get(ctx, "key")
	}
}

// BenchmarkMemoryStore_Set measures writes.
func BenchmarkMemoryStore_Set(b *testing.B) {
	s := NewMemoryStore()
	ctx := context.Background()
	value := []byte("value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Set(ctx, "key", value, time.Hour)
	}
}

// BenchmarkMemoryStore_Concurrent measures parallel mixed access.
func BenchmarkMemoryStore_Concurrent(b *testing.B) {
	s := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		_ = s.Set(ctx, fmt.Sprintf("key%d", i), []byte("value"), time.Hour)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _, _ = s.Get(ctx, fmt.Sprintf("key%d", i%100))
			i++
		}
	})
}

// BenchmarkDefaultKeyer_Key measures key derivation for a nested input.
func BenchmarkDefaultKeyer_Key(b *testing.B) {
	k := NewDefaultKeyer()
	input := map[string]any{
		"symbol":   "ACME",
		"currency": "EUR",
		"options":  map[string]any{"depth": 5, "extended": true},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = k.Key("quotes", input)
	}
}

// BenchmarkLoader_WarmLoad measures read-through hits.
func BenchmarkLoader_WarmLoad(b *testing.B) {
	store := NewMemoryStore()
	l, _ := NewLoader(store)
	ctx := context.Background()

	fill := func(ctx context.Context) ([]byte, error) {
		return []byte("value"), nil
	}
	_, _ = l.Load(ctx, "key", fill, time.Hour)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = l.Load(ctx, "key", fill, time.Hour)
	}
}
