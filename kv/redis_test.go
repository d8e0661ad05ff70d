package kv

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T, opts ...RedisOption) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client, opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_SetGet(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "key1", []byte("value1"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, ok, err := s.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if !bytes.Equal(value, []byte("value1")) {
		t.Errorf("Get() = %q, want value1", value)
	}
}

func TestRedisStore_GetMiss(t *testing.T) {
	s, _ := newRedisStore(t)

	value, ok, err := s.Get(context.Background(), "missing")
	if err != nil {
		t.Errorf("Get() error = %v, want nil on miss", err)
	}
	if ok || value != nil {
		t.Errorf("Get() = (%v, %v), want (nil, false)", value, ok)
	}
}

func TestRedisStore_TTL(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "short", []byte("a"), time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, ok, _ := s.Get(ctx, "short"); ok {
		t.Error("expired entry still readable")
	}
}

func TestRedisStore_NoTTLPersists(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "forever", []byte("b"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	mr.FastForward(time.Hour)

	if _, ok, _ := s.Get(ctx, "forever"); !ok {
		t.Error("entry with no TTL expired")
	}
}

func TestRedisStore_Delete(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	_ = s.Set(ctx, "key1", []byte("value1"), time.Minute)

	if err := s.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "key1"); ok {
		t.Error("Get() ok = true after Delete")
	}
	if err := s.Delete(ctx, "key1"); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestRedisStore_ClearRespectsPrefix(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	_ = s.Set(ctx, "key1", []byte("a"), 0)
	_ = s.Set(ctx, "key2", []byte("b"), 0)
	mr.Set("unrelated", "keep me")

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if _, ok, _ := s.Get(ctx, "key1"); ok {
		t.Error("Get() ok = true after Clear")
	}
	if !mr.Exists("unrelated") {
		t.Error("Clear() removed a key outside the store prefix")
	}
}

func TestRedisStore_CustomPrefix(t *testing.T) {
	s, mr := newRedisStore(t, WithRedisPrefix("app:"))
	ctx := context.Background()

	if err := s.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !mr.Exists("app:key1") {
		t.Error("key stored without the configured prefix")
	}
}
