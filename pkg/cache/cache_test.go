package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get(k) = %q, %v, %v; want \"v\", true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expired entry not removed: %v", err)
	}
}

func TestFileCacheCorrupt(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v; want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	type outcome struct{ Attempt int }
	var got outcome
	if err := GetJSON(ctx, c, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("GetJSON(missing) = %v, want ErrCacheMiss", err)
	}

	size, err := SetJSON(ctx, c, "k", outcome{Attempt: 4}, TTLLayout)
	if err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if size == 0 {
		t.Error("SetJSON reported zero size")
	}
	if err := GetJSON(ctx, c, "k", &got); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if got.Attempt != 4 {
		t.Errorf("Attempt = %d, want 4", got.Attempt)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
	if HashJSON([]string{"k", "ah"}) == HashJSON([]string{"k", "ah", "t"}) {
		t.Error("HashJSON should differ for different values")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	lk1 := k.LayoutKey("words", LayoutKeyOpts{Seed: 1, Attempts: 10})
	lk2 := k.LayoutKey("words", LayoutKeyOpts{Seed: 2, Attempts: 10})
	lk3 := k.LayoutKey("words", LayoutKeyOpts{Seed: 1, Attempts: 20})
	if lk1 == lk2 || lk1 == lk3 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(lk1, "layout:") {
		t.Errorf("LayoutKey prefix: %s", lk1)
	}
	if lk1 != k.LayoutKey("words", LayoutKeyOpts{Seed: 1, Attempts: 10}) {
		t.Error("LayoutKey should be deterministic")
	}

	ak1 := k.ArtifactKey("scene", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("scene", ArtifactKeyOpts{Format: "png", Background: "wall"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey prefix: %s", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "user:123:")
	opts := LayoutKeyOpts{Seed: 7}

	got := scoped.LayoutKey("h", opts)
	want := "user:123:" + NewDefaultKeyer().LayoutKey("h", opts)
	if got != want {
		t.Errorf("LayoutKey = %s, want %s", got, want)
	}
	if ak := scoped.ArtifactKey("h", ArtifactKeyOpts{}); !strings.HasPrefix(ak, "user:123:artifact:") {
		t.Errorf("ArtifactKey should be prefixed: %s", ak)
	}
}

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		addr     string
		wantAddr string
		wantDB   int
	}{
		{"", "localhost:6379", 0},
		{"cache:6380", "cache:6380", 0},
		{"redis://cache:6379/2", "cache:6379", 2},
	}
	for _, tt := range tests {
		opts, err := RedisOptions(tt.addr)
		if err != nil {
			t.Errorf("RedisOptions(%q): %v", tt.addr, err)
			continue
		}
		if opts.Addr != tt.wantAddr || opts.DB != tt.wantDB {
			t.Errorf("RedisOptions(%q) = %s/%d, want %s/%d", tt.addr, opts.Addr, opts.DB, tt.wantAddr, tt.wantDB)
		}
	}

	if _, err := RedisOptions("redis://cache:6379/notadb"); err == nil {
		t.Error("expected error for invalid database")
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should unwrap to ErrNetwork")
	}
	if IsRetryable(ErrCacheMiss) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { RetryDelay = d }(RetryDelay)
	RetryDelay = time.Millisecond
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err %v, calls %d; want nil, 1", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error { calls++; return ErrCacheMiss })
	if err != ErrCacheMiss || calls != 1 {
		t.Errorf("non-retryable: err %v, calls %d; want ErrCacheMiss, 1", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry: err %v, calls %d; want nil, 2", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(ErrNetwork) })
	if !errors.Is(err, ErrNetwork) || calls != 3 {
		t.Errorf("exhausted: err %v, calls %d; want ErrNetwork, 3", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

type recordingCache struct {
	NullCache
	ttl time.Duration
}

func (r *recordingCache) Set(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
	r.ttl = ttl
	return nil
}

func TestWithMaxTTL(t *testing.T) {
	ctx := context.Background()
	rec := &recordingCache{}

	if got := WithMaxTTL(rec, 0); got != Cache(rec) {
		t.Error("WithMaxTTL(0) should return the cache unchanged")
	}

	c := WithMaxTTL(rec, time.Hour)
	tests := []struct {
		ttl, want time.Duration
	}{
		{TTLLayout, time.Hour},
		{time.Minute, time.Minute},
		{0, time.Hour},
	}
	for _, tt := range tests {
		c.Set(ctx, "k", nil, tt.ttl)
		if rec.ttl != tt.want {
			t.Errorf("Set(ttl=%v) stored ttl %v, want %v", tt.ttl, rec.ttl, tt.want)
		}
	}
}
