package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type point struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "p", point{Symbol: "AAPL", Price: 189.5}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got point
	if err := mc.Get(ctx, "p", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Symbol != "AAPL" || got.Price != 189.5 {
		t.Fatalf("unexpected value %+v", got)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "k", "v", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	var s string
	if err := mc.Get(ctx, "k", &s); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss after expiry, got %v", err)
	}
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", 1, time.Minute)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "b", 2, time.Minute)
	time.Sleep(time.Millisecond)
	var v int
	_ = mc.Get(ctx, "a", &v) // touch a so b becomes the oldest
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "c", 3, time.Minute)

	if ok, _ := mc.Exists(ctx, "b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if ok, _ := mc.Exists(ctx, "a", "c"); !ok {
		t.Fatalf("expected a and c to remain")
	}
	if mc.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", mc.Len())
	}
}

func TestMemoryCacheTryLock(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if ok, _ := mc.TryLock(ctx, "lock", time.Minute); !ok {
		t.Fatalf("expected first lock to succeed")
	}
	if ok, _ := mc.TryLock(ctx, "lock", time.Minute); ok {
		t.Fatalf("expected second lock to fail")
	}
	_ = mc.Unlock(ctx, "lock")
	if ok, _ := mc.TryLock(ctx, "lock", time.Minute); !ok {
		t.Fatalf("expected lock after unlock to succeed")
	}
}

func TestLayeredCachePromotesFromRemote(t *testing.T) {
	remote := NewMemoryCache()
	lc := NewLayeredCache(remote)
	defer lc.Close()
	ctx := context.Background()

	_ = remote.Set(ctx, "p", point{Symbol: "MSFT", Price: 410}, time.Minute)
	var got point
	if err := lc.Get(ctx, "p", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Symbol != "MSFT" {
		t.Fatalf("unexpected value %+v", got)
	}

	_ = remote.Delete(ctx, "p")
	got = point{}
	if err := lc.Get(ctx, "p", &got); err != nil || got.Price != 410 {
		t.Fatalf("expected L1 hit after promotion, got %+v, %v", got, err)
	}
}

func TestLayeredCacheWritesThrough(t *testing.T) {
	remote := NewMemoryCache()
	lc := NewLayeredCache(remote)
	defer lc.Close()
	ctx := context.Background()

	_ = lc.Set(ctx, "k", point{Symbol: "NVDA"}, time.Minute)
	var got point
	if err := remote.Get(ctx, "k", &got); err != nil || got.Symbol != "NVDA" {
		t.Fatalf("expected remote copy, got %+v, %v", got, err)
	}
}

func TestFetchLoadsOnceThenHits(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()
	calls := 0
	load := func(context.Context) (point, error) {
		calls++
		return point{Symbol: "AMD", Price: 150}, nil
	}

	first, hit, err := Fetch(ctx, mc, "amd", time.Minute, load)
	if err != nil || hit || first.Price != 150 {
		t.Fatalf("unexpected first fetch %+v hit=%v err=%v", first, hit, err)
	}
	second, hit, err := Fetch(ctx, mc, "amd", time.Minute, load)
	if err != nil || !hit || second.Symbol != "AMD" {
		t.Fatalf("unexpected second fetch %+v hit=%v err=%v", second, hit, err)
	}
	if calls != 1 {
		t.Fatalf("expected one load, got %d", calls)
	}
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()
	boom := errors.New("boom")

	_, _, err := Fetch(ctx, mc, "x", time.Minute, func(context.Context) (int, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if ok, _ := mc.Exists(ctx, "x"); ok {
		t.Fatalf("error result should not be cached")
	}
}

func TestGenerateKey(t *testing.T) {
	if got := GenerateKey("quote", "aapl"); got != "quote:AAPL" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := GenerateKeyWithParams("forecast", "AAPL", 30); got != "forecast:AAPL:30" {
		t.Fatalf("unexpected key %s", got)
	}
}
