package repository

import (
	"context"
	"testing"
	"time"

	"codewithme_backend/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestCache(t *testing.T, ttl time.Duration) (*LeaderboardCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewLeaderboardCache(rdb, "leaderboard:top", ttl), mr
}

func TestLeaderboardCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	entries, ok, err := cache.Get(context.Background())
	if err != nil || ok || entries != nil {
		t.Fatalf("Get() = %v, %v, %v; want miss", entries, ok, err)
	}
}

func TestLeaderboardCacheSetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, 30*time.Second)

	want := []model.LeaderboardEntry{
		{Rank: 1, UserID: 2, Username: "grace", Score: 40},
		{Rank: 2, UserID: 1, Username: "ada", Score: 25},
	}
	if err := cache.Set(ctx, want); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if ttl := mr.TTL("leaderboard:top"); ttl != 30*time.Second {
		t.Fatalf("ttl = %v", ttl)
	}

	got, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("Get() ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].Username != "grace" || got[1].Score != 25 {
		t.Fatalf("entries = %+v", got)
	}

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if mr.Exists("leaderboard:top") {
		t.Fatalf("key still present after invalidate")
	}
}

func TestLeaderboardCacheExpires(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, 10*time.Second)
	if err := cache.Set(ctx, []model.LeaderboardEntry{{Rank: 1, UserID: 1}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(11 * time.Second)
	if _, ok, _ := cache.Get(ctx); ok {
		t.Fatalf("expected cache entry to expire")
	}
}

func TestLeaderboardCacheDisabled(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, 0)
	if err := cache.Set(ctx, []model.LeaderboardEntry{{Rank: 1}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if mr.Exists("leaderboard:top") {
		t.Fatalf("zero ttl should skip caching")
	}
}

func TestLeaderboardCacheCorruptValue(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	if err := mr.Set("leaderboard:top", "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := cache.Get(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}
