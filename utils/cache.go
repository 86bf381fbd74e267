package utils

import (
	"context"
	"encoding/json"
	"time"
)

// Listing endpoints cache rendered response bodies for short windows and
// invalidate by key prefix on writes. Redis being down degrades every call
// here to a no-op so requests just hit the database.
const (
	fallbackCacheTTL = 10 * time.Minute
	cacheOpTimeout   = 2 * time.Second
)

// CacheGetBytes returns the cached response body for a key. The second
// return is false on a miss or when Redis is unreachable.
func CacheGetBytes(key string) ([]byte, bool) {
	rc := GetRedis()
	if rc == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	b, err := rc.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// CacheSetBytes stores a response body under key. A non-positive ttl falls
// back to fallbackCacheTTL so entries can never live forever.
func CacheSetBytes(key string, b []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = fallbackCacheTTL
	}
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	if err := rc.Set(ctx, key, b, ttl).Err(); err != nil && Sugar != nil {
		Sugar.Warnf("cache set failed key=%s err=%v", key, err)
	}
}

// CacheSetJSON marshals v and stores the JSON body. Marshal failures drop
// the entry silently; the next reader repopulates it.
func CacheSetJSON(key string, v interface{}, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	CacheSetBytes(key, b, ttl)
}

// InvalidateByPrefix deletes every key under a prefix, e.g.
// "cache:posts:list:" after a post mutation. SCAN keeps the sweep
// incremental; the round cap bounds worst case latency on large keyspaces.
func InvalidateByPrefix(prefix string) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var cursor uint64
	for round := 0; round < 16; round++ {
		keys, next, err := rc.Scan(ctx, cursor, prefix+"*", 500).Result()
		if err != nil {
			if Sugar != nil {
				Sugar.Warnf("cache invalidate scan failed prefix=%s err=%v", prefix, err)
			}
			return
		}
		if len(keys) > 0 {
			if err := rc.Del(ctx, keys...).Err(); err != nil && Sugar != nil {
				Sugar.Warnf("cache invalidate delete failed prefix=%s err=%v", prefix, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
