package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache TTLs. Entities that change rarely keep longer lifetimes than
// list views, which churn on every write.
const (
	UserTTL    = 10 * time.Minute
	ProfileTTL = 5 * time.Minute
	PostTTL    = 5 * time.Minute
	ListTTL    = 1 * time.Minute
	DefaultTTL = 5 * time.Minute
)

// Key builders. All cache keys are namespaced by entity.

func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func ProfileByUserKey(userID uint) string {
	return fmt.Sprintf("profile:user:%d", userID)
}

func ProfileByHandleKey(handle string) string {
	return fmt.Sprintf("profile:handle:%s", handle)
}

func ProfileListKey() string {
	return "profiles:all"
}

func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

func PostListKey(limit, offset int) string {
	return fmt.Sprintf("posts:list:%d:%d", limit, offset)
}

// GetJSON fetches key and unmarshals it into dest. Returns false on a
// miss, a disabled cache, or a decode failure.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if client == nil {
		return false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		// Stale or corrupt entry; drop it so the next read repopulates.
		client.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON marshals value and stores it under key with the given TTL.
// A nil client or marshal failure is silently ignored.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// Aside implements the cache-aside pattern: fill dest from the cache if
// present, otherwise run load to populate dest from the source of truth
// and store the result on success.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if GetJSON(ctx, key, dest) {
		return nil
	}
	if err := load(); err != nil {
		return err
	}
	SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes one or more keys. Safe to call with a nil client.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidatePattern removes every key matching the glob pattern. Used
// for list caches where the exact key set is not tracked.
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateUser clears the cached user record.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateProfile clears every cached view touched by a profile write.
func InvalidateProfile(ctx context.Context, userID uint, handle string) {
	Invalidate(ctx, ProfileByUserKey(userID), ProfileByHandleKey(handle), ProfileListKey())
}

// InvalidatePost clears the cached post and all cached post lists.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	InvalidatePattern(ctx, "posts:list:*")
}
