package cache

import (
	"testing"
	"time"
)

func TestRedisKeyPrefix(t *testing.T) {
	c := &RedisCache{prefix: DefaultRedisPrefix}
	if got := c.key("plan:abc"); got != "conceptmap:plan:abc" {
		t.Errorf("key = %s", got)
	}
}

func TestMongoEntry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	forever := newMongoEntry("k", []byte("v"), 0, now)
	if forever.ExpiresAt != nil {
		t.Error("zero ttl should not set expires_at")
	}
	if forever.expired(now.Add(1000 * time.Hour)) {
		t.Error("entry without expiry should never expire")
	}

	short := newMongoEntry("k", []byte("v"), time.Minute, now)
	if short.ExpiresAt == nil || !short.ExpiresAt.Equal(now.Add(time.Minute)) {
		t.Fatalf("expires_at = %v", short.ExpiresAt)
	}
	if short.expired(now.Add(30 * time.Second)) {
		t.Error("entry expired early")
	}
	if !short.expired(now.Add(2 * time.Minute)) {
		t.Error("entry should have expired")
	}
}
