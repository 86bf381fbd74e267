package utils

import (
	"context"
	"time"
)

const blacklistKeyPrefix = "jwt:blacklist:"

// BlacklistToken revokes a token until its natural expiration to support
// logout semantics. Already expired tokens are ignored.
func BlacklistToken(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := GetRedis().Set(ctx, blacklistKeyPrefix+token, "1", ttl).Err(); err != nil && Sugar != nil {
		Sugar.Warnf("token blacklist set failed: %v", err)
	}
}

// IsTokenBlacklisted checks if a token was revoked before natural expiration.
// Redis errors fail open to avoid locking every session out on an outage.
func IsTokenBlacklisted(token string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := GetRedis().Exists(ctx, blacklistKeyPrefix+token).Result()
	return err == nil && n > 0
}
