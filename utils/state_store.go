package utils

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"
)

const stateKeyPrefix = "oauth:state:"

// NewState generates an unguessable OAuth state token and records it in
// Redis with the given TTL to mitigate login CSRF.
func NewState(ttl time.Duration) (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	state := base64.RawURLEncoding.EncodeToString(buf)
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := GetRedis().Set(ctx, stateKeyPrefix+state, "1", ttl).Err(); err != nil {
		return "", err
	}
	return state, nil
}

// ConsumeState validates and removes a state token. Single use: a second
// consume of the same state fails.
func ConsumeState(state string) bool {
	if state == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	v, err := GetRedis().GetDel(ctx, stateKeyPrefix+state).Result()
	return err == nil && v != ""
}
