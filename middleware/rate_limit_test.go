package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func resetBuckets() {
	bucketsMu.Lock()
	defer bucketsMu.Unlock()
	buckets = map[string]*ipBucket{}
}

func TestBucketForThrottlesAfterBurst(t *testing.T) {
	resetBuckets()

	limiter := bucketFor("10.0.0.1", rate.Every(time.Minute), 2)
	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}

func TestBucketForIsPerClient(t *testing.T) {
	resetBuckets()

	a := bucketFor("10.0.0.1", rate.Every(time.Minute), 1)
	b := bucketFor("10.0.0.2", rate.Every(time.Minute), 1)
	assert.NotSame(t, a, b)

	assert.True(t, a.Allow())
	assert.False(t, a.Allow())
	assert.True(t, b.Allow())
}

func TestBucketForDropsIdleEntries(t *testing.T) {
	resetBuckets()

	bucketFor("10.0.0.1", rate.Every(time.Minute), 1)
	bucketsMu.Lock()
	buckets["10.0.0.1"].lastSeen = time.Now().Add(-2 * bucketIdleTTL)
	bucketsMu.Unlock()

	bucketFor("10.0.0.2", rate.Every(time.Minute), 1)

	bucketsMu.Lock()
	_, kept := buckets["10.0.0.1"]
	bucketsMu.Unlock()
	assert.False(t, kept)
}
